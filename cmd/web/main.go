package main

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"time"

	"github.com/fin-tools/finsight/pkg/server"
	"github.com/fin-tools/finsight/pkg/services/dashboard"
	"github.com/fin-tools/finsight/pkg/store/accounting"
	"github.com/fin-tools/finsight/pkg/store/tenantdir"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	tenantsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Finsight dashboard API server",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultCfg := fmt.Sprintf("%s/.finsight/accounting.yaml", usr.HomeDir)
	defaultTenants := fmt.Sprintf("%s/.finsight/tenants.ini", usr.HomeDir)

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultCfg,
		"Path to the accounting API config file")
	rootCmd.Flags().StringVarP(&tenantsPath, "tenants", "t", defaultTenants,
		"Path to the tenant directory file (optional)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := accounting.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load accounting config: %w", err)
	}
	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)

	var directory tenantdir.Registry
	if registry, err := tenantdir.NewRegistry(tenantsPath); err == nil {
		directory = registry
		profiles, _ := registry.GetProfiles(ctx)
		logger.Info().Msgf("Found the following tenants:")
		for _, profile := range profiles {
			logger.Info().Msgf("Name: `%s`, Id: `%s`", profile.Name, profile.ID)
		}
	} else {
		logger.Warn().Err(err).Msg("tenant directory unavailable, continuing without it")
	}

	client := accounting.NewClientWithDirectory(cfg, directory)
	controller := dashboard.NewController(client)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Dashboard: controller,
		},
	})

	return webAPI.Start()
}
