// Package accounting fetches a tenant's monthly report from the remote
// accounting API and materializes it as a domain dataset. It is the only
// place transport concerns live; the engine never performs I/O.
package accounting

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fin-tools/finsight/pkg/adapters"
	"github.com/fin-tools/finsight/pkg/models/api"
	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/store/tenantdir"
	"github.com/rs/zerolog"
)

type Client struct {
	cfg       *Config
	directory tenantdir.Registry
	http      *http.Client
}

func NewClient(cfg *Config) *Client {
	return NewClientWithDirectory(cfg, nil)
}

// NewClientWithDirectory builds a client that resolves tenant names to their
// backend identifiers through the given directory. A nil directory is
// allowed; requests then use the tenant name as the identifier.
func NewClientWithDirectory(cfg *Config, directory tenantdir.Registry) *Client {
	return &Client{
		cfg:       cfg,
		directory: directory,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

// GetDataset fetches the monthly report for a tenant. An empty tenant asks
// for the deployment's default tenant. Sections absent from the payload come
// back as absent map entries, which the engine treats as empty.
func (c *Client) GetDataset(ctx context.Context, tenantKey string) (domain.Dataset, error) {
	var endpoint string
	var err error
	if tenantKey == "" {
		endpoint, err = url.JoinPath(c.cfg.BaseURL, "v1", "monthly-report")
	} else {
		endpoint, err = url.JoinPath(c.cfg.BaseURL, "v1", "tenants", c.resolveTenant(ctx, tenantKey), "monthly-report")
	}
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to build report url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to build report request: %w", err)
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to fetch monthly report: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return domain.Dataset{}, fmt.Errorf("accounting API returned status %d", resp.StatusCode)
	}

	var envelope api.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to decode monthly report: %w", err)
	}

	ds := adapters.MapEnvelopeToDomainDataset(envelope)
	if ds.Tenant == "" {
		ds.Tenant = tenantKey
	}
	return ds, nil
}

// resolveTenant maps a tenant name to its backend identifier. Without a
// directory, or when the directory does not know the tenant, the name itself
// is used.
func (c *Client) resolveTenant(ctx context.Context, name string) string {
	if c.directory == nil {
		return name
	}

	profile, err := c.directory.Resolve(ctx, name)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("tenant", name).
			Msg("tenant not found in directory, using name as id")
		return name
	}
	return profile.ID
}
