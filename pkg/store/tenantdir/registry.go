// Package tenantdir resolves human tenant names to their backend identifiers
// from an ini profile file, one section per tenant:
//
//	[acme]
//	id = tn-00421
//	display_name = Acme Industries
package tenantdir

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

type Profile struct {
	Name        string
	ID          string
	DisplayName string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]Profile, error)
	Resolve(ctx context.Context, name string) (Profile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant directory: %w", err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]Profile, error) {
	var profiles []Profile
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profiles = append(profiles, Profile{
			Name:        section.Name(),
			ID:          section.Key("id").String(),
			DisplayName: section.Key("display_name").String(),
		})
	}
	return profiles, nil
}

func (r *iniRegistry) Resolve(_ context.Context, name string) (Profile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil {
		return Profile{}, fmt.Errorf("tenant %s not found in directory", name)
	}

	id := section.Key("id").String()
	if id == "" {
		return Profile{}, fmt.Errorf("tenant %s has no id configured", name)
	}

	return Profile{
		Name:        name,
		ID:          id,
		DisplayName: section.Key("display_name").String(),
	}, nil
}
