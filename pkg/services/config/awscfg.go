// Package config reads the AWS shared config file to discover profiles
// and their default regions for scope prompting.
package config

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetRegion(ctx context.Context, profile string) (string, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profiles = append(profiles, profileName(section.Name()))
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetRegion(_ context.Context, profile string) (string, error) {
	section := cr.lookup(profile)
	if section == nil {
		return "", fmt.Errorf("profile %s not found", profile)
	}
	return section.Key("region").String(), nil
}

// lookup resolves both naming styles the shared config file uses:
// "[default]" and "[profile name]".
func (cr *cfgRegistry) lookup(profile string) *ini.Section {
	for _, name := range []string{profile, "profile " + profile} {
		if section, err := cr.cfg.GetSection(name); err == nil {
			return section
		}
	}
	return nil
}

func profileName(section string) string {
	return strings.TrimPrefix(section, "profile ")
}
