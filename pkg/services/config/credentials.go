package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

const (
	EnvPageSpeedAPIKey = "PAGESPEED_API_KEY"
	EnvGroqAPIKey      = "GROQ_API_KEY"

	DefaultProfile = "default"
)

// ErrMissingCredential is returned when a required key is present in neither
// the environment nor the credentials file. It must surface to the user
// before any outbound request is made.
var ErrMissingCredential = errors.New("missing credential")

type Credentials struct {
	PageSpeedAPIKey string
	GroqAPIKey      string
}

// Registry reads credential profiles from an ini file, e.g. ~/.lightauditcfg:
//
//	[default]
//	pagespeed_api_key = ...
//	groq_api_key = ...
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetCredentials(ctx context.Context, profile string) (*Credentials, error)
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
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetCredentials(_ context.Context, profile string) (*Credentials, error) {
	section := cr.cfg.Section(profile)
	if section == nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	return &Credentials{
		PageSpeedAPIKey: section.Key("pagespeed_api_key").String(),
		GroqAPIKey:      section.Key("groq_api_key").String(),
	}, nil
}

// ResolveCredentials assembles the two required secrets, preferring
// environment variables and falling back to the registry profile. registry
// may be nil when no credentials file exists.
func ResolveCredentials(ctx context.Context, registry Registry, profile string) (*Credentials, error) {
	resolved := &Credentials{
		PageSpeedAPIKey: os.Getenv(EnvPageSpeedAPIKey),
		GroqAPIKey:      os.Getenv(EnvGroqAPIKey),
	}

	if registry != nil && (resolved.PageSpeedAPIKey == "" || resolved.GroqAPIKey == "") {
		stored, err := registry.GetCredentials(ctx, profile)
		if err != nil {
			return nil, err
		}
		if resolved.PageSpeedAPIKey == "" {
			resolved.PageSpeedAPIKey = stored.PageSpeedAPIKey
		}
		if resolved.GroqAPIKey == "" {
			resolved.GroqAPIKey = stored.GroqAPIKey
		}
	}

	if resolved.PageSpeedAPIKey == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrMissingCredential, EnvPageSpeedAPIKey)
	}
	if resolved.GroqAPIKey == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrMissingCredential, EnvGroqAPIKey)
	}

	return resolved, nil
}
