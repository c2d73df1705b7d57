package assessment

import (
	"fmt"
	"slices"

	"github.com/spf13/viper"

	"github.com/de-tools/audit-atlas/pkg/services/checks"
)

// Settings are the operator-tunable knobs of a run. All fields have
// working defaults; a settings file only overrides.
type Settings struct {
	Title        string   `mapstructure:"title"`
	Threshold    int      `mapstructure:"threshold"`
	OutputDir    string   `mapstructure:"output_dir"`
	SkipSections []string `mapstructure:"skip_sections"`
}

func DefaultSettings() Settings {
	return Settings{
		Title:     "AWS Compliance Assessment",
		Threshold: 70,
		OutputDir: "reports",
	}
}

// LoadSettings reads a settings file over the defaults.
func LoadSettings(path string) (*Settings, error) {
	cfg := DefaultSettings()
	if path == "" {
		return &cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &cfg, nil
}

// FilterGroups drops the checklist groups named in SkipSections.
func (s *Settings) FilterGroups(groups []checks.Group) []checks.Group {
	if len(s.SkipSections) == 0 {
		return groups
	}
	kept := make([]checks.Group, 0, len(groups))
	for _, g := range groups {
		if slices.Contains(s.SkipSections, g.SectionID) {
			continue
		}
		kept = append(kept, g)
	}
	return kept
}
