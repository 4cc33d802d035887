// Package config loads gemc settings from flags, GEMC_* environment
// variables and an optional gemc.yaml file through viper, and applies named
// profiles on top of the base settings.
package config

import (
	"sort"

	"github.com/jingkaihe/gemc/pkg/compiler"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables read by gemc.
const EnvPrefix = "GEMC"

// Settings is the effective gemc configuration.
type Settings struct {
	ProjectRoot string   `mapstructure:"project_root" yaml:"project_root"`
	TemplateDir string   `mapstructure:"template_dir" yaml:"template_dir"`
	OutputDir   string   `mapstructure:"output_dir" yaml:"output_dir"`
	SkillsDir   string   `mapstructure:"skills_dir" yaml:"skills_dir"`
	Extension   string   `mapstructure:"extension" yaml:"extension"`
	Exclude     []string `mapstructure:"exclude" yaml:"exclude,omitempty"`
	Lint        bool     `mapstructure:"lint" yaml:"lint"`
	Strict      bool     `mapstructure:"strict" yaml:"strict"`
	LogLevel    string   `mapstructure:"log_level" yaml:"log_level"`
	LogFormat   string   `mapstructure:"log_format" yaml:"log_format"`
	Quiet       bool     `mapstructure:"quiet" yaml:"quiet"`
	Color       string   `mapstructure:"color" yaml:"color"`

	Profile  string                            `mapstructure:"profile" yaml:"profile,omitempty"`
	Profiles map[string]map[string]interface{} `mapstructure:"profiles" yaml:"profiles,omitempty"`
}

// SetDefaults registers every key with its default so environment variables
// are honoured for all of them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("project_root", "")
	v.SetDefault("template_dir", compiler.DefaultTemplateDir)
	v.SetDefault("output_dir", compiler.DefaultOutputDir)
	v.SetDefault("skills_dir", compiler.DefaultSkillsDir)
	v.SetDefault("extension", compiler.DefaultExtension)
	v.SetDefault("exclude", []string{})
	v.SetDefault("lint", true)
	v.SetDefault("strict", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "fmt")
	v.SetDefault("quiet", false)
	v.SetDefault("color", "auto")
	v.SetDefault("profile", "")
}

// Init wires environment variables and config file discovery into v and reads
// the config file. An explicit configFile must exist; otherwise gemc.yaml is
// looked up in the working directory and in $HOME/.config/gemc, and its
// absence is not an error.
func Init(v *viper.Viper, configFile string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("gemc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/gemc")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "failed to read config file")
	}
	return nil
}

// Load unmarshals v into Settings and applies the selected profile.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal configuration")
	}

	if s.Profile != "" {
		if err := s.applyProfile(s.Profile); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// applyProfile merges the named profile onto s. Only keys present in the
// profile change; profiles cannot select other profiles.
func (s *Settings) applyProfile(name string) error {
	profile, ok := s.Profiles[name]
	if !ok {
		return errors.Errorf("profile %q not found (available: %v)", name, s.ProfileNames())
	}

	overrides := make(map[string]interface{}, len(profile))
	for k, val := range profile {
		if k == "profile" || k == "profiles" {
			continue
		}
		overrides[k] = val
	}
	if _, ok := overrides["exclude"]; ok {
		s.Exclude = nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           s,
		WeaklyTypedInput: true,
		ZeroFields:       false,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create profile decoder")
	}
	if err := decoder.Decode(overrides); err != nil {
		return errors.Wrapf(err, "failed to apply profile %q", name)
	}
	return nil
}

// ProfileNames returns the configured profile names, sorted.
func (s *Settings) ProfileNames() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CompilerConfig converts the settings into a compiler configuration.
func (s *Settings) CompilerConfig() compiler.Config {
	return compiler.Config{
		ProjectRoot: s.ProjectRoot,
		TemplateDir: s.TemplateDir,
		OutputDir:   s.OutputDir,
		SkillsDir:   s.SkillsDir,
		Extension:   s.Extension,
		Exclude:     s.Exclude,
		Lint:        s.Lint,
	}
}

// YAML renders the settings without the profile table.
func (s *Settings) YAML() ([]byte, error) {
	out := *s
	out.Profiles = nil
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render configuration")
	}
	return data, nil
}
