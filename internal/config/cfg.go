// Package config loads program configuration from the embedded template and an
// optional user file.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"github.com/kk-code-lab/clipfrag/internal/fragment"
)

// AppName is used for the logger name and the command line.
const AppName = "clipfrag"

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	FragmentConfig struct {
		Unit  string `yaml:"unit" validate:"required,oneof=chars bytes"`
		Limit int    `yaml:"limit" validate:"gt=0"`
	}

	TemplatesConfig struct {
		Header string `yaml:"header"`
		Footer string `yaml:"footer"`
	}

	ClipboardConfig struct {
		Backend string   `yaml:"backend" validate:"required,oneof=auto system command osc52"`
		Command []string `yaml:"command" validate:"dive,required"`
	}

	SessionConfig struct {
		Preview bool `yaml:"preview"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Fragment  FragmentConfig  `yaml:"fragment"`
		Templates TemplatesConfig `yaml:"templates"`
		Clipboard ClipboardConfig `yaml:"clipboard"`
		Session   SessionConfig   `yaml:"session"`
		Logging   LoggingConfig   `yaml:"logging"`
	}
)

const (
	// NOTE: must match yaml field names above. Header and footer are expanded
	// per input file, not at load time.
	HeaderTemplateFieldName TemplateFieldName = "header"
	FooterTemplateFieldName TemplateFieldName = "footer"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(HeaderTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(FooterTemplateFieldName)),
)

// Budget converts the fragment section into a fragment budget.
func (c *Config) Budget() (fragment.Budget, error) {
	unit, err := fragment.ParseUnit(c.Fragment.Unit)
	if err != nil {
		return fragment.Budget{}, err
	}
	b := fragment.Budget{Unit: unit, Limit: c.Fragment.Limit}
	if err := b.Validate(); err != nil {
		return fragment.Budget{}, err
	}
	return b, nil
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns the default configuration expanded from the embedded template.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
