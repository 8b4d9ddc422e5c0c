// Package config loads declarative service definitions and builds
// Services from them. Definitions may be written in YAML or JSON.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	makeservice "github.com/gustavoguichard/make-service"
	"github.com/gustavoguichard/make-service/pkg/keycase"
)

// Key conventions accepted by ServiceConfig.TransformKeys.
const (
	TransformCamel = "camel"
	TransformKebab = "kebab"
	TransformSnake = "snake"
)

// Config is the top-level service definition document.
type Config struct {
	Services map[string]ServiceConfig `yaml:"services" json:"services"`
}

// ServiceConfig defines one service: its base URL, shared headers, an
// optional per-call timeout, and the key convention of the wire format.
type ServiceConfig struct {
	BaseURL string            `yaml:"baseUrl" json:"baseUrl"`
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	Timeout string            `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// TransformKeys names the key convention the remote API speaks
	// ("camel", "kebab" or "snake"). Outgoing query and body keys are
	// deep-transformed to it and response payload keys back to
	// camelCase. Empty disables key transformation.
	TransformKeys string `yaml:"transformKeys,omitempty" json:"transformKeys,omitempty"`
}

// Load reads and parses a service definition file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses a service definition document. YAML is a superset of
// JSON, so both formats go through the same decoder.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every service definition and reports the first
// problem with enough context to fix it.
func (c *Config) Validate() error {
	if len(c.Services) == 0 {
		return fmt.Errorf("config defines no services")
	}
	for name, svc := range c.Services {
		if err := svc.validate(); err != nil {
			return fmt.Errorf("service %q: %w", name, err)
		}
	}
	return nil
}

func (sc ServiceConfig) validate() error {
	if sc.BaseURL == "" {
		return fmt.Errorf("baseUrl is required")
	}
	u, err := url.Parse(sc.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid baseUrl: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("baseUrl must use http or https, got %q", u.Scheme)
	}
	if sc.Timeout != "" {
		if _, err := time.ParseDuration(sc.Timeout); err != nil {
			return fmt.Errorf("invalid timeout %q: %w", sc.Timeout, err)
		}
	}
	switch sc.TransformKeys {
	case "", TransformCamel, TransformKebab, TransformSnake:
	default:
		return fmt.Errorf("unknown transformKeys %q (want camel, kebab or snake)", sc.TransformKeys)
	}
	return nil
}

// Build constructs a Service from the definition. Extra options are
// applied after the definition's own, so callers can override or extend
// it (for example with a custom transport).
func (sc ServiceConfig) Build(extra ...makeservice.Option) (*makeservice.Service, error) {
	if err := sc.validate(); err != nil {
		return nil, err
	}

	var opts []makeservice.Option
	if len(sc.Headers) > 0 {
		opts = append(opts, makeservice.WithHeaders(sc.Headers))
	}
	if sc.Timeout != "" {
		timeout, err := time.ParseDuration(sc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", sc.Timeout, err)
		}
		opts = append(opts, makeservice.WithTimeout(timeout))
	}
	if fn := keyTransform(sc.TransformKeys); fn != nil {
		opts = append(opts,
			makeservice.WithRequestTransformer(makeservice.TransformRequestKeys(fn)),
			makeservice.WithResponseTransformer(makeservice.TransformResponseKeys(keycase.ToCamel)),
		)
	}
	opts = append(opts, extra...)

	return makeservice.New(sc.BaseURL, opts...), nil
}

// BuildAll constructs every defined service, keyed by name.
func (c *Config) BuildAll(extra ...makeservice.Option) (map[string]*makeservice.Service, error) {
	services := make(map[string]*makeservice.Service, len(c.Services))
	for name, sc := range c.Services {
		svc, err := sc.Build(extra...)
		if err != nil {
			return nil, fmt.Errorf("service %q: %w", name, err)
		}
		services[name] = svc
	}
	return services, nil
}

func keyTransform(name string) func(string) string {
	switch name {
	case TransformCamel:
		return keycase.ToCamel
	case TransformKebab:
		return keycase.ToKebab
	case TransformSnake:
		return keycase.ToSnake
	default:
		return nil
	}
}
