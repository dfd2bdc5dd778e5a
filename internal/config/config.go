package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/nlink/internal/chain"
	"github.com/san-kum/nlink/internal/scene"
	"github.com/san-kum/nlink/internal/theme"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGravity     = -9.81
	DefaultDt          = 0.01
	DefaultMargin      = 2
	DefaultJointRadius = 2
	DefaultLength      = 5.0
	DefaultMass        = 1.0
	DefaultTheta       = 1.0

	MaxJointRadius = scene.MaxJointRadius
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// tracer writes to trace with key 'nlink.config'
func tracer() tracing.Trace {
	return tracing.Select("nlink.config")
}

type Config struct {
	Gravity     float64      `yaml:"gravity"`
	Dt          float64      `yaml:"dt"`
	Margin      int          `yaml:"margin"`
	JointRadius int          `yaml:"joint_radius"`
	Selected    int          `yaml:"selected"`
	Paused      bool         `yaml:"paused"`
	ShowStatus  bool         `yaml:"show_status"`
	Theme       string       `yaml:"theme"`
	Links       []LinkConfig `yaml:"links"`
}

// LinkConfig holds the parameters and initial state of one link.
type LinkConfig struct {
	Length float64 `yaml:"length"`
	Mass   float64 `yaml:"mass"`
	Theta  float64 `yaml:"theta"`
	Omega  float64 `yaml:"omega"`
}

func DefaultConfig() *Config {
	return &Config{
		Gravity:     DefaultGravity,
		Dt:          DefaultDt,
		Margin:      DefaultMargin,
		JointRadius: DefaultJointRadius,
		ShowStatus:  true,
		Theme:       theme.Classic.Name,
		Links: []LinkConfig{
			{Length: DefaultLength, Mass: DefaultMass, Theta: DefaultTheta},
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tracer().Infof("config: loaded %s (%d links)", path, len(cfg.Links))
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	n := *c
	n.Links = append([]LinkConfig(nil), c.Links...)
	return &n
}

func (c *Config) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Dt)
	}
	if c.Margin < 0 {
		return fmt.Errorf("%w: margin must be non-negative, got %d", ErrInvalid, c.Margin)
	}
	if !finite(c.Gravity) {
		return fmt.Errorf("%w: gravity must be finite, got %g", ErrInvalid, c.Gravity)
	}
	if c.JointRadius < 0 || c.JointRadius > MaxJointRadius {
		return fmt.Errorf("%w: joint_radius must be in [0,%d], got %d", ErrInvalid, MaxJointRadius, c.JointRadius)
	}
	if len(c.Links) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalid, chain.ErrEmptyChain)
	}
	if err := chain.ValidateLinks(c.ChainLinks(), len(c.Links)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	start, err := c.NewChain()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !start.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalid, chain.ErrNonFinite)
	}
	if c.Selected < 0 || c.Selected >= len(c.Links) {
		return fmt.Errorf("%w: selected link %d outside [0,%d)", ErrInvalid, c.Selected, len(c.Links))
	}
	if c.Theme != "" && !theme.Exists(c.Theme) {
		return fmt.Errorf("%w: unknown theme %q (available: %v)", ErrInvalid, c.Theme, theme.Names())
	}
	return nil
}

// ChainLinks returns the physical link parameters.
func (c *Config) ChainLinks() []chain.Link {
	links := make([]chain.Link, len(c.Links))
	for i, l := range c.Links {
		links[i] = chain.Link{Length: l.Length, Mass: l.Mass}
	}
	return links
}

// InitState returns the initial angles and angular velocities.
func (c *Config) InitState() (angles, velocities []float64) {
	angles = make([]float64, len(c.Links))
	velocities = make([]float64, len(c.Links))
	for i, l := range c.Links {
		angles[i] = l.Theta
		velocities[i] = l.Omega
	}
	return angles, velocities
}

// NewChain builds the initial chain.
func (c *Config) NewChain() (*chain.Chain, error) {
	return chain.New(c.InitState())
}

func (c *Config) Params() chain.Params {
	return chain.Params{Gravity: c.Gravity, Dt: c.Dt}
}

// SceneOptions returns the driver options for this configuration.
func (c *Config) SceneOptions() scene.Options {
	return scene.Options{
		Links:       c.ChainLinks(),
		Params:      c.Params(),
		Margin:      c.Margin,
		JointRadius: c.JointRadius,
		Selected:    c.Selected,
		Paused:      c.Paused,
		ShowStatus:  c.ShowStatus,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Uniform replaces the links with n copies of the first link.
func (c *Config) Uniform(n int) {
	if n < 1 || len(c.Links) == 0 {
		return
	}
	first := c.Links[0]
	c.Links = make([]LinkConfig, n)
	for i := range c.Links {
		c.Links[i] = first
	}
	if c.Selected >= n {
		c.Selected = n - 1
	}
}
