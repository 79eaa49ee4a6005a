package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"omibyte.io/cmhal/cortexm"
	"omibyte.io/cmhal/targets"
)

type Mode string

const (
	ModeInterrupt Mode = "interrupt"
	ModeBusyWait  Mode = "busywait"
)

// Config describes how the interrupt controller and SysTick of a board are
// brought up.
type Config struct {
	Target     string            `yaml:"target"`
	Interrupts []InterruptConfig `yaml:"interrupts"`
	Exceptions []ExceptionConfig `yaml:"exceptions"`
	SysTick    *SysTickConfig    `yaml:"systick,omitempty"`
}

type InterruptConfig struct {
	IRQ      cortexm.Interrupt `yaml:"irq"`
	Priority *uint8            `yaml:"priority,omitempty"`
	Enabled  bool              `yaml:"enabled"`
}

type ExceptionConfig struct {
	Kind     Exception `yaml:"kind"`
	Priority *uint8    `yaml:"priority,omitempty"`
	Enabled  *bool     `yaml:"enabled,omitempty"`
}

type SysTickConfig struct {
	PeriodMs uint32 `yaml:"periodMs"`
	Mode     Mode   `yaml:"mode,omitempty"`

	// Running is only meaningful in interrupt mode. It defaults to true.
	Running *bool `yaml:"running,omitempty"`
}

// Exception decodes an exception kind from its name.
type Exception cortexm.Exception

func (e *Exception) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	kind, ok := cortexm.ParseException(name)
	if !ok {
		return fmt.Errorf("line %d: %q: %w", node.Line, name, ErrUnknownException)
	}
	*e = Exception(kind)
	return nil
}

func (e Exception) MarshalYAML() (interface{}, error) {
	return cortexm.Exception(e).String(), nil
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ResolveTarget returns the target named by the config, or fallback when the
// config does not name one.
func (c *Config) ResolveTarget(fallback string) (targets.TargetInfo, error) {
	name := c.Target
	if len(name) == 0 {
		name = fallback
	}
	target, err := targets.All().Find(name)
	if err != nil {
		return targets.TargetInfo{}, fmt.Errorf("%w: %v", ErrUnknownTarget, err)
	}
	return target, nil
}
