package targets

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/cmhal/cortexm"
)

//go:embed targets.yaml
var rawTargets []byte

var targets Targets
var ErrTargetNotFound = errors.New("target not found")

func All() Targets {
	return targets
}

type Targets []TargetInfo
type TargetInfo struct {
	Series       string   `yaml:"series"`
	Chips        []string `yaml:"chips"`
	Cpu          string   `yaml:"cpu"`
	CoreClock    uint32   `yaml:"coreClock"`
	MaxInterrupt uint8    `yaml:"maxInterrupt"`
	PriorityBits uint8    `yaml:"priorityBits"`
}

// MaxPriority is the largest priority value the target implements.
func (t TargetInfo) MaxPriority() uint8 {
	return 1<<t.PriorityBits - 1
}

// HasInterrupt reports whether the IRQ line exists on the target.
func (t TargetInfo) HasInterrupt(i cortexm.Interrupt) bool {
	return i <= cortexm.Interrupt(t.MaxInterrupt) && i <= cortexm.MaxInterrupt
}

// Find looks a target up by series first, then by chip name.
func (t Targets) Find(name string) (TargetInfo, error) {
	if target, err := t.FindBySeries(name); err == nil {
		return target, nil
	}
	return t.FindByChip(name)
}

func (t Targets) FindBySeries(name string) (TargetInfo, error) {
	for _, target := range t {
		if target.Series == strings.ToLower(name) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("series %q: %w", name, ErrTargetNotFound)
}

func (t Targets) FindByChip(name string) (TargetInfo, error) {
	for _, target := range t {
		if slices.Contains(target.Chips, strings.ToLower(name)) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("chip %q: %w", name, ErrTargetNotFound)
}

func init() {
	var t struct {
		Elements []TargetInfo `yaml:"targets"`
	}
	if err := yaml.Unmarshal(rawTargets, &t); err != nil {
		panic(err)
	}

	targets = t.Elements
}
