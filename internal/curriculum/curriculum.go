// Package curriculum loads the day and module layout of an onboarding program.
package curriculum

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCurriculum []byte

// ErrEmptyCurriculum is returned when a curriculum defines no days
var ErrEmptyCurriculum = errors.New("curriculum defines no days")

// Module is the smallest trackable unit of onboarding work
type Module struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Steps int    `yaml:"steps,omitempty"` // >1 for multi-step modules that report partial progress
}

// Day groups the modules that must be completed to satisfy it
type Day struct {
	Number    int      `yaml:"day"`
	Title     string   `yaml:"title"`
	Threshold int      `yaml:"threshold,omitempty"` // 0 means every module is required
	Modules   []Module `yaml:"modules"`
}

// Required returns how many modules must be complete for the day to be satisfied.
func (d Day) Required() int {
	if d.Threshold > 0 {
		return d.Threshold
	}
	return len(d.Modules)
}

// ModuleIDs returns the day's module ids in configured order.
func (d Day) ModuleIDs() []string {
	ids := make([]string, len(d.Modules))
	for i, m := range d.Modules {
		ids[i] = m.ID
	}
	return ids
}

// Curriculum is the full, ordered onboarding program
type Curriculum struct {
	Name string `yaml:"name"`
	Days []Day  `yaml:"days"`
}

// DayCount returns N, the number of days in the program.
func (c *Curriculum) DayCount() int {
	return len(c.Days)
}

// Day returns the configuration for day n.
func (c *Curriculum) Day(n int) (Day, bool) {
	if n < 1 || n > len(c.Days) {
		return Day{}, false
	}
	return c.Days[n-1], true
}

// Default returns the built-in five day curriculum.
func Default() *Curriculum {
	c, err := Parse(defaultCurriculum)
	if err != nil {
		panic(fmt.Sprintf("embedded curriculum is invalid: %v", err))
	}
	return c
}

// Load reads and validates a curriculum file. An empty path returns the default.
func Load(path string) (*Curriculum, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curriculum: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML curriculum.
func Parse(data []byte) (*Curriculum, error) {
	var c Curriculum
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse curriculum: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that days are numbered 1..N in order, that module ids are
// unique across the whole program and that every threshold is reachable.
func (c *Curriculum) Validate() error {
	if len(c.Days) == 0 {
		return ErrEmptyCurriculum
	}

	seen := make(map[string]int)
	for i, d := range c.Days {
		if d.Number != i+1 {
			return fmt.Errorf("day %d is listed at position %d, days must be numbered 1..N in order", d.Number, i+1)
		}
		if len(d.Modules) == 0 {
			return fmt.Errorf("day %d has no modules", d.Number)
		}
		if d.Threshold < 0 || d.Threshold > len(d.Modules) {
			return fmt.Errorf("day %d threshold %d must be between 1 and %d", d.Number, d.Threshold, len(d.Modules))
		}
		for _, m := range d.Modules {
			if strings.TrimSpace(m.ID) == "" {
				return fmt.Errorf("day %d has a module without an id", d.Number)
			}
			if other, dup := seen[m.ID]; dup {
				return fmt.Errorf("module %q appears in day %d and day %d", m.ID, other, d.Number)
			}
			if m.Steps < 0 {
				return fmt.Errorf("module %q has negative steps", m.ID)
			}
			seen[m.ID] = d.Number
		}
	}
	return nil
}
