// Package scenario loads simulation scenarios from YAML and resolves them
// into characters, effect definitions and a turn script
package scenario

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
)

// Scenario is the decoded form of a scenario file
type Scenario struct {
	Attributes []string                   `yaml:"attributes"`
	Tags       []string                   `yaml:"tags"`
	Effects    map[string]EffectConfig    `yaml:"effects"`
	Characters map[string]CharacterConfig `yaml:"characters"`
	Script     []ScriptEntry              `yaml:"script"`
}

// EffectConfig describes one effect definition
type EffectConfig struct {
	Policy      string           `yaml:"policy"`
	Duration    float64          `yaml:"duration"`
	Period      float64          `yaml:"period"`
	Modifiers   []ModifierConfig `yaml:"modifiers"`
	GrantedTags []string         `yaml:"granted_tags"`
	RequireTags []string         `yaml:"require_tags"`
	IgnoreTags  []string         `yaml:"ignore_tags"`
}

// ModifierConfig describes one modifier. Exactly one of Magnitude, Curve
// and Dice must be set.
type ModifierConfig struct {
	Attribute  string       `yaml:"attribute"`
	Op         string       `yaml:"op"`
	Magnitude  *float64     `yaml:"magnitude"`
	Curve      []CurvePoint `yaml:"curve"`
	Dice       string       `yaml:"dice"`
	Multiplier *float64     `yaml:"multiplier"` // defaults to 1
}

// CurvePoint is one level sample of a magnitude curve
type CurvePoint struct {
	Level float64 `yaml:"level"`
	Value float64 `yaml:"value"`
}

// CharacterConfig describes a character and its base attribute values.
// Declared attributes missing here start at zero. Level defaults to 1.
type CharacterConfig struct {
	Level      *float64           `yaml:"level"`
	Attributes map[string]float64 `yaml:"attributes"`
}

// ScriptEntry applies an effect from source to target at the start of a turn
type ScriptEntry struct {
	Turn   int      `yaml:"turn"`
	Source string   `yaml:"source"`
	Target string   `yaml:"target"`
	Effect string   `yaml:"effect"`
	Level  *float64 `yaml:"level"`
}

// Load decodes a scenario. Unknown fields are rejected.
func Load(r io.Reader) (*Scenario, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var s Scenario
	if err := decoder.Decode(&s); err != nil {
		if err == io.EOF {
			return nil, engineerr.Configuration("scenario is empty")
		}
		return nil, engineerr.WrapWithCode(err, engineerr.CodeConfiguration, "failed to decode scenario")
	}

	return &s, nil
}

// LoadFile decodes the scenario stored at path
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, engineerr.NotFoundf("scenario file %s not found", path).
				WithMeta("path", path)
		}
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, engineerr.Wrapf(err, "scenario %s", path).WithMeta("path", path)
	}
	return s, nil
}
