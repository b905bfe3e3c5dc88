package lint

import (
	"fmt"
	"os"

	"github.com/cfglab/condlint/internal/schema"
	tt "github.com/cfglab/condlint/internal/types"
	"gopkg.in/yaml.v3"
)

// Config represents the overall configuration: per-rule settings plus the
// declared universe of expected cfg names and values.
//
// The `expected` section is kept as a raw yaml.Node rather than a Go map:
// mapping order must survive parsing, because it is the suggestion pool
// order and tie-breaks between equally close names depend on it.
type Config struct {
	Name     string                   `yaml:"name"`
	Rules    map[string]tt.ConfigRule `yaml:"rules"`
	Expected yaml.Node                `yaml:"expected"`
}

// ParseConfigurationFile reads and decodes a condlint YAML config.
func ParseConfigurationFile(configurationPath string) (Config, error) {
	var config Config

	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("error parsing %s: %w", configurationPath, err)
	}

	return config, nil
}

// BuildSchema turns the `expected` section into a schema, on top of the
// built-in well-known names. Entry forms:
//
//	feature: [foo, bar]   # restricted value set, declared order kept
//	channel: nightly      # single-value shorthand
//	fuzzing:              # name known, any value (or none) accepted
func (c Config) BuildSchema() (*schema.Schema, error) {
	sch := schema.New()

	if c.Expected.Kind == 0 {
		return sch, nil
	}
	if c.Expected.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("`expected` must be a mapping of name to values")
	}

	for i := 0; i+1 < len(c.Expected.Content); i += 2 {
		key := c.Expected.Content[i]
		val := c.Expected.Content[i+1]
		name := key.Value

		switch val.Kind {
		case yaml.ScalarNode:
			if val.Tag == "!!null" {
				sch.Declare(name, nil)
				continue
			}
			sch.Declare(name, []string{val.Value})
		case yaml.SequenceNode:
			values := make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("values for `%s` must be strings", name)
				}
				values = append(values, item.Value)
			}
			sch.Declare(name, values)
		default:
			return nil, fmt.Errorf("values for `%s` must be a sequence, a scalar or empty", name)
		}
	}

	return sch, nil
}
