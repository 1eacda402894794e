package statemachine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

type definitionDocument struct {
	Initial *string   `yaml:"initial"`
	States  yaml.Node `yaml:"states"`
}

type stateDocument struct {
	Transitions Transitions `yaml:"transitions"`
}

// ParseConfig decodes a YAML (or JSON) definition:
//
//	initial: normal
//	states:
//	  normal:
//	    transitions:
//	      flee: hiding
//	  hiding:
//	    transitions:
//	      return: normal
//
// The order of the states mapping is preserved. Only the document shape is
// checked here; use Config.Validate for cross-references.
func ParseConfig(data []byte) (Config, error) {
	var doc definitionDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, errors.Join(ErrInvalidDefinition, err)
	}
	// An empty initial name is allowed; only a missing key is a shape error.
	if doc.Initial == nil {
		return Config{}, fmt.Errorf("%w: initial state is required", ErrInvalidDefinition)
	}
	if doc.States.Kind != yaml.MappingNode {
		return Config{}, fmt.Errorf("%w: states must be a mapping", ErrInvalidDefinition)
	}

	cfg := Config{Initial: *doc.Initial}
	seen := make(map[string]struct{}, len(doc.States.Content)/2)

	// Mapping content alternates key and value nodes.
	for i := 0; i+1 < len(doc.States.Content); i += 2 {
		key, value := doc.States.Content[i], doc.States.Content[i+1]
		name := key.Value
		if _, dup := seen[name]; dup {
			return Config{}, fmt.Errorf("%w: state '%s' declared twice (line %d)", ErrInvalidDefinition, name, key.Line)
		}
		seen[name] = struct{}{}

		var sd stateDocument
		if err := value.Decode(&sd); err != nil {
			return Config{}, errors.Join(
				fmt.Errorf("%w: state '%s'", ErrInvalidDefinition, name),
				err,
			)
		}
		if sd.Transitions == nil {
			sd.Transitions = Transitions{}
		}
		cfg.States = append(cfg.States, StateConfig{Name: name, Transitions: sd.Transitions})
	}

	return cfg, nil
}

// DecodeConfig reads a whole definition from r and parses it.
func DecodeConfig(r io.Reader) (Config, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return Config{}, fmt.Errorf("read definition: %w", err)
	}
	return ParseConfig(buf.Bytes())
}

// LoadConfig reads and parses the definition file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read definition %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// NewFromFile loads the definition at path and builds a machine from it.
func NewFromFile(path string, opts ...Option) (*Machine, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...), nil
}

// MarshalYAML encodes the config in the same shape ParseConfig reads,
// keeping state declaration order.
func (c Config) MarshalYAML() (any, error) {
	states := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range c.States {
		var value yaml.Node
		if err := value.Encode(stateDocument{Transitions: s.Transitions}); err != nil {
			return nil, err
		}
		states.Content = append(states.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.Name},
			&value,
		)
	}
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "initial"},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Initial},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "states"},
			states,
		},
	}, nil
}

// Validate checks the config for problems the machine only detects lazily:
// an undeclared initial state, empty or duplicate state names and transitions
// into undeclared states. All problems are reported at once.
func (c Config) Validate() error {
	var errs []error

	declared := make(map[string]struct{}, len(c.States))
	for i, s := range c.States {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("state #%d has an empty name", i))
			continue
		}
		if _, dup := declared[s.Name]; dup {
			errs = append(errs, fmt.Errorf("state '%s' declared twice", s.Name))
			continue
		}
		declared[s.Name] = struct{}{}
	}

	if _, ok := declared[c.Initial]; !ok {
		errs = append(errs, fmt.Errorf("initial state '%s' is not defined", c.Initial))
	}

	for _, s := range c.States {
		for _, event := range slices.Sorted(maps.Keys(s.Transitions)) {
			target := s.Transitions[event]
			if _, ok := declared[target]; !ok {
				errs = append(errs, fmt.Errorf("state '%s' event '%s': target '%s' is not defined", s.Name, event, target))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidDefinition}, errs...)...)
}

// LogValue lets a Config be logged as a compact group.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("initial", c.Initial),
		slog.Int("states", len(c.States)),
	)
}
