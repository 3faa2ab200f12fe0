package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Script files are YAML documents with one top-level "connections" list.
// Each entry is the script for one expected connection, in accept order,
// and each step is a [kind, arg, label] triple:
//
//	connections:
//	  - - [recv, HELLO, wait for greeting]
//	    - [send, BYE, say goodbye]
//	  - - [packrecv, "48454C4C4F32", wait for second greeting]
//	    - [sleep, 0.5, let the client wait]
//	    - [packsend, "42594532", say goodbye again]
//
// Code steps carry Go callbacks and cannot appear in files.

type fileSpec struct {
	Connections [][]Step `yaml:"connections"`
}

// UnmarshalYAML decodes a step from its [kind, arg, label] file form.
func (st *Step) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) != 3 {
		return fmt.Errorf("line %d: step must be a [kind, arg, label] triple", value.Line)
	}

	for _, n := range value.Content {
		if n.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: step elements must be scalars", n.Line)
		}
	}

	kind := Kind(value.Content[0].Value)
	if kind == KindCode {
		return fmt.Errorf("line %d: code steps cannot be loaded from files", value.Line)
	}

	st.Kind = kind
	st.Arg = value.Content[1].Value
	st.Label = value.Content[2].Value
	return nil
}

// Decode parses YAML script data into one Script per expected connection.
func Decode(data []byte) ([]*Script, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(): %w", err)
	}

	if len(spec.Connections) == 0 {
		return nil, fmt.Errorf("script file declares no connections")
	}

	scripts := make([]*Script, 0, len(spec.Connections))
	for i, steps := range spec.Connections {
		s, err := ParseSteps(steps)
		if err != nil {
			return nil, fmt.Errorf("connection %d: %w", i, err)
		}
		scripts = append(scripts, s)
	}

	return scripts, nil
}

// Load reads and parses the script file at path.
func Load(path string) ([]*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s): %w", path, err)
	}

	scripts, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return scripts, nil
}
