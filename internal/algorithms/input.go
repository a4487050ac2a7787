package algorithms

import (
	"fmt"
	"slices"

	"github.com/mitchellh/mapstructure"

	"github.com/san-kum/algotrace/internal/generators"
	"github.com/san-kum/algotrace/internal/trace"
)

// Input is the union of every generator parameter. Each kind reads only the
// fields listed by [Kind.Fields].
type Input struct {
	Array  []int `mapstructure:"array" yaml:"array,omitempty"`
	Target int   `mapstructure:"target" yaml:"target,omitempty"`

	Graph generators.Graph `mapstructure:"graph" yaml:"graph,omitempty"`
	Start int              `mapstructure:"start" yaml:"start,omitempty"`
	// Goal < 0 means the traversal has no goal vertex.
	Goal int `mapstructure:"goal" yaml:"goal,omitempty"`

	Text    string `mapstructure:"text" yaml:"text,omitempty"`
	Pattern string `mapstructure:"pattern" yaml:"pattern,omitempty"`

	N        int    `mapstructure:"n" yaml:"n,omitempty"`
	A        string `mapstructure:"a" yaml:"a,omitempty"`
	B        string `mapstructure:"b" yaml:"b,omitempty"`
	Weights  []int  `mapstructure:"weights" yaml:"weights,omitempty"`
	Values   []int  `mapstructure:"values" yaml:"values,omitempty"`
	Capacity int    `mapstructure:"capacity" yaml:"capacity,omitempty"`
}

// NewInput returns an empty input with no goal vertex.
func NewInput() Input {
	return Input{Goal: -1}
}

// Clone deep-copies the slices so the copy can be changed freely.
func (in Input) Clone() Input {
	out := in
	out.Array = slices.Clone(in.Array)
	out.Graph.Edges = slices.Clone(in.Graph.Edges)
	out.Weights = slices.Clone(in.Weights)
	out.Values = slices.Clone(in.Values)
	return out
}

// DecodeInput converts loosely typed parameters, such as a YAML params block
// or flag values, into an Input. Unknown keys are rejected.
func DecodeInput(raw map[string]any) (Input, error) {
	return Overlay(NewInput(), raw)
}

// Overlay decodes raw on top of base. Keys present in raw replace the base
// value, including whole slices.
func Overlay(base Input, raw map[string]any) (Input, error) {
	out := base.Clone()
	if len(raw) == 0 {
		return out, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Input{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	return out, nil
}

// Resolve builds the input for k from an optional preset name and raw
// overrides. With no preset the kind's default preset is used.
func Resolve(k Kind, preset string, raw map[string]any) (Input, error) {
	if preset == "" {
		preset = DefaultPreset
	}
	base, err := Preset(k, preset)
	if err != nil {
		return Input{}, err
	}
	return Overlay(base, raw)
}

// Run parses name, resolves its input and generates the trace.
func Run(name, preset string, raw map[string]any) (Kind, *trace.Trace, error) {
	k, err := Parse(name)
	if err != nil {
		return 0, nil, err
	}
	in, err := Resolve(k, preset, raw)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", k, err)
	}
	return k, Generate(k, in), nil
}
