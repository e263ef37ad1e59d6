package nodes

import (
	"github.com/agentstation/palette"
	"github.com/agentstation/palette/sequence"
)

// DefaultModelType is the model an agent node starts with.
const DefaultModelType = "gemini"

// DefaultToolNames is the catalogue a tool node can select from.
var DefaultToolNames = []string{"Tool1", "Tool2", "Tool3"}

type options struct {
	counter   *sequence.Counter
	ids       palette.IDGenerator
	modelType string
	toolNames []string
}

// Option configures a node registry.
type Option func(*options)

// WithCounter sets the counter numbering titles.
func WithCounter(c *sequence.Counter) Option {
	return func(o *options) {
		o.counter = c
	}
}

// WithIDGenerator sets the instance id source.
func WithIDGenerator(g palette.IDGenerator) Option {
	return func(o *options) {
		o.ids = g
	}
}

// WithModelType sets the default modelType of agent nodes. Tool nodes
// ignore it.
func WithModelType(model string) Option {
	return func(o *options) {
		o.modelType = model
	}
}

// WithToolNames replaces the tool catalogue of tool nodes. Agent nodes
// ignore it.
func WithToolNames(names ...string) Option {
	return func(o *options) {
		o.toolNames = append([]string(nil), names...)
	}
}

func buildOptions(opts []Option) options {
	o := options{
		modelType: DefaultModelType,
		toolNames: DefaultToolNames,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.counter == nil {
		o.counter = &sequence.Counter{}
	}
	if o.ids == nil {
		o.ids = palette.NanoID{}
	}
	return o
}
