package nodes

import (
	"fmt"

	"github.com/agentstation/palette"
	"github.com/agentstation/palette/schema"
	"github.com/agentstation/palette/sequence"
)

// Tool node palette metadata.
const (
	ToolIcon        = "assets/icon-tool.jpg"
	ToolDescription = "This node represents a tool that can be connected to an AI agent node. " +
		"The agent can use this tool to perform specific actions or access external functionalities."
	ToolWidth  = 340
	ToolHeight = 220
)

// ToolNodeRegistry describes the tool node kind.
type ToolNodeRegistry struct {
	counter *sequence.Counter
	ids     palette.IDGenerator
	inputs  schema.Object
	outputs schema.Object
}

var _ palette.NodeRegistry = (*ToolNodeRegistry)(nil)

// NewToolNodeRegistry creates the tool registry. It fails when the tool
// catalogue is empty or contains duplicates.
func NewToolNodeRegistry(opts ...Option) (*ToolNodeRegistry, error) {
	o := buildOptions(opts)

	names, err := schema.NewEnum("The name of the tool.", o.toolNames...)
	if err != nil {
		return nil, fmt.Errorf("tool catalogue: %w", err)
	}

	return &ToolNodeRegistry{
		counter: o.counter,
		ids:     o.ids,
		inputs: schema.MustObject(
			schema.Required("toolName", names),
			schema.Required("toolDescription", schema.String{Desc: "A description of what the tool does."}),
		),
		outputs: schema.MustObject(
			schema.Optional("toolResult", schema.String{Desc: "The result or output from the tool."}),
		),
	}, nil
}

// Type returns palette.Tool.
func (r *ToolNodeRegistry) Type() palette.NodeType { return palette.Tool }

// Info returns the palette entry.
func (r *ToolNodeRegistry) Info() palette.Info {
	return palette.Info{Icon: ToolIcon, Description: ToolDescription}
}

// Meta returns the default canvas size.
func (r *ToolNodeRegistry) Meta() palette.Meta {
	return palette.Meta{Size: palette.Size{Width: ToolWidth, Height: ToolHeight}}
}

// OnAdd creates a new tool instance and advances the tool title counter.
// The tool name starts empty, outside the catalogue, until the user picks
// one.
func (r *ToolNodeRegistry) OnAdd() palette.NodeInstance {
	return palette.NodeInstance{
		ID:   r.ids.NewID(palette.Tool),
		Type: palette.Tool,
		Data: palette.NodeData{
			Title: fmt.Sprintf("%s_%d", palette.Tool.Label(), r.counter.Next()),
			InputsValues: map[string]palette.FlowValue{
				"toolName":        palette.ConstantValue(""),
				"toolDescription": palette.TemplateValue(""),
			},
			Inputs:  r.inputs,
			Outputs: r.outputs,
		},
	}
}
