package nodes

import (
	"fmt"

	"github.com/agentstation/palette"
	"github.com/agentstation/palette/schema"
	"github.com/agentstation/palette/sequence"
)

// Agent node palette metadata.
const (
	AgentIcon        = "assets/icon-agent.jpg"
	AgentDescription = "This node represents an AI agent that can perform a user-specified task. " +
		"The user can input the specific task or instruction for the agent to execute."
	AgentWidth  = 360
	AgentHeight = 340
)

// AgentNodeRegistry describes the agent node kind.
type AgentNodeRegistry struct {
	counter   *sequence.Counter
	ids       palette.IDGenerator
	modelType string
	inputs    schema.Object
	outputs   schema.Object
}

var _ palette.NodeRegistry = (*AgentNodeRegistry)(nil)

// NewAgentNodeRegistry creates the agent registry.
func NewAgentNodeRegistry(opts ...Option) *AgentNodeRegistry {
	o := buildOptions(opts)
	return &AgentNodeRegistry{
		counter:   o.counter,
		ids:       o.ids,
		modelType: o.modelType,
		inputs: schema.MustObject(
			schema.Required("name", schema.String{Desc: "The name of the agent."}),
			schema.Required("task", schema.String{Desc: "The specific task or instruction for the agent to perform."}),
			schema.Required("modelType", schema.String{Desc: `The type of model the agent will use, e.g., "gemini".`}),
		),
		outputs: schema.MustObject(
			schema.Optional("result", schema.String{}),
		),
	}
}

// Type returns palette.Agent.
func (r *AgentNodeRegistry) Type() palette.NodeType { return palette.Agent }

// Info returns the palette entry.
func (r *AgentNodeRegistry) Info() palette.Info {
	return palette.Info{Icon: AgentIcon, Description: AgentDescription}
}

// Meta returns the default canvas size.
func (r *AgentNodeRegistry) Meta() palette.Meta {
	return palette.Meta{Size: palette.Size{Width: AgentWidth, Height: AgentHeight}}
}

// OnAdd creates a new agent instance and advances the agent title counter.
func (r *AgentNodeRegistry) OnAdd() palette.NodeInstance {
	return palette.NodeInstance{
		ID:   r.ids.NewID(palette.Agent),
		Type: palette.Agent,
		Data: palette.NodeData{
			Title: fmt.Sprintf("%s_%d", palette.Agent.Label(), r.counter.Next()),
			InputsValues: map[string]palette.FlowValue{
				"name":      palette.TemplateValue(""),
				"task":      palette.TemplateValue(""),
				"modelType": palette.ConstantValue(r.modelType),
			},
			Inputs:  r.inputs,
			Outputs: r.outputs,
		},
	}
}
