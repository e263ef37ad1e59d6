package palette

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/agentstation/palette/schema"
)

// ErrUnknownNodeType is returned when a string does not name a node kind.
var ErrUnknownNodeType = errors.New("unknown node type")

// NodeType identifies a node kind of the workflow editor.
type NodeType string

// Node kinds known to the editor. The set is closed.
const (
	Start     NodeType = "start"
	End       NodeType = "end"
	Condition NodeType = "condition"
	Loop      NodeType = "loop"
	LLM       NodeType = "llm"
	Comment   NodeType = "comment"
	Agent     NodeType = "agent"
	Tool      NodeType = "tool"
)

var nodeTypes = []NodeType{Start, End, Condition, Loop, LLM, Comment, Agent, Tool}

// NodeTypes returns every node kind in declaration order.
func NodeTypes() []NodeType {
	out := make([]NodeType, len(nodeTypes))
	copy(out, nodeTypes)
	return out
}

// ParseNodeType converts s into a NodeType.
func ParseNodeType(s string) (NodeType, error) {
	for _, t := range nodeTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownNodeType, s)
}

// Valid reports whether t is a member of the node kind enumeration.
func (t NodeType) Valid() bool {
	_, err := ParseNodeType(string(t))
	return err == nil
}

// Label returns the capitalised form used as a title prefix.
func (t NodeType) Label() string {
	switch t {
	case LLM:
		return "LLM"
	case "":
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

func (t NodeType) String() string { return string(t) }

// UnmarshalText rejects node kinds outside the enumeration.
func (t *NodeType) UnmarshalText(text []byte) error {
	parsed, err := ParseNodeType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Size is a width/height pair in canvas units.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Info is what the palette shows for a node kind.
type Info struct {
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Meta holds canvas placement defaults.
type Meta struct {
	Size Size `json:"size"`
}

// NodeRegistry describes one node kind and creates its instances.
//
// OnAdd is called by the editor when the user adds a node of this kind to a
// canvas. It cannot fail.
type NodeRegistry interface {
	Type() NodeType
	Info() Info
	Meta() Meta
	OnAdd() NodeInstance
}

// ValueType tags an input value.
type ValueType string

const (
	// Constant values are used as-is.
	Constant ValueType = "constant"
	// Template values contain interpolation syntax resolved at run time.
	Template ValueType = "template"
)

// UnmarshalText rejects unknown value tags.
func (v *ValueType) UnmarshalText(text []byte) error {
	switch ValueType(text) {
	case Constant, Template:
		*v = ValueType(text)
		return nil
	}
	return fmt.Errorf("unknown value type %q", string(text))
}

// FlowValue is a tagged input value.
type FlowValue struct {
	Type    ValueType `json:"type"`
	Content string    `json:"content"`
}

// ConstantValue returns a constant FlowValue.
func ConstantValue(content string) FlowValue {
	return FlowValue{Type: Constant, Content: content}
}

// TemplateValue returns a template FlowValue.
func TemplateValue(content string) FlowValue {
	return FlowValue{Type: Template, Content: content}
}

// NodeData is the editable payload of a placed node.
type NodeData struct {
	Title        string               `json:"title"`
	InputsValues map[string]FlowValue `json:"inputsValues"`
	Inputs       schema.Object        `json:"inputs"`
	Outputs      schema.Object        `json:"outputs"`
}

// NodeInstance is a node placed on a canvas.
type NodeInstance struct {
	ID   string   `json:"id"`
	Type NodeType `json:"type"`
	Data NodeData `json:"data"`
}

// Map returns the generic JSON form of the instance.
func (n NodeInstance) Map() (map[string]any, error) {
	raw, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("marshal node %s: %w", n.ID, err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal node %s: %w", n.ID, err)
	}
	return out, nil
}

// Logger provides structured logging.
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...any)
	Info(ctx context.Context, msg string, keysAndValues ...any)
	Error(ctx context.Context, msg string, keysAndValues ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(context.Context, string, ...any) {}
func (NopLogger) Info(context.Context, string, ...any)  {}
func (NopLogger) Error(context.Context, string, ...any) {}
