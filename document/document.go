// Package document holds the node instances placed on one canvas.
//
// A Document keeps instance ids unique, tracks the edges between placed
// nodes and persists to YAML or JSON.
package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agentstation/palette"
)

// Errors returned by Document operations.
var (
	ErrDuplicateID   = errors.New("duplicate node id")
	ErrInvalidID     = errors.New("node id does not match its type")
	ErrNodeNotFound  = errors.New("node not found")
	ErrSelfEdge      = errors.New("node cannot connect to itself")
	ErrDuplicateEdge = errors.New("edge already exists")
)

// Edge connects two placed nodes, e.g. a tool to the agent using it.
type Edge struct {
	SourceNodeID string `json:"sourceNodeID"`
	TargetNodeID string `json:"targetNodeID"`
}

// Document is a workflow canvas.
//
// Counters records the last title number handed out per node kind so a
// later session continues the numbering instead of reusing titles.
type Document struct {
	ID       string                     `json:"id"`
	Name     string                     `json:"name,omitempty"`
	Nodes    []palette.NodeInstance     `json:"nodes"`
	Edges    []Edge                     `json:"edges,omitempty"`
	Counters map[palette.NodeType]int64 `json:"counters,omitempty"`
}

// New creates an empty document with a fresh id.
func New(name string) *Document {
	return &Document{
		ID:    uuid.NewString(),
		Name:  name,
		Nodes: []palette.NodeInstance{},
	}
}

// AddNode places inst on the canvas.
func (d *Document) AddNode(inst palette.NodeInstance) error {
	if err := checkNode(inst); err != nil {
		return err
	}
	if d.index(inst.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, inst.ID)
	}
	d.Nodes = append(d.Nodes, inst)
	return nil
}

// Node returns the placed node with id.
func (d *Document) Node(id string) (palette.NodeInstance, bool) {
	i := d.index(id)
	if i < 0 {
		return palette.NodeInstance{}, false
	}
	return d.Nodes[i], true
}

// UpdateNode replaces the placed node carrying inst.ID.
func (d *Document) UpdateNode(inst palette.NodeInstance) error {
	i := d.index(inst.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, inst.ID)
	}
	if err := checkNode(inst); err != nil {
		return err
	}
	d.Nodes[i] = inst
	return nil
}

// RemoveNode deletes the node and every edge touching it. Title counters
// are not affected: numbers are never reused.
func (d *Document) RemoveNode(id string) error {
	i := d.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	d.Nodes = append(d.Nodes[:i], d.Nodes[i+1:]...)

	edges := d.Edges[:0]
	for _, e := range d.Edges {
		if e.SourceNodeID != id && e.TargetNodeID != id {
			edges = append(edges, e)
		}
	}
	d.Edges = edges
	return nil
}

// Connect adds an edge from source to target.
func (d *Document) Connect(source, target string) error {
	if source == target {
		return fmt.Errorf("%w: %s", ErrSelfEdge, source)
	}
	for _, id := range []string{source, target} {
		if d.index(id) < 0 {
			return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
		}
	}
	edge := Edge{SourceNodeID: source, TargetNodeID: target}
	for _, e := range d.Edges {
		if e == edge {
			return fmt.Errorf("%w: %s -> %s", ErrDuplicateEdge, source, target)
		}
	}
	d.Edges = append(d.Edges, edge)
	return nil
}

// NodesOfType returns the placed nodes of kind t in placement order.
func (d *Document) NodesOfType(t palette.NodeType) []palette.NodeInstance {
	var out []palette.NodeInstance
	for _, n := range d.Nodes {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// Validate checks the structural invariants of a document, typically one
// read from disk. All problems are reported together.
func (d *Document) Validate() error {
	var errs []error

	if d.ID == "" {
		errs = append(errs, errors.New("document id is required"))
	}

	seen := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if err := checkNode(n); err != nil {
			errs = append(errs, err)
		}
		if seen[n.ID] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateID, n.ID))
		}
		seen[n.ID] = true
	}

	for _, e := range d.Edges {
		if !seen[e.SourceNodeID] {
			errs = append(errs, fmt.Errorf("edge source %s: %w", e.SourceNodeID, ErrNodeNotFound))
		}
		if !seen[e.TargetNodeID] {
			errs = append(errs, fmt.Errorf("edge target %s: %w", e.TargetNodeID, ErrNodeNotFound))
		}
		if e.SourceNodeID == e.TargetNodeID {
			errs = append(errs, fmt.Errorf("%w: %s", ErrSelfEdge, e.SourceNodeID))
		}
	}

	return errors.Join(errs...)
}

func (d *Document) index(id string) int {
	for i, n := range d.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func checkNode(inst palette.NodeInstance) error {
	if !inst.Type.Valid() {
		return fmt.Errorf("node %s: %w: %q", inst.ID, palette.ErrUnknownNodeType, inst.Type)
	}
	if !strings.HasPrefix(inst.ID, string(inst.Type)+"_") || len(inst.ID) == len(inst.Type)+1 {
		return fmt.Errorf("%w: %q (type %s)", ErrInvalidID, inst.ID, inst.Type)
	}
	return nil
}
