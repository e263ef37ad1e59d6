// Package registry holds the node kinds available to an editor session.
//
// A Registry owns the title counters, the id generator and the validation
// timing policy shared by every node kind registered with it.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/agentstation/palette"
	"github.com/agentstation/palette/nodes"
	"github.com/agentstation/palette/sequence"
)

var (
	// ErrUnknownType is returned for node kinds that are not registered.
	ErrUnknownType = errors.New("node type not registered")
	// ErrDuplicateType is returned when a node kind is registered twice.
	ErrDuplicateType = errors.New("node type already registered")
)

// Registry manages node kinds.
type Registry struct {
	mu      sync.RWMutex
	entries map[palette.NodeType]palette.NodeRegistry

	seq       *sequence.Sequencer[palette.NodeType]
	ids       palette.IDGenerator
	policy    Policy
	logger    palette.Logger
	modelType string
	toolNames []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithPolicy sets when instance inputs are validated.
func WithPolicy(p Policy) Option {
	return func(r *Registry) {
		r.policy = p
	}
}

// WithLogger sets the logger.
func WithLogger(l palette.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithIDGenerator sets the id source used by Default registrations.
func WithIDGenerator(g palette.IDGenerator) Option {
	return func(r *Registry) {
		r.ids = g
	}
}

// WithSequencer shares title counters with another owner.
func WithSequencer(s *sequence.Sequencer[palette.NodeType]) Option {
	return func(r *Registry) {
		r.seq = s
	}
}

// WithModelType sets the default agent model used by Default.
func WithModelType(model string) Option {
	return func(r *Registry) {
		r.modelType = model
	}
}

// WithToolNames sets the tool catalogue used by Default.
func WithToolNames(names ...string) Option {
	return func(r *Registry) {
		r.toolNames = append([]string(nil), names...)
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries:   make(map[palette.NodeType]palette.NodeRegistry),
		seq:       sequence.New[palette.NodeType](),
		ids:       palette.NanoID{},
		policy:    PolicyDeferred,
		logger:    palette.NopLogger{},
		modelType: nodes.DefaultModelType,
		toolNames: nodes.DefaultToolNames,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default creates a registry with the agent and tool node kinds.
func Default(opts ...Option) (*Registry, error) {
	r := New(opts...)

	agent := nodes.NewAgentNodeRegistry(
		nodes.WithCounter(r.Counter(palette.Agent)),
		nodes.WithIDGenerator(r.ids),
		nodes.WithModelType(r.modelType),
	)
	if err := r.Register(agent); err != nil {
		return nil, err
	}

	tool, err := nodes.NewToolNodeRegistry(
		nodes.WithCounter(r.Counter(palette.Tool)),
		nodes.WithIDGenerator(r.ids),
		nodes.WithToolNames(r.toolNames...),
	)
	if err != nil {
		return nil, fmt.Errorf("register tool: %w", err)
	}
	if err := r.Register(tool); err != nil {
		return nil, err
	}

	return r, nil
}

// Register adds a node kind.
func (r *Registry) Register(entry palette.NodeRegistry) error {
	t := entry.Type()
	if !t.Valid() {
		return fmt.Errorf("register %q: %w", t, palette.ErrUnknownNodeType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[t]; exists {
		return fmt.Errorf("register %s: %w", t, ErrDuplicateType)
	}
	r.entries[t] = entry
	r.logger.Debug(context.Background(), "node type registered", "type", t)
	return nil
}

// Get returns the registration of t.
func (r *Registry) Get(t palette.NodeType) (palette.NodeRegistry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[t]
	return entry, exists
}

// Types returns the registered kinds, sorted.
func (r *Registry) Types() []palette.NodeType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]palette.NodeType, 0, len(r.entries))
	for t := range r.entries {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// All returns the registrations sorted by kind.
func (r *Registry) All() []palette.NodeRegistry {
	types := r.Types()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]palette.NodeRegistry, 0, len(types))
	for _, t := range types {
		out = append(out, r.entries[t])
	}
	return out
}

// Policy returns the validation timing policy.
func (r *Registry) Policy() Policy { return r.policy }

// Add creates a new instance of kind t.
//
// Under PolicyOnAdd the instance is validated right away; the instance is
// returned even when validation fails, together with the
// *schema.ValidationError.
func (r *Registry) Add(ctx context.Context, t palette.NodeType) (palette.NodeInstance, error) {
	entry, ok := r.Get(t)
	if !ok {
		return palette.NodeInstance{}, fmt.Errorf("add %q: %w", t, ErrUnknownType)
	}

	inst := entry.OnAdd()
	r.logger.Debug(ctx, "node added", "type", t, "id", inst.ID, "title", inst.Data.Title)

	if r.policy == PolicyOnAdd {
		if err := r.Validate(ctx, inst); err != nil {
			return inst, err
		}
	}
	return inst, nil
}

// Counter returns the title counter of kind t.
func (r *Registry) Counter(t palette.NodeType) *sequence.Counter {
	return r.seq.For(t)
}

// Counters returns the current value of every title counter.
func (r *Registry) Counters() map[palette.NodeType]int64 {
	return r.seq.Snapshot()
}

// RestoreCounters resumes numbering from a saved snapshot. Counters only
// move forward.
func (r *Registry) RestoreCounters(snapshot map[palette.NodeType]int64) {
	r.seq.Restore(snapshot)
}

// ResetCounters zeroes the title counters of kinds, or of every kind when
// none is given.
func (r *Registry) ResetCounters(kinds ...palette.NodeType) {
	if len(kinds) == 0 {
		r.seq.ResetAll()
		return
	}
	for _, t := range kinds {
		r.seq.Reset(t)
	}
}
