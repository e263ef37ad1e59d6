// Package nodes provides the node kinds offered in the editor palette.
//
// Each registry carries the palette metadata of its kind (icon, description,
// default size) and an OnAdd factory that produces a fresh instance with a
// numbered title, the default input values and the input/output schemas.
//
//   - agent: an AI agent executing a user supplied task
//   - tool:  a tool an agent node can be connected to
//
// Titles are numbered per kind by a sequence.Counter. Registries built by
// the registry package share counters owned by that registry; registries
// built directly own a private counter.
package nodes
