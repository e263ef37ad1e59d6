package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agentstation/palette"
	"github.com/agentstation/palette/schema"
)

// Policy decides when instance inputs are checked against their schema.
type Policy int

const (
	// PolicyDeferred leaves validation to an explicit Validate call. Add
	// never fails for a registered kind.
	PolicyDeferred Policy = iota
	// PolicyOnAdd validates every instance as it is created.
	PolicyOnAdd
)

// ParsePolicy converts "deferred" or "on-add" into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "deferred":
		return PolicyDeferred, nil
	case "on-add", "onadd":
		return PolicyOnAdd, nil
	}
	return PolicyDeferred, fmt.Errorf("unknown validation policy %q", s)
}

func (p Policy) String() string {
	if p == PolicyOnAdd {
		return "on-add"
	}
	return "deferred"
}

// Validate checks the input values of inst against its input schema.
//
// A value with empty content counts as absent, so an empty required input
// is reported as missing. Template values are only checked for presence
// because their content is resolved later; constant values must satisfy
// the full field schema, enums included.
func (r *Registry) Validate(ctx context.Context, inst palette.NodeInstance) error {
	if _, ok := r.Get(inst.Type); !ok {
		return fmt.Errorf("validate %s: %w", inst.ID, ErrUnknownType)
	}

	rendered := inst.Data.Inputs.Map()
	props, _ := rendered["properties"].(map[string]any)

	values := make(map[string]any, len(inst.Data.InputsValues))
	for name, v := range inst.Data.InputsValues {
		if v.Content == "" {
			continue
		}
		if v.Type == palette.Template {
			if prop, ok := props[name].(map[string]any); ok {
				props[name] = relax(prop)
			}
		}
		values[name] = v.Content
	}

	err := schema.ValidateMap(rendered, values)
	if err == nil {
		return nil
	}

	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		r.logger.Info(ctx, "node inputs invalid", "id", inst.ID, "violations", len(verr.Violations))
	} else {
		r.logger.Error(ctx, "node validation failed", "id", inst.ID, "error", err)
	}
	return fmt.Errorf("node %s: %w", inst.ID, err)
}

// relax drops value constraints from a rendered field, keeping its type.
func relax(prop map[string]any) map[string]any {
	out := make(map[string]any, len(prop))
	for k, v := range prop {
		if k == "enum" {
			continue
		}
		out[k] = v
	}
	return out
}
