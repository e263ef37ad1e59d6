package registry

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/agentstation/palette"
	"github.com/agentstation/palette/schema"
)

func violatedFields(t *testing.T, err error) []string {
	t.Helper()
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *schema.ValidationError, got %v", err)
	}
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	sort.Strings(fields)
	return fields
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyDeferred, false},
		{"deferred", PolicyDeferred, false},
		{"on-add", PolicyOnAdd, false},
		{"ON-ADD", PolicyOnAdd, false},
		{"sometimes", PolicyDeferred, true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, %v", tt.in, got, err)
		}
	}

	if PolicyOnAdd.String() != "on-add" || PolicyDeferred.String() != "deferred" {
		t.Error("unexpected Policy strings")
	}
}

func TestDeferredPolicyAddNeverFails(t *testing.T) {
	r := newDefault(t)
	if r.Policy() != PolicyDeferred {
		t.Fatalf("default policy = %v", r.Policy())
	}

	for _, kind := range []palette.NodeType{palette.Agent, palette.Tool} {
		if _, err := r.Add(context.Background(), kind); err != nil {
			t.Errorf("Add(%s) failed under deferred policy: %v", kind, err)
		}
	}
}

func TestValidateDefaults(t *testing.T) {
	r := newDefault(t)
	ctx := context.Background()

	agent := mustAdd(t, r, palette.Agent)
	got := violatedFields(t, r.Validate(ctx, agent))
	if want := []string{"name", "task"}; !equal(got, want) {
		t.Errorf("agent violations = %v, want %v", got, want)
	}

	tool := mustAdd(t, r, palette.Tool)
	got = violatedFields(t, r.Validate(ctx, tool))
	if want := []string{"toolDescription", "toolName"}; !equal(got, want) {
		t.Errorf("tool violations = %v, want %v", got, want)
	}
}

func TestValidateFilledInstances(t *testing.T) {
	r := newDefault(t)
	ctx := context.Background()

	agent := mustAdd(t, r, palette.Agent)
	agent.Data.InputsValues["name"] = palette.TemplateValue("researcher")
	agent.Data.InputsValues["task"] = palette.TemplateValue("summarise {{start.topic}}")
	if err := r.Validate(ctx, agent); err != nil {
		t.Errorf("filled agent should validate: %v", err)
	}

	tool := mustAdd(t, r, palette.Tool)
	tool.Data.InputsValues["toolName"] = palette.ConstantValue("Tool2")
	tool.Data.InputsValues["toolDescription"] = palette.TemplateValue("looks things up")
	if err := r.Validate(ctx, tool); err != nil {
		t.Errorf("filled tool should validate: %v", err)
	}

	tool.Data.InputsValues["toolName"] = palette.ConstantValue("Tool7")
	if got := violatedFields(t, r.Validate(ctx, tool)); !equal(got, []string{"toolName"}) {
		t.Errorf("violations = %v", got)
	}

	// A template tool name is resolved later, so the catalogue is not applied.
	tool.Data.InputsValues["toolName"] = palette.TemplateValue("{{agent.tool}}")
	if err := r.Validate(ctx, tool); err != nil {
		t.Errorf("template tool name should pass: %v", err)
	}
}

func TestValidateUnknownType(t *testing.T) {
	r := New()
	inst := palette.NodeInstance{ID: "agent_abcde", Type: palette.Agent}
	if err := r.Validate(context.Background(), inst); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestOnAddPolicyReturnsInstanceAndError(t *testing.T) {
	logger := &recordingLogger{}
	r := newDefault(t, WithPolicy(PolicyOnAdd), WithLogger(logger))

	inst, err := r.Add(context.Background(), palette.Tool)
	if err == nil {
		t.Fatal("expected validation error for empty tool inputs")
	}
	if inst.Data.Title != "Tool_1" {
		t.Errorf("instance should still be returned, got %+v", inst)
	}
	if got := violatedFields(t, err); !equal(got, []string{"toolDescription", "toolName"}) {
		t.Errorf("violations = %v", got)
	}

	// The counter advanced even though validation failed.
	if got := r.Counters()[palette.Tool]; got != 1 {
		t.Errorf("tool counter = %d", got)
	}

	found := false
	for _, e := range logger.entries {
		if e == "info: node inputs invalid" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a validation log entry, got %v", logger.entries)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
