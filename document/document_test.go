package document

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/agentstation/palette"
	"github.com/agentstation/palette/registry"
	"github.com/agentstation/palette/schema"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.Default()
	if err != nil {
		t.Fatalf("registry.Default() failed: %v", err)
	}
	return r
}

func place(t *testing.T, d *Document, r *registry.Registry, kind palette.NodeType) palette.NodeInstance {
	t.Helper()
	inst, err := r.Add(context.Background(), kind)
	if err != nil {
		t.Fatalf("Add(%s) failed: %v", kind, err)
	}
	if err := d.AddNode(inst); err != nil {
		t.Fatalf("AddNode failed: %v", err)
	}
	return inst
}

func sampleDocument(t *testing.T) (*Document, *registry.Registry) {
	t.Helper()
	r := newRegistry(t)
	d := New("research")

	agent := place(t, d, r, palette.Agent)
	tool := place(t, d, r, palette.Tool)
	if err := d.Connect(tool.ID, agent.ID); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	return d, r
}

func TestNewDocument(t *testing.T) {
	a, b := New("a"), New("b")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("empty document should validate: %v", err)
	}
}

func TestAddNodeRejects(t *testing.T) {
	d, r := sampleDocument(t)
	existing := d.Nodes[0]

	if err := d.AddNode(existing); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}

	wrongPrefix := place(t, New("scratch"), r, palette.Agent)
	wrongPrefix.ID = "tool_abcde"
	if err := d.AddNode(wrongPrefix); !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}

	unknown := palette.NodeInstance{ID: "widget_abcde", Type: "widget"}
	if err := d.AddNode(unknown); !errors.Is(err, palette.ErrUnknownNodeType) {
		t.Errorf("expected ErrUnknownNodeType, got %v", err)
	}
}

func TestConnect(t *testing.T) {
	d, _ := sampleDocument(t)
	tool, agent := d.Nodes[1].ID, d.Nodes[0].ID

	if err := d.Connect(tool, agent); !errors.Is(err, ErrDuplicateEdge) {
		t.Errorf("expected ErrDuplicateEdge, got %v", err)
	}
	if err := d.Connect(agent, agent); !errors.Is(err, ErrSelfEdge) {
		t.Errorf("expected ErrSelfEdge, got %v", err)
	}
	if err := d.Connect(agent, "tool_zzzzz"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestRemoveNodeKeepsCounters(t *testing.T) {
	d, r := sampleDocument(t)
	tool := d.Nodes[1]

	if err := d.RemoveNode(tool.ID); err != nil {
		t.Fatalf("RemoveNode failed: %v", err)
	}
	if _, ok := d.Node(tool.ID); ok {
		t.Error("node still present after removal")
	}
	if len(d.Edges) != 0 {
		t.Errorf("edges touching the removed node remain: %v", d.Edges)
	}
	if err := d.RemoveNode(tool.ID); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}

	// Titles are never reused after deletion.
	if got := place(t, d, r, palette.Tool).Data.Title; got != "Tool_2" {
		t.Errorf("title after removal = %q, want Tool_2", got)
	}
}

func TestUpdateNode(t *testing.T) {
	d, _ := sampleDocument(t)
	agent := d.Nodes[0]
	agent.Data.Title = "Researcher"

	if err := d.UpdateNode(agent); err != nil {
		t.Fatalf("UpdateNode failed: %v", err)
	}
	if got, _ := d.Node(agent.ID); got.Data.Title != "Researcher" {
		t.Errorf("title = %q", got.Data.Title)
	}

	if err := d.UpdateNode(palette.NodeInstance{ID: "agent_nopee", Type: palette.Agent}); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	if got := d.NodesOfType(palette.Tool); len(got) != 1 {
		t.Errorf("NodesOfType(tool) = %d nodes", len(got))
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	d, _ := sampleDocument(t)
	d.Nodes = append(d.Nodes, d.Nodes[0])
	d.Edges = append(d.Edges, Edge{SourceNodeID: "agent_ghost", TargetNodeID: d.Nodes[0].ID})

	err := d.Validate()
	if !errors.Is(err, ErrDuplicateID) || !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected duplicate and missing node errors, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	d, _ := sampleDocument(t)

	for _, f := range []Format{JSON, YAML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := d.Marshal(f)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			back, err := Unmarshal(data, f)
			if err != nil {
				t.Fatalf("Unmarshal failed: %v\n%s", err, data)
			}
			if !reflect.DeepEqual(d, back) {
				t.Errorf("round trip mismatch:\n%+v\n%+v", d, back)
			}
		})
	}
}

func TestYAMLLayout(t *testing.T) {
	d, _ := sampleDocument(t)
	data, err := d.Marshal(YAML)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	for _, want := range []string{"title: Agent_1", "title: Tool_1", "sourceNodeID:", "- Tool1"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("yaml output missing %q:\n%s", want, data)
		}
	}
}

func TestUnmarshalRejectsUnknownNodeType(t *testing.T) {
	input := `{"id":"x","nodes":[{"id":"widget_abcde","type":"widget","data":{"title":"W","inputsValues":{},"inputs":{"type":"object","properties":{}},"outputs":{"type":"object","properties":{}}}}]}`
	if _, err := Unmarshal([]byte(input), JSON); err == nil {
		t.Error("expected error for unknown node type")
	}
}

func TestSaveAndLoad(t *testing.T) {
	d, _ := sampleDocument(t)
	dir := t.TempDir()

	for _, name := range []string{"doc.yaml", "doc.json"} {
		path := filepath.Join(dir, name)
		if err := d.Save(path); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}
		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", name, err)
		}
		if !reflect.DeepEqual(d, loaded) {
			t.Errorf("%s: loaded document differs", name)
		}
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("id: x\nnodes: []\nedges:\n  - sourceNodeID: a\n    targetNodeID: b\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(broken); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestQuery(t *testing.T) {
	d, _ := sampleDocument(t)

	got, err := d.Query(`$.nodes[*].data.title`)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if !reflect.DeepEqual(got, []any{"Agent_1", "Tool_1"}) {
		t.Errorf("titles = %v", got)
	}

	got, err = d.Query(`$.nodes[?(@.type == 'agent')].data.inputsValues.modelType.content`)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if !reflect.DeepEqual(got, []any{"gemini"}) {
		t.Errorf("modelType = %v", got)
	}

	if _, err := d.Query(`$[`); err == nil {
		t.Error("expected error for malformed expression")
	}
}

func TestValidateInputs(t *testing.T) {
	d, r := sampleDocument(t)
	ctx := context.Background()

	err := d.ValidateInputs(ctx, r, 2)
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation errors for default inputs, got %v", err)
	}

	agent, tool := d.Nodes[0], d.Nodes[1]
	agent.Data.InputsValues["name"] = palette.TemplateValue("researcher")
	agent.Data.InputsValues["task"] = palette.TemplateValue("find sources")
	tool.Data.InputsValues["toolName"] = palette.ConstantValue("Tool1")
	tool.Data.InputsValues["toolDescription"] = palette.TemplateValue("web search")
	if err := d.ValidateInputs(ctx, r, 0); err != nil {
		t.Errorf("filled document should validate: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := d.ValidateInputs(cancelled, r, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
