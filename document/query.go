package document

import (
	"encoding/json"
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Query evaluates a JSONPath expression against the JSON form of d, e.g.
// `$.nodes[?(@.type == 'tool')].data.title`.
func (d *Document) Query(expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath expression: %w", err)
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	return x.Get(data), nil
}
