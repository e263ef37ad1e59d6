package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON renders the object keeping property declaration order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeField(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object schema, keeping property order.
func (o *Object) UnmarshalJSON(data []byte) error {
	f, err := decodeField(data)
	if err != nil {
		return err
	}
	obj, ok := f.(Object)
	if !ok {
		return fmt.Errorf("%w: expected object, got %s", ErrUnsupportedType, f.Kind())
	}
	*o = obj
	return nil
}

func writeField(buf *bytes.Buffer, f Field) error {
	obj, ok := f.(Object)
	if !ok {
		raw, err := json.Marshal(f.toMap())
		if err != nil {
			return err
		}
		buf.Write(raw)
		return nil
	}

	buf.WriteString(`{"type":"object"`)
	if obj.desc != "" {
		desc, _ := json.Marshal(obj.desc)
		buf.WriteString(`,"description":`)
		buf.Write(desc)
	}
	if req := obj.Required(); len(req) > 0 {
		raw, _ := json.Marshal(req)
		buf.WriteString(`,"required":`)
		buf.Write(raw)
	}
	buf.WriteString(`,"properties":{`)
	for i, p := range obj.props {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, _ := json.Marshal(p.Name)
		buf.Write(name)
		buf.WriteByte(':')
		if err := writeField(buf, p.Field); err != nil {
			return fmt.Errorf("property %s: %w", p.Name, err)
		}
	}
	buf.WriteString("}}")
	return nil
}

type rawField struct {
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Enum        []string        `json:"enum,omitempty"`
	Required    []string        `json:"required,omitempty"`
	Properties  json.RawMessage `json:"properties,omitempty"`
}

func decodeField(data []byte) (Field, error) {
	var raw rawField
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	switch Kind(raw.Type) {
	case KindString:
		if raw.Enum != nil {
			e, err := NewEnum(raw.Description, raw.Enum...)
			if err != nil {
				return nil, err
			}
			return e, nil
		}
		return String{Desc: raw.Description}, nil
	case KindObject:
		return decodeObject(raw)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, raw.Type)
}

func decodeObject(raw rawField) (Object, error) {
	required := make(map[string]bool, len(raw.Required))
	for _, name := range raw.Required {
		required[name] = true
	}

	var props []Property
	if len(raw.Properties) > 0 && !bytes.Equal(raw.Properties, []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(raw.Properties))
		tok, err := dec.Token()
		if err != nil {
			return Object{}, err
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return Object{}, fmt.Errorf("properties must be an object")
		}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return Object{}, err
			}
			name, _ := tok.(string)

			var value json.RawMessage
			if err := dec.Decode(&value); err != nil {
				return Object{}, fmt.Errorf("property %s: %w", name, err)
			}
			field, err := decodeField(value)
			if err != nil {
				return Object{}, fmt.Errorf("property %s: %w", name, err)
			}
			props = append(props, Property{Name: name, Field: field, Required: required[name]})
			delete(required, name)
		}
	}

	// A required name with no matching property cannot be represented.
	for _, name := range raw.Required {
		if required[name] {
			return Object{}, fmt.Errorf("required property %q is not declared", name)
		}
	}

	obj, err := NewObject(props...)
	if err != nil {
		return Object{}, err
	}
	return obj.WithDescription(raw.Description), nil
}
