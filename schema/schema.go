// Package schema models the input and output descriptions carried by node
// instances.
//
// A Field is one of String, Enum or Object. Objects are assembled from
// properties marked Required or Optional, so a required name is always a
// declared property and an enum always has at least one allowed value. The
// JSON rendering is the JSON-Schema subset understood by the editor.
package schema

import (
	"errors"
	"fmt"
)

// Errors returned while building or decoding schemas.
var (
	ErrDuplicateProperty = errors.New("duplicate property")
	ErrEmptyName         = errors.New("empty property name")
	ErrEmptyEnum         = errors.New("enum without values")
	ErrDuplicateEnum     = errors.New("duplicate enum value")
	ErrUnsupportedType   = errors.New("unsupported schema type")
)

// Kind is the JSON-Schema type keyword of a field.
type Kind string

const (
	KindString Kind = "string"
	KindObject Kind = "object"
)

// Field is a schema node. The set of implementations is closed.
type Field interface {
	Kind() Kind
	Description() string
	toMap() map[string]any
}

// String is a free-text string field.
type String struct {
	Desc string
}

// Kind returns KindString.
func (String) Kind() Kind { return KindString }

// Description returns the field description.
func (s String) Description() string { return s.Desc }

func (s String) toMap() map[string]any {
	m := map[string]any{"type": string(KindString)}
	if s.Desc != "" {
		m["description"] = s.Desc
	}
	return m
}

// Enum is a string field restricted to a closed set of values.
type Enum struct {
	desc   string
	values []string
}

// NewEnum builds an enum field. Values must be non-empty and distinct.
func NewEnum(desc string, values ...string) (Enum, error) {
	if len(values) == 0 {
		return Enum{}, ErrEmptyEnum
	}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return Enum{}, fmt.Errorf("%w: %q", ErrDuplicateEnum, v)
		}
		seen[v] = true
	}
	return Enum{desc: desc, values: append([]string(nil), values...)}, nil
}

// MustEnum is like NewEnum but panics on error.
func MustEnum(desc string, values ...string) Enum {
	e, err := NewEnum(desc, values...)
	if err != nil {
		panic(err)
	}
	return e
}

// Kind returns KindString.
func (Enum) Kind() Kind { return KindString }

// Description returns the field description.
func (e Enum) Description() string { return e.desc }

// Values returns the allowed values in declaration order.
func (e Enum) Values() []string { return append([]string(nil), e.values...) }

// Allows reports whether v is one of the allowed values.
func (e Enum) Allows(v string) bool {
	for _, allowed := range e.values {
		if allowed == v {
			return true
		}
	}
	return false
}

func (e Enum) toMap() map[string]any {
	m := map[string]any{
		"type": string(KindString),
		"enum": e.Values(),
	}
	if e.desc != "" {
		m["description"] = e.desc
	}
	return m
}

// Property is a named field of an Object.
type Property struct {
	Name     string
	Field    Field
	Required bool
}

// Required declares a required property.
func Required(name string, f Field) Property {
	return Property{Name: name, Field: f, Required: true}
}

// Optional declares an optional property.
func Optional(name string, f Field) Property {
	return Property{Name: name, Field: f}
}

// Object is a field with named, ordered properties.
type Object struct {
	desc  string
	props []Property
}

// NewObject builds an object from props. Names must be non-empty and unique.
func NewObject(props ...Property) (Object, error) {
	seen := make(map[string]bool, len(props))
	for _, p := range props {
		if p.Name == "" {
			return Object{}, ErrEmptyName
		}
		if seen[p.Name] {
			return Object{}, fmt.Errorf("%w: %q", ErrDuplicateProperty, p.Name)
		}
		if p.Field == nil {
			return Object{}, fmt.Errorf("property %q has no field", p.Name)
		}
		seen[p.Name] = true
	}
	return Object{props: append([]Property(nil), props...)}, nil
}

// MustObject is like NewObject but panics on error.
func MustObject(props ...Property) Object {
	o, err := NewObject(props...)
	if err != nil {
		panic(err)
	}
	return o
}

// WithDescription returns a copy of o carrying desc.
func (o Object) WithDescription(desc string) Object {
	o.desc = desc
	return o
}

// Kind returns KindObject.
func (Object) Kind() Kind { return KindObject }

// Description returns the object description.
func (o Object) Description() string { return o.desc }

// Properties returns the properties in declaration order.
func (o Object) Properties() []Property {
	return append([]Property(nil), o.props...)
}

// Property looks up a property by name.
func (o Object) Property(name string) (Property, bool) {
	for _, p := range o.props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Required returns the names of required properties in declaration order.
func (o Object) Required() []string {
	var names []string
	for _, p := range o.props {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// Map returns the JSON-Schema rendering of o.
func (o Object) Map() map[string]any {
	return o.toMap()
}

func (o Object) toMap() map[string]any {
	props := make(map[string]any, len(o.props))
	for _, p := range o.props {
		props[p.Name] = p.Field.toMap()
	}
	m := map[string]any{
		"type":       string(KindObject),
		"properties": props,
	}
	if req := o.Required(); len(req) > 0 {
		m["required"] = req
	}
	if o.desc != "" {
		m["description"] = o.desc
	}
	return m
}
