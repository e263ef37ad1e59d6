package palette

import (
	"regexp"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// IDSuffixLength is the number of random characters after the kind prefix.
const IDSuffixLength = 5

// IDGenerator produces node instance ids.
type IDGenerator interface {
	NewID(t NodeType) string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func(t NodeType) string

// NewID calls f(t).
func (f IDGeneratorFunc) NewID(t NodeType) string { return f(t) }

// NanoID generates ids of the form <type>_<5 url-safe chars>.
type NanoID struct{}

// NewID returns a fresh id for t. It panics only if the system random
// source fails.
func (NanoID) NewID(t NodeType) string {
	return string(t) + "_" + gonanoid.Must(IDSuffixLength)
}

var idPattern = regexp.MustCompile(`^([a-z]+)_[A-Za-z0-9_-]{5}$`)

// ValidID reports whether id has the shape produced for kind t.
func ValidID(t NodeType, id string) bool {
	m := idPattern.FindStringSubmatch(id)
	return m != nil && m[1] == string(t)
}
