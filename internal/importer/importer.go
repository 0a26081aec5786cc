// Package importer turns broker-export CSV files into activity rows ready
// to enter an editing session as drafts.
package importer

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

// Parser converts a broker export file into activity rows. Rows come back
// without ids or accounts; the session assigns both when drafting them.
type Parser interface {
	Parse(r io.Reader) ([]model.Activity, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&GenericParser{})
	return r
}

// ParseFile parses a file with the named parser from the registry.
func ParseFile(registry *Registry, format, path string) ([]model.Activity, error) {
	p := registry.Get(format)
	if p == nil {
		return nil, &UnknownFormatError{Format: format}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return p.Parse(f)
}

// UnknownFormatError is returned when no parser matches a format name.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return "unknown import format: " + e.Format
}

// BaseName strips directory and extension from an import path, for use in
// audit details.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
