package parsers

import (
	"log"
	"sort"
	"strings"
	"sync"
)

// Registry maps source identifiers to Parser implementations. It is an
// explicit object passed to the importer rather than package-global state so
// tests can build and discard their own mappings.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
}

func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// NewDefaultRegistry returns a registry with all built-in parsers registered
// under their identifiers and known aliases.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	taaft := NewTAAFTParser()
	r.Register("taaft", taaft)
	r.Register("theresanaiforthat", taaft)
	r.Register("theresanaiforthat.com", taaft)

	producthunt := NewProductHuntParser()
	r.Register("producthunt", producthunt)
	r.Register("producthunt.com", producthunt)

	r.Register("hexofy", NewHexofyParser())
	r.Register("taaft-page", NewPageParser())

	return r
}

// Register binds a parser to a source identifier. Identifiers are lowercased
// and trimmed; re-registration replaces the prior binding.
func (r *Registry) Register(source string, parser Parser) {
	key := normalizeSource(source)
	if key == "" {
		return
	}

	r.mu.Lock()
	if _, exists := r.parsers[key]; exists {
		log.Printf("Replacing parser registration for source: %s", key)
	}
	r.parsers[key] = parser
	r.mu.Unlock()
}

// Get resolves a parser by source identifier. Unknown identifiers yield an
// *UnsupportedSourceError carrying the supported-source list.
func (r *Registry) Get(source string) (Parser, error) {
	r.mu.RLock()
	parser, ok := r.parsers[normalizeSource(source)]
	r.mu.RUnlock()

	if !ok {
		return nil, &UnsupportedSourceError{
			Source:    source,
			Supported: r.SupportedSources(),
		}
	}
	return parser, nil
}

// IsSupported reports whether a source identifier has a registered parser.
func (r *Registry) IsSupported(source string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.parsers[normalizeSource(source)]
	return ok
}

// SupportedSources returns all registered identifiers, sorted for stable
// error messages and API responses.
func (r *Registry) SupportedSources() []string {
	r.mu.RLock()
	sources := make([]string, 0, len(r.parsers))
	for source := range r.parsers {
		sources = append(sources, source)
	}
	r.mu.RUnlock()

	sort.Strings(sources)
	return sources
}

func normalizeSource(source string) string {
	return strings.ToLower(strings.TrimSpace(source))
}
