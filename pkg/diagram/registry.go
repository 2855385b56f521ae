package diagram

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/gvmanaged/pkg/attrs"
	"github.com/matzehuels/gvmanaged/pkg/errors"
)

// NodeType is a foreign node type a diagram kind resolves to.
type NodeType struct {
	// Namespace is the dotted path the type is registered under,
	// e.g. "diagrams.aws.compute".
	Namespace string

	// Symbol is the type name within the namespace, e.g. "EC2".
	Symbol string

	// Icon is the icon image path relative to the icon directory.
	// Types without an icon render as regular boxes.
	Icon string

	// Attrs are extra node attributes. Attributes set on the node win.
	Attrs *attrs.Map
}

// Path returns the full kind path of t.
func (t NodeType) Path() string { return t.Namespace + "." + t.Symbol }

// Registry maps kind paths to node types. Successful lookups are memoized
// for the lifetime of the registry. A Registry is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]NodeType
	resolved   map[string]NodeType
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		namespaces: make(map[string]map[string]NodeType),
		resolved:   make(map[string]NodeType),
	}
}

// Register adds t under its namespace, replacing any previous type with the
// same path.
func (r *Registry) Register(t NodeType) error {
	if err := errors.ValidateKindPath(t.Path()); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ns := r.namespaces[t.Namespace]
	if ns == nil {
		ns = make(map[string]NodeType)
		r.namespaces[t.Namespace] = ns
	}
	ns[t.Symbol] = t
	delete(r.resolved, t.Path())
	return nil
}

// Resolve looks up a kind path: everything before the last dot names the
// namespace, the rest the symbol. Unknown paths fail with
// [errors.ErrCodeUnknownKind].
func (r *Registry) Resolve(path string) (NodeType, error) {
	r.mu.RLock()
	t, ok := r.resolved[path]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	if err := errors.ValidateKindPath(path); err != nil {
		return NodeType{}, err
	}
	i := strings.LastIndexByte(path, '.')
	namespace, symbol := path[:i], path[i+1:]

	r.mu.Lock()
	defer r.mu.Unlock()
	ns, ok := r.namespaces[namespace]
	if !ok {
		return NodeType{}, errors.New(errors.ErrCodeUnknownKind, "unknown kind %q: no namespace %q", path, namespace)
	}
	t, ok = ns[symbol]
	if !ok {
		return NodeType{}, errors.New(errors.ErrCodeUnknownKind, "unknown kind %q: %q has no type %q", path, namespace, symbol)
	}
	r.resolved[path] = t
	return t, nil
}

// Kinds returns every registered kind path in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, ns := range r.namespaces {
		for _, t := range ns {
			out = append(out, t.Path())
		}
	}
	slices.Sort(out)
	return out
}

// Filter strips the default [Package] prefix from kinds and keeps those
// starting with prefix. Kinds outside the default package keep their full path.
func Filter(kinds []string, prefix string) []string {
	var out []string
	for _, k := range kinds {
		k = strings.TrimPrefix(k, Package+".")
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

// Default is the process-wide registry holding the built-in kinds.
var Default = NewRegistry()

// Register adds t to [Default].
func Register(t NodeType) error { return Default.Register(t) }

// Resolve looks up path in [Default].
func Resolve(path string) (NodeType, error) { return Default.Resolve(path) }

// Kinds lists the kinds registered in [Default].
func Kinds() []string { return Default.Kinds() }
