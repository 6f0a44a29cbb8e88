package dispatcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/runpad/internal/dispatcher/handler"
)

// Registry maps action names to handlers.
//
// Exact registrations take precedence. Anything else is routed by its
// namespace, the prefix before the first dot ("file" in "file.open").
type Registry struct {
	mu         sync.RWMutex
	exact      map[string][]handler.Handler // sorted by descending priority
	namespaces map[string]handler.NamespaceHandler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		exact:      make(map[string][]handler.Handler),
		namespaces: make(map[string]handler.NamespaceHandler),
	}
}

// Register adds a handler for an exact action name.
func (r *Registry) Register(actionName string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hs := append(r.exact[actionName], h)
	sort.SliceStable(hs, func(i, j int) bool {
		return hs[i].Priority() > hs[j].Priority()
	})
	r.exact[actionName] = hs
}

// RegisterNamespace installs the handler for a namespace, replacing any previous one.
func (r *Registry) RegisterNamespace(h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[h.Namespace()] = h
}

// Unregister removes all exact handlers for an action name.
func (r *Registry) Unregister(actionName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.exact, actionName)
}

// Lookup returns the handler for an action, or nil.
func (r *Registry) Lookup(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if hs := r.exact[actionName]; len(hs) > 0 {
		return hs[0]
	}
	ns, ok := r.namespaces[Namespace(actionName)]
	if !ok || !ns.CanHandle(actionName) {
		return nil
	}
	return handler.NewNamespaceAdapter(ns)
}

// Has returns true if some handler accepts the action.
func (r *Registry) Has(actionName string) bool {
	return r.Lookup(actionName) != nil
}

// NamespaceHandler returns the handler installed for ns, or nil.
func (r *Registry) NamespaceHandler(ns string) handler.NamespaceHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namespaces[ns]
}

// Namespaces returns the registered namespace names, sorted.
func (r *Registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Namespace returns the prefix of an action name before the first dot.
// Names without a dot have no namespace.
func Namespace(actionName string) string {
	ns, _, ok := strings.Cut(actionName, ".")
	if !ok {
		return ""
	}
	return ns
}
