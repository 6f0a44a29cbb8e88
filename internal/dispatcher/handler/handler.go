// Package handler defines how actions are implemented and what they report
// back to the dispatcher.
package handler

import (
	"sort"

	"github.com/dshills/runpad/internal/dispatcher/execctx"
	"github.com/dshills/runpad/internal/input"
)

// Func implements one action.
type Func func(action input.Action, ctx *execctx.ExecutionContext) Result

// Handler is anything the registry can route an action to.
type Handler interface {
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result
	CanHandle(actionName string) bool

	// Priority orders handlers registered for the same name, highest first.
	Priority() int
}

// SimpleHandler binds one Func to one action name.
type SimpleHandler struct {
	ActionName string
	Fn         Func
	Prio       int
}

func (h *SimpleHandler) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if h.Fn == nil {
		return Errorf("action %s has no implementation", h.ActionName)
	}
	return h.Fn(action, ctx)
}

func (h *SimpleHandler) CanHandle(actionName string) bool { return actionName == h.ActionName }

func (h *SimpleHandler) Priority() int { return h.Prio }

// NamespaceHandler owns every action under one prefix, such as "edit" for
// "edit.insert". The registry falls back to it when no exact handler matches.
type NamespaceHandler interface {
	Namespace() string
	CanHandle(actionName string) bool
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result
}

// NewNamespaceAdapter presents a NamespaceHandler as a Handler of priority 0.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return namespaceAdapter{h}
}

type namespaceAdapter struct{ NamespaceHandler }

func (a namespaceAdapter) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	return a.HandleAction(action, ctx)
}

func (namespaceAdapter) Priority() int { return 0 }

// BaseNamespaceHandler is a NamespaceHandler driven by a name to Func table.
// Concrete handlers embed it and Register their actions in the constructor.
type BaseNamespaceHandler struct {
	namespace string
	actions   map[string]Func
}

// NewBaseNamespaceHandler returns an empty table for namespace.
func NewBaseNamespaceHandler(namespace string) *BaseNamespaceHandler {
	return &BaseNamespaceHandler{namespace: namespace, actions: map[string]Func{}}
}

// Register adds or replaces the implementation of actionName.
func (h *BaseNamespaceHandler) Register(actionName string, fn Func) {
	h.actions[actionName] = fn
}

func (h *BaseNamespaceHandler) Namespace() string { return h.namespace }

func (h *BaseNamespaceHandler) CanHandle(actionName string) bool {
	return h.actions[actionName] != nil
}

// Actions returns the registered names in sorted order.
func (h *BaseNamespaceHandler) Actions() []string {
	names := make([]string, 0, len(h.actions))
	for name := range h.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *BaseNamespaceHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result {
	if fn := h.actions[action.Name]; fn != nil {
		return fn(action, ctx)
	}
	return Errorf("%s: no action %q", h.namespace, action.Name)
}
