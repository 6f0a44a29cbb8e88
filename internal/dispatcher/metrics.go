package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/runpad/internal/dispatcher/handler"
)

// ActionMetrics counts dispatches of one action name.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	ErrorCount    uint64
	NoOpCount     uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
}

// Summary is a point-in-time copy of the dispatcher counters.
type Summary struct {
	Dispatches uint64
	Errors     uint64
	Panics     uint64
	Average    time.Duration
	Actions    []ActionMetrics // most dispatched first
}

// Metrics accumulates dispatch counts and durations. It is enabled with
// Config.WithMetrics.
type Metrics struct {
	mu      sync.Mutex
	panics  uint64
	total   ActionMetrics
	actions map[string]*ActionMetrics
}

// NewMetrics returns an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{actions: map[string]*ActionMetrics{}}
}

func (am *ActionMetrics) add(d time.Duration, status handler.ResultStatus) {
	am.DispatchCount++
	am.TotalDuration += d
	am.MaxDuration = max(am.MaxDuration, d)
	am.LastStatus = status
	switch status {
	case handler.StatusError:
		am.ErrorCount++
	case handler.StatusNoOp:
		am.NoOpCount++
	}
}

// RecordDispatch counts one finished dispatch of actionName.
func (m *Metrics) RecordDispatch(actionName string, d time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	am, ok := m.actions[actionName]
	if !ok {
		am = &ActionMetrics{Name: actionName}
		m.actions[actionName] = am
	}
	am.add(d, status)
	m.total.add(d, status)
}

// RecordPanic counts a handler panic that was recovered.
func (m *Metrics) RecordPanic(string) {
	m.mu.Lock()
	m.panics++
	m.mu.Unlock()
}

// Summary copies the counters. Actions is sorted by dispatch count, then name.
func (m *Metrics) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Summary{
		Dispatches: m.total.DispatchCount,
		Errors:     m.total.ErrorCount,
		Panics:     m.panics,
		Actions:    make([]ActionMetrics, 0, len(m.actions)),
	}
	if s.Dispatches > 0 {
		s.Average = m.total.TotalDuration / time.Duration(s.Dispatches)
	}
	for _, am := range m.actions {
		s.Actions = append(s.Actions, *am)
	}
	sort.Slice(s.Actions, func(i, j int) bool {
		a, b := s.Actions[i], s.Actions[j]
		if a.DispatchCount != b.DispatchCount {
			return a.DispatchCount > b.DispatchCount
		}
		return a.Name < b.Name
	})
	return s
}

func (m *Metrics) TotalDispatches() uint64 { return m.Summary().Dispatches }

func (m *Metrics) TotalErrors() uint64 { return m.Summary().Errors }

func (m *Metrics) TotalPanics() uint64 { return m.Summary().Panics }

// ActionStats returns a copy of one action's counters, or nil if it was
// never dispatched.
func (m *Metrics) ActionStats(actionName string) *ActionMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	if am, ok := m.actions[actionName]; ok {
		c := *am
		return &c
	}
	return nil
}

// TopActions returns at most n entries of Summary().Actions.
func (m *Metrics) TopActions(n int) []ActionMetrics {
	top := m.Summary().Actions
	if n < len(top) {
		top = top[:n]
	}
	return top
}

// Reset drops every counter.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics = 0
	m.total = ActionMetrics{}
	m.actions = map[string]*ActionMetrics{}
}
