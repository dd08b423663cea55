// Package view models the page-level fetch cycle: a tagged
// Idle/Loading/Success/Failure state that every list and detail view follows,
// and an in-flight set tracking per-row mutations.
package view

import "sync"

type State string

const (
	Idle    State = "idle"
	Loading State = "loading"
	Success State = "success"
	Failure State = "failure"
)

// Resource holds one page's data alongside its fetch state. A successful
// load replaces the data wholesale; filter changes never merge with the
// previous list.
type Resource[T any] struct {
	mu    sync.Mutex
	state State
	data  T
	err   error
}

func NewResource[T any]() *Resource[T] {
	return &Resource[T]{state: Idle}
}

// Load runs fetch and transitions loading → success or failure. On failure
// the previous data is discarded so the UI degrades to "no data" instead of
// rendering a stale list.
func (r *Resource[T]) Load(fetch func() (T, error)) error {
	r.mu.Lock()
	r.state = Loading
	r.mu.Unlock()

	data, err := fetch()

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		var zero T
		r.state = Failure
		r.data = zero
		r.err = err
		return err
	}
	r.state = Success
	r.data = data
	r.err = nil
	return nil
}

func (r *Resource[T]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Resource[T]) Data() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}

func (r *Resource[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// InFlight tracks ids with a mutation in progress, so the UI disables the
// acting row's buttons and only that row's.
type InFlight struct {
	mu  sync.Mutex
	ids map[int]bool
}

func NewInFlight() *InFlight {
	return &InFlight{ids: make(map[int]bool)}
}

// Begin marks id as in flight; it reports false when a mutation for the same
// id is already running.
func (f *InFlight) Begin(id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ids[id] {
		return false
	}
	f.ids[id] = true
	return true
}

// End clears id regardless of the mutation outcome.
func (f *InFlight) End(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ids, id)
}

func (f *InFlight) Active(id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ids[id]
}
