package service

import "sync/atomic"

// Readiness reports whether the server should receive traffic
type Readiness struct {
	ready atomic.Bool
}

// NewReadiness creates a readiness state that starts ready
func NewReadiness() *Readiness {
	r := &Readiness{}
	r.ready.Store(true)
	return r
}

func (r *Readiness) IsReady() bool {
	return r.ready.Load()
}

func (r *Readiness) MarkReady() {
	r.ready.Store(true)
}

func (r *Readiness) MarkNotReady() {
	r.ready.Store(false)
}
