package resilience

import "sync"

// SingleFlight collapses concurrent calls for the same key into one
// execution; everyone else blocks and receives the shared result. The zero
// value is ready to use.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightResult
}

type flightResult struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn for key unless another call for the same key is already in
// flight, in which case it waits for that call. The bool result reports
// whether the value was shared from another caller's execution.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if existing, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		<-existing.done
		return existing.val, existing.err, true
	}

	if g.inflight == nil {
		g.inflight = make(map[string]*flightResult)
	}
	res := &flightResult{done: make(chan struct{})}
	g.inflight[key] = res
	g.mu.Unlock()

	res.val, res.err = fn()

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()
	close(res.done)

	return res.val, res.err, false
}
