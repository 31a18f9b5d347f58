package event

import (
	"sync"
	"time"
)

// ReferenceTickInterval is the conventional reduction rate (100 Hz).
const ReferenceTickInterval = 10 * time.Millisecond

// Ticker is anything driven by the periodic metering tick.
type Ticker interface {
	Tick()
}

// Hub owns the process-wide metering tick: every registered Ticker is
// invoked once per tick, from a single non-real-time goroutine.
type Hub struct {
	mu      sync.RWMutex
	tickers map[int]Ticker
	next    int
}

// NewHub creates an empty tick hub.
func NewHub() *Hub {
	return &Hub{
		tickers: make(map[int]Ticker),
	}
}

// Register adds a ticker and returns a function that removes it.
func (h *Hub) Register(t Ticker) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	h.tickers[id] = t

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.tickers, id)
	}
}

// Tick invokes every registered ticker once.
func (h *Hub) Tick() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, t := range h.tickers {
		t.Tick()
	}
}

// Run starts ticking at the given interval on a background goroutine
// and returns a function that stops it. A tick that overruns simply
// delays the next one; ticks are never delivered concurrently.
func (h *Hub) Run(interval time.Duration) func() {
	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				h.Tick()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
