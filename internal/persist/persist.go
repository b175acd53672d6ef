// Package persist mirrors committed plan snapshots into the key/value store.
package persist

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"studyplan/internal/plan"
)

// Setter writes a value under a key.
type Setter interface {
	Set(key string, value []byte) error
}

// Persister writes snapshots handed to Save under one key.
// Save never blocks: it replaces any snapshot still waiting to be written and
// wakes a single writer goroutine. Since each snapshot is the full plan, only
// the newest pending one needs writing. Failed writes are logged and dropped.
type Persister struct {
	kv     Setter
	key    string
	logger *log.Logger

	mu      sync.Mutex
	closed  bool
	pending plan.Tasks
	waiting bool
	wake    chan struct{}
	done    chan struct{}

	written  atomic.Int64
	failed   atomic.Int64
	replaced atomic.Int64
}

func New(kv Setter, key string, logger *log.Logger) *Persister {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Persister{
		kv:     kv,
		key:    key,
		logger: logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

// Save hands a full snapshot to the writer. It is a plan.Observer.
func (p *Persister) Save(tasks plan.Tasks) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.logger.Warn("snapshot dropped after close", "key", p.key)
		return
	}
	if p.waiting {
		p.replaced.Add(1)
	}
	p.pending = tasks
	p.waiting = true
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Close writes the last pending snapshot and stops the writer.
func (p *Persister) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.wake)
	}
	p.mu.Unlock()
	<-p.done
	return nil
}

// Written and Failed count completed write attempts. Replaced counts snapshots
// superseded by a newer one before the writer reached them.
func (p *Persister) Written() int64  { return p.written.Load() }
func (p *Persister) Failed() int64   { return p.failed.Load() }
func (p *Persister) Replaced() int64 { return p.replaced.Load() }

func (p *Persister) run() {
	defer close(p.done)
	for range p.wake {
		p.flush()
	}
	p.flush()
}

func (p *Persister) flush() {
	p.mu.Lock()
	if !p.waiting {
		p.mu.Unlock()
		return
	}
	tasks := p.pending
	p.pending = nil
	p.waiting = false
	p.mu.Unlock()
	p.write(tasks)
}

func (p *Persister) write(tasks plan.Tasks) {
	data, err := plan.Marshal(tasks)
	if err == nil {
		err = p.kv.Set(p.key, data)
	}
	if err != nil {
		p.failed.Add(1)
		p.logger.Error("persist failed", "key", p.key, "err", err)
		return
	}
	p.written.Add(1)
	p.logger.Debug("persisted", "key", p.key, "days", len(tasks), "bytes", len(data))
}
