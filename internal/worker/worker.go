package worker

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Task represents a unit of work executed by the pool.
type Task func()

// Pool runs background tasks off the request path.
type Pool interface {
	// Submit 排入任務，不會阻塞；佇列已滿或 Stop 之後回傳 false 並丟棄任務
	Submit(Task) bool
	Stop()
}

// NewPool creates a pool with n workers and a queue of size queue.
// n<=0 defaults to 1, queue<=0 defaults to n.
func NewPool(n, queue int) Pool {
	if n <= 0 {
		n = 1
	}
	if queue <= 0 {
		queue = n
	}
	p := &pool{jobs: make(chan Task, queue)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.run(i)
	}
	return p
}

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
}

func (p *pool) run(id int) {
	defer p.wg.Done()
	for job := range p.jobs {
		p.exec(id, job)
	}
}

func (p *pool) exec(id int, job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("worker", id).Interface("panic", r).Msg("worker task panicked")
		}
	}()
	job()
}

func (p *pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	select {
	case p.jobs <- t:
		return true
	default:
		return false
	}
}

// Stop 等待已排入的任務全部完成；可重複呼叫
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
