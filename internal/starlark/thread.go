package starlark

import (
	"log/slog"
	"sync"

	"go.starlark.net/starlark"
)

// maxSteps bounds the work of a single rule call so a runaway loop in a
// rule module fails the check instead of hanging the run.
const maxSteps = 50_000_000

// ThreadPool recycles Starlark threads across rule calls.
type ThreadPool struct {
	mu      sync.Mutex
	threads []*starlark.Thread
	maxSize int
	logger  *slog.Logger
}

// NewThreadPool creates a pool keeping at most maxSize idle threads.
// Output of print() in rules is logged at debug level.
func NewThreadPool(maxSize int, logger *slog.Logger) *ThreadPool {
	if maxSize <= 0 {
		maxSize = 4
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ThreadPool{
		threads: make([]*starlark.Thread, 0, maxSize),
		maxSize: maxSize,
		logger:  logger,
	}
}

// Get retrieves a thread from the pool or creates a new one.
// The thread name is used for error reporting.
func (p *ThreadPool) Get(name string) *starlark.Thread {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.threads); n > 0 {
		thread := p.threads[n-1]
		p.threads = p.threads[:n-1]
		thread.Name = name
		thread.SetMaxExecutionSteps(thread.ExecutionSteps() + maxSteps)
		return thread
	}

	thread := &starlark.Thread{
		Name: name,
		Print: func(t *starlark.Thread, msg string) {
			p.logger.Debug("rule output", slog.String("thread", t.Name), slog.String("msg", msg))
		},
	}
	thread.SetMaxExecutionSteps(maxSteps)
	return thread
}

// Put returns a thread to the pool. Callers only return threads whose last
// call succeeded; a thread cancelled by the step limit stays cancelled.
func (p *ThreadPool) Put(thread *starlark.Thread) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) >= p.maxSize {
		return
	}
	thread.Name = ""
	p.threads = append(p.threads, thread)
}

// Size returns the current number of idle threads.
func (p *ThreadPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.threads)
}
