package simulator

import (
	"context"
	"sync"
)

// tracerJob is one unit of work submitted to a tracerPool: run a Tracer
// batch and hand its segments to a completion callback.
type tracerJob struct {
	run func(ctx context.Context)
}

// tracerPool is the concurrency-bound worker pool that runs Tracer batches.
// It is single-generation: it is torn down and rebuilt whole on every
// Restart rather than reused across sessions, since cancelling one
// session's in-flight work is simpler than repurposing its workers.
//
// Two queues give interactive work priority over final work without an
// OS-level scheduling primitive: a worker always drains interactive before
// touching final.
type tracerPool struct {
	ctx         context.Context
	interactive chan tracerJob
	final       chan tracerJob
	wg          sync.WaitGroup
}

// newTracerPool starts numWorkers goroutines bound to ctx. Cancelling ctx
// is the only way to stop them; there is no separate Stop method because
// the pool's lifetime is exactly its context's lifetime.
func newTracerPool(ctx context.Context, numWorkers int) *tracerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	p := &tracerPool{
		ctx:         ctx,
		interactive: make(chan tracerJob, 4),
		final:       make(chan tracerJob, numWorkers*2),
	}
	p.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.worker()
	}
	return p
}

func (p *tracerPool) worker() {
	defer p.wg.Done()
	for {
		// Priority drain: never touch a final job while an interactive one
		// is waiting.
		select {
		case job := <-p.interactive:
			job.run(p.ctx)
			continue
		case <-p.ctx.Done():
			return
		default:
		}

		select {
		case job := <-p.interactive:
			job.run(p.ctx)
		case job := <-p.final:
			job.run(p.ctx)
		case <-p.ctx.Done():
			return
		}
	}
}

// submitInteractive enqueues a high-priority job. It never blocks past
// context cancellation.
func (p *tracerPool) submitInteractive(job tracerJob) {
	select {
	case p.interactive <- job:
	case <-p.ctx.Done():
	}
}

// submitFinal enqueues a normal-priority job.
func (p *tracerPool) submitFinal(job tracerJob) {
	select {
	case p.final <- job:
	case <-p.ctx.Done():
	}
}

// simulatorPool is the single-worker, strictly-serial orchestration queue
// that every Restart/Stop/SetExposure mutation and every tracer-completion
// refill task funnels through. It has the highest scheduling priority of
// any queue in the system simply by virtue of never competing with tracer
// work for a goroutine.
type simulatorPool struct {
	tasks chan func()
	done  chan struct{}
}

func newSimulatorPool() *simulatorPool {
	p := &simulatorPool{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *simulatorPool) run() {
	for {
		select {
		case task := <-p.tasks:
			task()
		case <-p.done:
			return
		}
	}
}

// submit enqueues an orchestration task. It blocks only if the queue is
// saturated, which would indicate a caller issuing edits far faster than
// the orchestrator can apply them.
func (p *simulatorPool) submit(task func()) {
	select {
	case p.tasks <- task:
	case <-p.done:
	}
}

func (p *simulatorPool) stop() {
	close(p.done)
}
