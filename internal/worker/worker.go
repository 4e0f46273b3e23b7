// Package worker runs blocking storage calls off the caller's goroutine and
// hands results back as futures.
package worker

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pool bounds how many tasks run at once.
type Pool struct {
	g  errgroup.Group
	wg sync.WaitGroup
}

func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{}
	p.g.SetLimit(size)
	return p
}

// Future is the pending result of a submitted task.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Done is closed when the result is ready.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Await blocks until the task finishes or ctx ends. Ending ctx only stops
// the wait; the task itself runs to completion.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Resolved returns an already completed future.
func Resolved[T any](v T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: v, err: err}
	close(f.done)
	return f
}

// Submit schedules fn on p. Tasks get a background context: storage
// operations are not cancellable.
func Submit[T any](p *Pool, fn func(ctx context.Context) (T, error)) *Future[T] {
	return schedule(p, nil, fn)
}

// Lane runs its tasks one at a time in the order they were enqueued, while
// still sharing the pool's limit with everything else.
type Lane struct {
	pool *Pool
	mu   sync.Mutex
	tail <-chan struct{}
}

func (p *Pool) Lane() *Lane {
	return &Lane{pool: p}
}

// Enqueue schedules fn on l after every task enqueued before it has finished.
// A waiting task does not occupy a pool slot.
func Enqueue[T any](l *Lane, fn func(ctx context.Context) (T, error)) *Future[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	f := schedule(l.pool, l.tail, fn)
	l.tail = f.done
	return f
}

func schedule[T any](p *Pool, after <-chan struct{}, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	p.wg.Add(1)
	go func() {
		if after != nil {
			<-after
		}
		p.g.Go(func() error {
			defer p.wg.Done()
			defer close(f.done)
			defer func() {
				if r := recover(); r != nil {
					f.err = fmt.Errorf("worker: task panicked: %v", r)
				}
			}()
			f.val, f.err = fn(context.Background())
			return nil
		})
	}()
	return f
}

// Wait blocks until every submitted task has finished.
func (p *Pool) Wait() {
	p.wg.Wait()
}
