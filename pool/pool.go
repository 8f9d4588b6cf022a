// ABOUTME: Small worker pool for loading many files in parallel
// ABOUTME: Submit-and-wait tasks plus an order-preserving Map helper

// Package pool runs independent tasks on a fixed set of goroutines.
package pool

import (
	"runtime"
	"sync"
)

// WorkerPool manages a pool of worker goroutines for parallel task execution
type WorkerPool struct {
	taskChan chan func()
	workerWg sync.WaitGroup // worker goroutine lifetime
	taskWg   sync.WaitGroup // submitted tasks not yet finished
}

// NewWorkerPool starts workers goroutines (NumCPU when workers <= 0).
// bufferSize is the task queue capacity; Submit blocks when it is full.
func NewWorkerPool(workers, bufferSize int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := &WorkerPool{
		taskChan: make(chan func(), bufferSize),
	}

	for range workers {
		p.workerWg.Add(1)

		go func() {
			defer p.workerWg.Done()

			for task := range p.taskChan {
				task()
				p.taskWg.Done()
			}
		}()
	}

	return p
}

// Submit queues a task
func (p *WorkerPool) Submit(task func()) {
	p.taskWg.Add(1)
	p.taskChan <- task
}

// Wait blocks until all submitted tasks have completed
func (p *WorkerPool) Wait() {
	p.taskWg.Wait()
}

// Close shuts down the pool and waits for all workers to exit
func (p *WorkerPool) Close() {
	close(p.taskChan)
	p.workerWg.Wait()
}

// Map runs fn over items on p and returns the results in input order
func Map[T, R any](p *WorkerPool, items []T, fn func(T) R) []R {
	results := make([]R, len(items))

	for i, item := range items {
		p.Submit(func() {
			results[i] = fn(item)
		})
	}

	p.Wait()

	return results
}
