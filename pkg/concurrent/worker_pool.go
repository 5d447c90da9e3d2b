package concurrent

import (
	"sync"
)

type JobFunc[J any, R any] func(job J) R

// WorkerPool. fixed number of goroutines applying one JobFunc to queued jobs.
// results arrive in completion order.
type WorkerPool[J any, R any] struct {
	numWorkers int
	jobQueue   chan J
	results    chan R
	wg         sync.WaitGroup
}

func NewWorkerPool[J any, R any](numWorkers, jobQueueSize int) *WorkerPool[J, R] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[J, R]{
		numWorkers: numWorkers,
		jobQueue:   make(chan J, jobQueueSize),
		results:    make(chan R, jobQueueSize),
	}
}

func (wp *WorkerPool[J, R]) worker(jobFunc JobFunc[J, R]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(job)
	}
}

func (wp *WorkerPool[J, R]) Start(jobFunc JobFunc[J, R]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// Wait blocks until every worker exits, then closes the results channel. call Close first.
func (wp *WorkerPool[J, R]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[J, R]) AddJob(job J) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[J, R]) CollectResults() <-chan R {
	return wp.results
}

func (wp *WorkerPool[J, R]) Close() {
	close(wp.jobQueue)
}

// RunAll applies jobFunc to every job on numWorkers goroutines and returns the results in completion order.
func RunAll[J any, R any](numWorkers int, jobs []J, jobFunc JobFunc[J, R]) []R {
	wp := NewWorkerPool[J, R](numWorkers, len(jobs))
	wp.Start(jobFunc)
	for _, job := range jobs {
		wp.AddJob(job)
	}
	wp.Close()
	wp.Wait()

	results := make([]R, 0, len(jobs))
	for res := range wp.CollectResults() {
		results = append(results, res)
	}
	return results
}
