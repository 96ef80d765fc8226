package util

import "golang.org/x/sync/errgroup"

// Pool runs tasks on at most max extra goroutines. When every slot is
// busy, Do runs the task on the caller's goroutine instead of waiting.
type Pool struct {
	slots chan struct{}
	eg    errgroup.Group
}

func NewPool(max int) *Pool {
	if max < 1 {
		max = 1
	}
	return &Pool{slots: make(chan struct{}, max)}
}

// Do runs task, in the background if a slot is free.
func (p *Pool) Do(task func()) {
	select {
	case p.slots <- struct{}{}:
		p.eg.Go(func() error {
			defer func() { <-p.slots }()
			task()
			return nil
		})
	default:
		task()
	}
}

// Wait blocks until every task started by Do has returned.
func (p *Pool) Wait() { _ = p.eg.Wait() }
