package session

import (
	"context"
	"sync"

	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
	"github.com/louisbranch/highnoon.cards/internal/storage"
)

// Writer serializes snapshot writes for one session through a single
// goroutine, so no two writes for the same session ever interleave. Callers
// still wait for their write to land before acknowledging the triggering
// action; the queue only guarantees ordering, it does not fire-and-forget.
type Writer struct {
	store     storage.SnapshotStore
	jobs      chan writeJob
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type writeJob struct {
	ctx      context.Context
	name     string
	status   bool
	document []byte
	result   chan error
}

// NewWriter starts a writer backed by the given store.
func NewWriter(store storage.SnapshotStore) *Writer {
	w := &Writer{
		store: store,
		jobs:  make(chan writeJob),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		select {
		case job := <-w.jobs:
			if err := job.ctx.Err(); err != nil {
				job.result <- apperrors.Wrap(apperrors.CodeSnapshotWriteFailed,
					"write abandoned before it ran", err)
				continue
			}
			job.result <- w.store.Save(job.ctx, job.name, job.status, job.document)
		case <-w.quit:
			return
		}
	}
}

// Write enqueues one snapshot write and waits for it to complete.
func (w *Writer) Write(ctx context.Context, name string, status bool, document []byte) error {
	result := make(chan error, 1)
	select {
	case w.jobs <- writeJob{ctx: ctx, name: name, status: status, document: document, result: result}:
	case <-ctx.Done():
		return apperrors.Wrap(apperrors.CodeSnapshotWriteFailed,
			"write abandoned while queued", ctx.Err())
	case <-w.quit:
		return apperrors.New(apperrors.CodeSnapshotWriteFailed, "writer is closed")
	}
	return <-result
}

// Close stops the writer and waits for the worker to exit. Writes accepted
// before Close still complete; later calls to Write report a closed writer.
// The writer never closes the jobs channel, so a Write racing Close cannot
// send on a closed channel.
func (w *Writer) Close() {
	w.closeOnce.Do(func() { close(w.quit) })
	<-w.done
}
