package queue

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"jobmate/posting-service/internal/offer"
)

// tick is one firing of the retry loop.
func (q *Queue) tick(ctx context.Context) {
	if q.stopLoopIfEmpty(ctx) {
		return
	}
	if !q.prober.IsReachable(ctx) {
		q.log.Info("offers API unreachable, retry deferred")
		return
	}
	if _, err := q.ProcessPending(ctx); err != nil {
		q.log.Warn("retry pass finished with failures", zap.Error(err))
	}
}

// RunOnce probes the API and, when it is reachable, processes the queue
// immediately. It reports how many offers were submitted.
func (q *Queue) RunOnce(ctx context.Context) (int, error) {
	if !q.prober.IsReachable(ctx) {
		return 0, nil
	}
	return q.ProcessPending(ctx)
}

// ProcessPending submits every pending offer once, in storage order.
// Offers the API accepts are removed; the rest stay untouched. The
// returned error aggregates the individual submission failures. When the
// queue ends up empty the retry loop is stopped.
func (q *Queue) ProcessPending(ctx context.Context) (int, error) {
	offers, err := q.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(offers) == 0 {
		q.stopLoopIfEmpty(ctx)
		return 0, nil
	}

	q.log.Info("retry pass started", zap.Int("pending", len(offers)))

	var (
		submitted int
		errs      error
	)
	for _, p := range offers {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}
		if _, err := q.submitter.Submit(ctx, p.Data); err != nil {
			q.log.Warn("pending offer rejected", zap.String("id", p.ID), zap.Error(err))
			errs = multierr.Append(errs, pkgerrors.Wrapf(err, "submit %s", p.ID))
			continue
		}
		if err := q.remove(ctx, p.ID); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		submitted++
		q.log.Info("pending offer submitted", zap.String("id", p.ID))
	}

	q.log.Info("retry pass finished",
		zap.Int("submitted", submitted),
		zap.Int("failed", len(multierr.Errors(errs))),
	)
	q.stopLoopIfEmpty(ctx)
	return submitted, errs
}

// remove drops the offer with id from the persisted list. The list is
// re-read so offers enqueued during the pass survive.
func (q *Queue) remove(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	offers, err := q.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]offer.PendingOffer, 0, len(offers))
	for _, p := range offers {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return q.save(ctx, kept)
}
