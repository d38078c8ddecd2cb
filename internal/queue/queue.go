// Package queue persists offers the remote API has not confirmed and
// retries them on a fixed schedule.
//
// The retry loop is a robfig/cron entry that exists only while the queue
// is non-empty: Enqueue starts it lazily and a pass that leaves the queue
// empty stops it.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"jobmate/posting-service/internal/offer"
	"jobmate/posting-service/internal/store"
)

// Key is the fixed key holding the JSON list of pending offers.
const Key = "pendingJobOffers"

// DefaultSpec is the retry interval.
const DefaultSpec = "@every 12h"

// Submitter sends one payload to the remote API.
type Submitter interface {
	Submit(ctx context.Context, p offer.Payload) (json.RawMessage, error)
}

// Prober reports whether the remote API is reachable.
type Prober interface {
	IsReachable(ctx context.Context) bool
}

// Queue is the offline submission queue.
type Queue struct {
	kv        store.KV
	submitter Submitter
	prober    Prober
	spec      string
	log       *zap.Logger

	// Now stamps new pending offers.
	Now func() time.Time

	// mu serialises read-modify-write of the persisted list and the
	// decision to start or stop the loop.
	mu sync.Mutex

	loopMu  sync.Mutex
	cron    *cron.Cron
	baseCtx context.Context
}

// New creates a Queue whose loop fires on spec, e.g. "@every 12h".
func New(kv store.KV, submitter Submitter, prober Prober, spec string, log *zap.Logger) *Queue {
	if spec == "" {
		spec = DefaultSpec
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Queue{
		kv:        kv,
		submitter: submitter,
		prober:    prober,
		spec:      spec,
		log:       log.Named("queue"),
		Now:       time.Now,
		baseCtx:   context.Background(),
	}
}

// Start resumes the retry loop when offers from a previous run are still
// persisted. ctx is handed to every retry pass.
func (q *Queue) Start(ctx context.Context) error {
	q.loopMu.Lock()
	q.baseCtx = ctx
	q.loopMu.Unlock()

	q.mu.Lock()
	defer q.mu.Unlock()

	offers, err := q.load(ctx)
	if err != nil {
		return err
	}
	if len(offers) == 0 {
		q.log.Info("no pending offers, retry loop idle")
		return nil
	}
	q.log.Info("resuming retry loop", zap.Int("pending", len(offers)))
	return q.startLoop()
}

// Stop shuts the loop down and waits for a running pass to finish.
func (q *Queue) Stop() {
	q.loopMu.Lock()
	c := q.cron
	q.cron = nil
	q.loopMu.Unlock()

	if c != nil {
		<-c.Stop().Done()
		q.log.Info("retry loop stopped")
	}
}

// Running reports whether the retry loop is scheduled.
func (q *Queue) Running() bool {
	q.loopMu.Lock()
	defer q.loopMu.Unlock()
	return q.cron != nil
}

// Enqueue persists p as a new PendingOffer and makes sure the retry loop
// is running.
func (q *Queue) Enqueue(ctx context.Context, p offer.Payload) (offer.PendingOffer, error) {
	pending := offer.NewPendingOffer(p, q.Now())

	q.mu.Lock()
	defer q.mu.Unlock()

	offers, err := q.load(ctx)
	if err != nil {
		return pending, err
	}
	if err := q.save(ctx, append(offers, pending)); err != nil {
		return pending, err
	}
	q.log.Info("offer queued", zap.String("id", pending.ID), zap.Int("pending", len(offers)+1))

	if err := q.startLoop(); err != nil {
		return pending, err
	}
	return pending, nil
}

// List returns the pending offers in storage order.
func (q *Queue) List(ctx context.Context) ([]offer.PendingOffer, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load(ctx)
}

// Len returns the number of pending offers.
func (q *Queue) Len(ctx context.Context) (int, error) {
	offers, err := q.List(ctx)
	return len(offers), err
}

// startLoop schedules the retry entry if it is not scheduled yet.
// Callers hold q.mu.
func (q *Queue) startLoop() error {
	q.loopMu.Lock()
	defer q.loopMu.Unlock()

	if q.cron != nil {
		return nil
	}

	logger := cronLogger{q.log.Sugar()}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	ctx := q.baseCtx
	if _, err := c.AddFunc(q.spec, func() { q.tick(ctx) }); err != nil {
		return pkgerrors.Wrapf(err, "cron.AddFunc(%q)", q.spec)
	}
	c.Start()
	q.cron = c
	q.log.Info("retry loop started", zap.String("spec", q.spec))
	return nil
}

// stopLoopIfEmpty cancels the loop when nothing is left to retry.
func (q *Queue) stopLoopIfEmpty(ctx context.Context) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	offers, err := q.load(ctx)
	if err != nil || len(offers) > 0 {
		return false
	}

	q.loopMu.Lock()
	c := q.cron
	q.cron = nil
	q.loopMu.Unlock()

	if c != nil {
		// Called from inside a cron job: do not wait for it to finish.
		c.Stop()
		q.log.Info("queue empty, retry loop stopped")
	}
	return true
}

func (q *Queue) load(ctx context.Context) ([]offer.PendingOffer, error) {
	raw, err := q.kv.Get(ctx, Key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load pending offers")
	}

	var offers []offer.PendingOffer
	if err := json.Unmarshal([]byte(raw), &offers); err != nil {
		return nil, pkgerrors.Wrap(err, "decode pending offers")
	}
	return offers, nil
}

func (q *Queue) save(ctx context.Context, offers []offer.PendingOffer) error {
	if offers == nil {
		offers = []offer.PendingOffer{}
	}
	raw, err := json.Marshal(offers)
	if err != nil {
		return pkgerrors.Wrap(err, "encode pending offers")
	}
	if err := q.kv.Set(ctx, Key, string(raw)); err != nil {
		return pkgerrors.Wrap(err, "save pending offers")
	}
	return nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
