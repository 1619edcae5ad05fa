package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"eventpass/internal/domain"
)

const missingEmailReason = "sin correo registrado"

// Dispatcher runs the action step of bulk operations on a bounded pool.
type Dispatcher struct {
	workers    int
	actTimeout time.Duration
	logger     *slog.Logger
}

// NewDispatcher returns a Dispatcher running at most workers actions at a time,
// each limited to actTimeout.
//
// A timed-out action frees its slot as soon as the deadline fires, but its goroutine runs
// until the action returns. An action that ignores its context can therefore overlap with
// later ones and push real concurrency on the transport past workers. Actions passed to
// Dispatch must honor ctx.
func NewDispatcher(workers int, actTimeout time.Duration, logger *slog.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if actTimeout <= 0 {
		actTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{workers: workers, actTimeout: actTimeout, logger: logger}
}

// DispatchPlan tells Dispatch how to key, resolve and act on one item.
// Resolve runs sequentially on the caller's goroutine; Act runs on the pool.
//
// Key names the raw item and is used for Unmatched entries and resolve failures. Identify,
// when set, names the resolved record for MissingContact and Failed entries of matched items.
type DispatchPlan[T, R any] struct {
	Key      func(item T) string
	Identify func(item T, record R) string
	Resolve  func(ctx context.Context, item T) (R, domain.MatchKind, error)
	Act      func(ctx context.Context, item T, record R) (domain.DispatchReceipt, error)
}

type dispatchOutcome struct {
	kind    domain.MatchKind
	key     string
	receipt domain.DispatchReceipt
	err     error
}

// Dispatch resolves every item and acts on the matched ones. Every item lands in exactly
// one bucket of the result and buckets keep input order.
func Dispatch[T, R any](ctx context.Context, d *Dispatcher, items []T, plan DispatchPlan[T, R]) *domain.DispatchResult {
	outcomes := make([]dispatchOutcome, len(items))

	var g errgroup.Group
	g.SetLimit(d.workers)
	for i, item := range items {
		key := plan.Key(item)
		outcomes[i].key = key

		record, kind, err := plan.Resolve(ctx, item)
		if err != nil {
			outcomes[i].err = fmt.Errorf("resolve: %w", err)
			continue
		}
		outcomes[i].kind = kind
		if kind != domain.Unmatched && plan.Identify != nil {
			outcomes[i].key = plan.Identify(item, record)
		}
		if kind != domain.Matched {
			continue
		}
		g.Go(func() error {
			outcomes[i].receipt, outcomes[i].err = d.run(ctx, func(actx context.Context) (domain.DispatchReceipt, error) {
				return plan.Act(actx, item, record)
			})
			return nil
		})
	}
	_ = g.Wait()

	result := domain.NewDispatchResult()
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			result.Failed = append(result.Failed, domain.DispatchFailure{Key: o.key, Error: o.err.Error()})
		case o.kind == domain.Unmatched:
			result.Unmatched = append(result.Unmatched, o.key)
		case o.kind == domain.MissingContactKind:
			result.MissingContact = append(result.MissingContact, domain.MissingContactItem{Identifier: o.key, Reason: missingEmailReason})
		default:
			result.Succeeded = append(result.Succeeded, o.receipt)
		}
	}

	d.logger.Info("bulk dispatch finished",
		"total", len(items),
		"succeeded", len(result.Succeeded),
		"unmatched", len(result.Unmatched),
		"missing_contact", len(result.MissingContact),
		"failed", len(result.Failed),
	)
	return result
}

// run executes act under its own deadline. The call is raced against the deadline so an
// action that ignores its context still yields a timeout.
func (d *Dispatcher) run(ctx context.Context, act func(context.Context) (domain.DispatchReceipt, error)) (domain.DispatchReceipt, error) {
	actx, cancel := context.WithTimeout(ctx, d.actTimeout)
	defer cancel()

	type actResult struct {
		receipt domain.DispatchReceipt
		err     error
	}
	done := make(chan actResult, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- actResult{err: fmt.Errorf("panic: %v", p)}
			}
		}()
		receipt, err := act(actx)
		done <- actResult{receipt: receipt, err: err}
	}()

	select {
	case res := <-done:
		return res.receipt, res.err
	case <-actx.Done():
		return domain.DispatchReceipt{}, actx.Err()
	}
}
