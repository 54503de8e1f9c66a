package policy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tokengate/internal/balance"
	"tokengate/internal/policy/metrics"
	"tokengate/internal/uintrange"
	"tokengate/pkg/requestcontext"
)

// BalanceSource resolves the balances held by an address in a collection.
// Satisfied by *balance.Resolver; tests substitute counting fakes.
type BalanceSource interface {
	Resolve(ctx context.Context, chain, collectionID, addr string, snapshot balance.Snapshot) ([]balance.Balance, error)
}

// Evaluator walks a condition tree depth-first and produces one outcome.
// It holds no per-evaluation state: independent Evaluate calls may run
// concurrently as long as each call's snapshot is not mutated underneath it.
type Evaluator struct {
	balances BalanceSource
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewEvaluator constructs an Evaluator with its dependencies.
func NewEvaluator(balances BalanceSource, logger *slog.Logger, m *metrics.Metrics) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{balances: balances, logger: logger, metrics: m}
}

// Evaluate resolves the condition tree for addr. Children of every node are
// evaluated sequentially in declared order, never in parallel, because
// short-circuiting must make later branches, and their remote balance calls,
// skippable.
//
// The returned error is reserved for the fatal taxonomy (invalid
// requirements, unsupported chains or collection kinds, resolution
// failures): those abort immediately through any surrounding structure. Not
// owning the right amount is not an error; it comes back as a denying
// Outcome with a structured reason.
func (e *Evaluator) Evaluate(ctx context.Context, node ConditionNode, addr string, snapshot balance.Snapshot) (Outcome, error) {
	switch n := node.(type) {
	case AndNode:
		return e.evaluateAnd(ctx, n, addr, snapshot)
	case OrNode:
		return e.evaluateOr(ctx, n, addr, snapshot)
	case LeafNode:
		return e.evaluateGroup(ctx, n.Group, addr, snapshot)
	default:
		return Outcome{}, fmt.Errorf("unknown condition node %T", node)
	}
}

// evaluateAnd denies with the first child's denial; later children are not
// evaluated after a denial or error.
func (e *Evaluator) evaluateAnd(ctx context.Context, n AndNode, addr string, snapshot balance.Snapshot) (Outcome, error) {
	for _, child := range n.Children {
		out, err := e.Evaluate(ctx, child, addr, snapshot)
		if err != nil {
			return Outcome{}, err
		}
		if !out.Accepted {
			return out, nil
		}
	}
	return Accept(), nil
}

// evaluateOr accepts on the first accepting child. Branch denials are
// expected alternatives and are dropped; a fatal error while checking a
// branch still propagates, since swallowing it would turn an outage into a
// denial.
func (e *Evaluator) evaluateOr(ctx context.Context, n OrNode, addr string, snapshot balance.Snapshot) (Outcome, error) {
	for _, child := range n.Children {
		out, err := e.Evaluate(ctx, child, addr, snapshot)
		if err != nil {
			return Outcome{}, err
		}
		if out.Accepted {
			return out, nil
		}
	}
	return Deny(&Denial{
		Address:      addr,
		Violation:    ViolationNoAlternative,
		Alternatives: len(n.Children),
	}), nil
}

// evaluateGroup checks each requirement in declared order. Under AllOf the
// first failing sub-range denies the group immediately; under AtLeastK
// failing sub-ranges are skipped and the passing ones are counted across the
// whole group. Validation and resolution errors are fatal under both.
func (e *Evaluator) evaluateGroup(ctx context.Context, g RequirementGroup, addr string, snapshot balance.Snapshot) (Outcome, error) {
	if err := g.Policy.validate(); err != nil {
		return Outcome{}, &InvalidRequirementError{Detail: err.Error()}
	}

	var satisfied uint64
	for _, req := range g.Requirements {
		if err := req.validate(); err != nil {
			return Outcome{}, err
		}

		times := req.OwnershipTimes
		if len(times) == 0 {
			// Ownership must be valid at the instant of evaluation.
			now := evaluationInstant(ctx)
			times = []uintrange.UintRange{{Start: now, End: now}}
		}

		start := time.Now()
		held, err := e.balances.Resolve(ctx, req.Chain, req.CollectionID, addr, snapshot)
		e.metrics.ObserveResolve(time.Since(start))
		if err != nil {
			return Outcome{}, err
		}

		for _, owned := range balance.OwnedAmounts(req.AssetIDRanges, times, held) {
			denial := checkBounds(addr, req, owned)
			if denial == nil {
				satisfied++
				continue
			}
			if g.Policy.Kind == PolicyAllOf {
				e.logger.Debug("ownership check failed",
					"address", addr, "collection", req.CollectionID,
					"range", owned.AssetRange.String(), "violation", string(denial.Violation))
				return Deny(denial), nil
			}
			// AtLeastK: a failing sub-range is skipped, not fatal.
		}
	}

	if g.Policy.Kind == PolicyAtLeastK && satisfied < g.Policy.K {
		return Deny(&Denial{
			Address:   addr,
			Violation: ViolationInsufficientMatches,
			Satisfied: satisfied,
			Required:  g.Policy.K,
		}), nil
	}
	return Accept(), nil
}

// checkBounds applies the inclusive amount bounds to one owned sub-range and
// returns the structured denial when a bound is crossed.
func checkBounds(addr string, req OwnershipRequirement, owned balance.OwnedAmount) *Denial {
	r := owned.AssetRange
	if owned.Amount.Cmp(req.AmountRange.Start) < 0 {
		return &Denial{
			Address:      addr,
			CollectionID: req.CollectionID,
			AssetRange:   &r,
			Violation:    ViolationTooLittle,
			Owned:        owned.Amount,
			Bound:        req.AmountRange.Start,
		}
	}
	if owned.Amount.Cmp(req.AmountRange.End) > 0 {
		return &Denial{
			Address:      addr,
			CollectionID: req.CollectionID,
			AssetRange:   &r,
			Violation:    ViolationTooMuch,
			Owned:        owned.Amount,
			Bound:        req.AmountRange.End,
		}
	}
	return nil
}

// evaluationInstant is the "now" used for defaulted ownership windows, in
// unix milliseconds. Middleware stamps the request time into the context so
// one verification sees a single consistent instant; outside a request the
// wall clock is used.
func evaluationInstant(ctx context.Context) uintrange.Uint {
	now := requestcontext.Now(ctx)
	return uintrange.NewUint(uint64(now.UnixMilli()))
}
