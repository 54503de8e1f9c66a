// Package verification exposes the two operations this system offers its
// host: signature verification and policy evaluation, combined into one
// sign-in check.
package verification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"tokengate/internal/address"
	"tokengate/internal/audit"
	"tokengate/internal/balance"
	"tokengate/internal/challenge"
	jwttoken "tokengate/internal/jwt_token"
	"tokengate/internal/policy"
	"tokengate/internal/policy/metrics"
	"tokengate/internal/signature"
	dErrors "tokengate/pkg/domain-errors"
	"tokengate/pkg/requestcontext"
)

// VerifyRequest is one sign-in attempt: the exact challenge message the user
// signed, the signature over it, and the ownership conditions the host
// requires. Snapshot, when set, answers balance lookups without I/O.
type VerifyRequest struct {
	Message    string
	Signature  string
	Conditions policy.ConditionNode
	Snapshot   balance.Snapshot
}

// VerifyResult is the decision. Exactly accepted or denied, never partial;
// Token is set only on acceptance.
type VerifyResult struct {
	Address  string
	Accepted bool
	Reason   string
	Token    string
}

// Service runs the full verification flow and records its decisions.
type Service struct {
	evaluator *policy.Evaluator
	tokens    *jwttoken.JWTService
	audit     *audit.Service
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tokenTTL  time.Duration
}

func NewService(evaluator *policy.Evaluator, tokens *jwttoken.JWTService, auditSvc *audit.Service, m *metrics.Metrics, logger *slog.Logger, tokenTTL time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		evaluator: evaluator,
		tokens:    tokens,
		audit:     auditSvc,
		metrics:   m,
		logger:    logger,
		tokenTTL:  tokenTTL,
	}
}

// Verify authenticates the claimed address and evaluates the ownership
// conditions against it.
//
// Signature verification and policy evaluation are independent checks, so
// they run concurrently under one errgroup: the first fatal error cancels the
// shared context, which abandons any outstanding remote balance call. The
// condition tree itself is still walked sequentially inside Evaluate;
// short-circuiting depends on declared order.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (*VerifyResult, error) {
	start := time.Now()

	ch, err := challenge.Parse(req.Message)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInvalidInput, "malformed challenge", err)
	}

	var outcome policy.Outcome
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return signature.Verify(req.Message, req.Signature, ch.Address)
	})
	g.Go(func() error {
		var evalErr error
		outcome, evalErr = s.evaluator.Evaluate(gctx, req.Conditions, ch.Address, req.Snapshot)
		return evalErr
	})
	err = g.Wait()
	s.metrics.ObserveEvaluate(time.Since(start))

	if err != nil {
		coded := classify(err)
		s.metrics.RecordOutcome("error")
		s.record(ctx, ch.Address, "error", coded.Error())
		return nil, coded
	}

	if !outcome.Accepted {
		reason := outcome.Denial.Reason()
		s.metrics.RecordOutcome("denied")
		s.record(ctx, ch.Address, "denied", reason)
		return &VerifyResult{Address: ch.Address, Reason: reason}, nil
	}

	token, err := s.tokens.GenerateSessionToken(ch.Address, ch.Nonce, s.tokenTTL)
	if err != nil {
		s.metrics.RecordOutcome("error")
		return nil, dErrors.Wrap(dErrors.CodeInternal, "could not mint session token", err)
	}

	s.metrics.RecordOutcome("accepted")
	s.record(ctx, ch.Address, "accepted", "all ownership conditions satisfied")
	return &VerifyResult{Address: ch.Address, Accepted: true, Token: token}, nil
}

func (s *Service) record(ctx context.Context, addr, decision, reason string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Emit(ctx, audit.Event{
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: requestcontext.Now(ctx),
		Address:   addr,
		Decision:  decision,
		Reason:    reason,
	})
	if err != nil {
		s.logger.Error("audit emit failed", "error", err)
	}
}

// classify maps the verification error taxonomy onto transport codes. The
// structured errors stay in the chain for callers that branch on kind.
func classify(err error) *dErrors.Error {
	var (
		addrErr  *address.DecodeError
		sigErr   *signature.DecodeError
		reqErr   *policy.InvalidRequirementError
		kindErr  *balance.UnsupportedCollectionKindError
		chainErr *balance.UnsupportedChainError
		resErr   *balance.ResolutionError
	)
	switch {
	case errors.Is(err, signature.ErrSignatureInvalid):
		return dErrors.Wrap(dErrors.CodeUnauthorized, "signature does not match claimed address", err)
	case errors.As(err, &addrErr), errors.As(err, &sigErr):
		return dErrors.Wrap(dErrors.CodeInvalidInput, err.Error(), err)
	case errors.As(err, &reqErr), errors.As(err, &kindErr), errors.As(err, &chainErr):
		return dErrors.Wrap(dErrors.CodeInvalidInput, err.Error(), err)
	case errors.As(err, &resErr):
		return dErrors.Wrap(dErrors.CodeUnavailable, "balance service unavailable", err)
	default:
		return dErrors.Wrap(dErrors.CodeInternal, "verification failed", err)
	}
}
