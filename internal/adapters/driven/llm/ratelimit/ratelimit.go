// Package ratelimit throttles outbound model calls so a busy server or a
// scripted loop stays inside provider quotas.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft-cli/internal/logger"
)

// DefaultBackoff is used when a provider rejects a call for quota reasons.
const DefaultBackoff = 30 * time.Second

// Limiter is a token bucket with a quota backoff window.
type Limiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	now     func() time.Time
}

// NewLimiter allows requestsPerMinute calls per minute with a burst of
// one fifth of that, at least one.
func NewLimiter(requestsPerMinute int) *Limiter {
	burst := requestsPerMinute / 5
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst),
		now:     time.Now,
	}
}

// Wait blocks until a call may be made, honouring any backoff window.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if wait := retryAt.Sub(l.now()); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return l.limiter.Wait(ctx)
}

// Backoff blocks calls for d. Zero or negative uses DefaultBackoff.
func (l *Limiter) Backoff(d time.Duration) {
	if d <= 0 {
		d = DefaultBackoff
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if until := l.now().Add(d); until.After(l.retryAt) {
		l.retryAt = until
	}
}

// RetryAt returns the end of the current backoff window.
func (l *Limiter) RetryAt() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.retryAt
}

// Classifier reports whether err is a provider quota rejection.
type Classifier func(err error) bool

// Model is a model service that both generates and answers.
type Model interface {
	driven.GenerationService
	driven.GroundedAnswerService
}

// Ensure Service implements the interfaces.
var (
	_ driven.GenerationService     = (*Service)(nil)
	_ driven.GroundedAnswerService = (*Service)(nil)
)

// Service decorates a model with a shared limiter.
type Service struct {
	next          Model
	limiter       *Limiter
	isRateLimited Classifier
}

// Wrap returns next throttled to requestsPerMinute. A non-positive rate
// returns next unchanged.
func Wrap(next Model, requestsPerMinute int, isRateLimited Classifier) Model {
	if requestsPerMinute <= 0 {
		return next
	}
	if isRateLimited == nil {
		isRateLimited = func(error) bool { return false }
	}
	return &Service{
		next:          next,
		limiter:       NewLimiter(requestsPerMinute),
		isRateLimited: isRateLimited,
	}
}

// GenerateStructured waits for the limiter then delegates.
func (s *Service) GenerateStructured(ctx context.Context, req driven.StructuredRequest) ([]byte, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out, err := s.next.GenerateStructured(ctx, req)
	s.observe(err)
	return out, err
}

// StreamGrounded waits for the limiter then delegates.
func (s *Service) StreamGrounded(ctx context.Context, req driven.GroundedRequest) (driven.AnswerStream, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	stream, err := s.next.StreamGrounded(ctx, req)
	s.observe(err)
	if err != nil || stream == nil {
		return stream, err
	}
	return &observedStream{AnswerStream: stream, observe: s.observe}, nil
}

// observedStream reports errors raised while reading, since providers may
// reject a stream for quota reasons after it has started.
type observedStream struct {
	driven.AnswerStream
	observe func(error)
}

func (o *observedStream) Next() (driven.AnswerChunk, error) {
	chunk, err := o.AnswerStream.Next()
	if err != nil && !errors.Is(err, io.EOF) {
		o.observe(err)
	}
	return chunk, err
}

// SupportsGrounding delegates.
func (s *Service) SupportsGrounding() bool {
	return s.next.SupportsGrounding()
}

// ModelName delegates.
func (s *Service) ModelName() string {
	return s.next.ModelName()
}

// Close delegates.
func (s *Service) Close() error {
	return s.next.Close()
}

// Unwrap returns the decorated model.
func (s *Service) Unwrap() Model {
	return s.next
}

func (s *Service) wait(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait: %w", domain.ErrServiceUnavailable, err)
	}
	return nil
}

func (s *Service) observe(err error) {
	if err != nil && s.isRateLimited(err) {
		s.limiter.Backoff(0)
		logger.Warn("model quota exceeded, pausing requests until %s", s.limiter.RetryAt().Format(time.TimeOnly))
	}
}
