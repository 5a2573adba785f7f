package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
)

// fakeGeneration returns a canned payload and records requests.
type fakeGeneration struct {
	mu       sync.Mutex
	payload  string
	err      error
	requests []driven.StructuredRequest
}

func (f *fakeGeneration) GenerateStructured(_ context.Context, req driven.StructuredRequest) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.payload), nil
}

func (f *fakeGeneration) ModelName() string { return "fake-model" }
func (f *fakeGeneration) Close() error      { return nil }

func (f *fakeGeneration) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// fakeAnswers replays scripted chunks, optionally failing after them.
type fakeAnswers struct {
	chunks   []driven.AnswerChunk
	failWith error
	startErr error
	started  int
	closed   bool
}

func (f *fakeAnswers) StreamGrounded(_ context.Context, _ driven.GroundedRequest) (driven.AnswerStream, error) {
	f.started++
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &fakeStream{owner: f, chunks: f.chunks, failWith: f.failWith}, nil
}

func (f *fakeAnswers) SupportsGrounding() bool { return true }
func (f *fakeAnswers) Close() error            { return nil }

type fakeStream struct {
	owner    *fakeAnswers
	chunks   []driven.AnswerChunk
	pos      int
	failWith error
}

func (s *fakeStream) Next() (driven.AnswerChunk, error) {
	if s.pos < len(s.chunks) {
		c := s.chunks[s.pos]
		s.pos++
		return c, nil
	}
	if s.failWith != nil {
		return driven.AnswerChunk{}, s.failWith
	}
	return driven.AnswerChunk{}, io.EOF
}

func (s *fakeStream) Close() error {
	s.owner.closed = true
	return nil
}

// fakePrompts serves fixed prompts.
type fakePrompts map[string]string

func (p fakePrompts) Load(name string) (string, error) {
	if v, ok := p[name]; ok {
		return v, nil
	}
	return "", domain.ErrNotFound
}

func (p fakePrompts) Reload() {}

// fixedClock always returns the same instant.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// fakeGateway returns a scripted purchase outcome.
type fakeGateway struct {
	ok       bool
	err      error
	products []string
}

func (g *fakeGateway) Purchase(_ context.Context, product domain.Product, _ string) (bool, error) {
	g.products = append(g.products, product.ID)
	return g.ok, g.err
}

// fakeNewsletter records subscriptions.
type fakeNewsletter struct {
	mu     sync.Mutex
	ok     bool
	err    error
	emails []string
	done   chan struct{}
}

func (n *fakeNewsletter) Subscribe(_ context.Context, email string) (bool, string, error) {
	n.mu.Lock()
	n.emails = append(n.emails, email)
	n.mu.Unlock()
	if n.done != nil {
		n.done <- struct{}{}
	}
	return n.ok, "", n.err
}

// fakeExporter captures exported files.
type fakeExporter struct {
	files map[string][]byte
	err   error

	// onExport runs before the file is recorded.
	onExport func()
}

func (e *fakeExporter) Export(_ context.Context, name string, content []byte) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	if e.onExport != nil {
		e.onExport()
	}
	if e.files == nil {
		e.files = make(map[string][]byte)
	}
	e.files[name] = content
	return "mem://" + name, nil
}
