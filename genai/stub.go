package genai

import (
	"context"
	"sync"
)

// Stub is a scripted Generator for tests. Responses are returned in
// order; the last one repeats. Calls counts every invocation so tests can
// assert that validation failures never reach the capability.
type Stub struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Calls     int
}

func (s *Stub) Generate(ctx context.Context, req Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Responses) == 0 {
		return "", errNoJSON
	}
	resp := s.Responses[0]
	if len(s.Responses) > 1 {
		s.Responses = s.Responses[1:]
	}
	return resp, nil
}

// CallCount returns how many times Generate was invoked.
func (s *Stub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}
