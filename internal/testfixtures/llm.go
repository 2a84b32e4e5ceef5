package testfixtures

import (
	"context"
	"sync"
)

// ScriptedLLM replays canned completions in order and records the prompts it
// received. It stands in for the chat-completions client in interpreter and
// end-to-end tests.
type ScriptedLLM struct {
	mu          sync.Mutex
	completions []string
	err         error
	prompts     []string
}

// NewScriptedLLM returns a client that yields the supplied completions one by
// one. Once the script is exhausted the last completion is repeated.
func NewScriptedLLM(completions ...string) *ScriptedLLM {
	return &ScriptedLLM{completions: completions}
}

// Fail makes every subsequent Complete call return err.
func (s *ScriptedLLM) Fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Complete implements the completion client interface.
func (s *ScriptedLLM) Complete(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.completions) == 0 {
		return "", nil
	}
	next := s.completions[0]
	if len(s.completions) > 1 {
		s.completions = s.completions[1:]
	}
	return next, nil
}

// Prompts returns a copy of every prompt received so far.
func (s *ScriptedLLM) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.prompts))
	copy(out, s.prompts)
	return out
}
