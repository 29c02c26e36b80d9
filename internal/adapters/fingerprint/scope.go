package fingerprint

import (
	"context"
	"sync"

	"go.trai.ch/modelcache/internal/core/domain"
)

type scopeKey struct{}

type inputID struct {
	kind domain.InputKind
	key  string
}

// scope collects the inputs observed while one project's models are computed.
type scope struct {
	project domain.Path
	parent  *scope

	mu     sync.Mutex
	inputs map[inputID]domain.FingerprintInput
}

func enter(ctx context.Context, project domain.Path) (context.Context, *scope) {
	s := &scope{
		project: project,
		parent:  scopeFrom(ctx),
		inputs:  make(map[inputID]domain.FingerprintInput),
	}
	return context.WithValue(ctx, scopeKey{}, s), s
}

func scopeFrom(ctx context.Context) *scope {
	s, _ := ctx.Value(scopeKey{}).(*scope)
	return s
}

func (s *scope) add(in domain.FingerprintInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs[inputID{kind: in.Kind, key: in.Key}] = in
}

func (s *scope) merge(inputs map[inputID]domain.FingerprintInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, in := range inputs {
		s.inputs[id] = in
	}
}

func (s *scope) snapshot() map[inputID]domain.FingerprintInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[inputID]domain.FingerprintInput, len(s.inputs))
	for id, in := range s.inputs {
		out[id] = in
	}
	return out
}

// exit hands the collected inputs to the enclosing scope. An enclosing scope
// of another project also records a dependency on this one.
func (s *scope) exit() map[inputID]domain.FingerprintInput {
	inputs := s.snapshot()
	if s.parent == nil {
		return inputs
	}
	s.parent.merge(inputs)
	if s.parent.project != s.project {
		s.parent.add(domain.FingerprintInput{Kind: domain.InputProject, Key: s.project.String()})
	}
	return inputs
}
