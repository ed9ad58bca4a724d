package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/sakif/portfolio-cms/internal/repository"
	"github.com/sakif/portfolio-cms/internal/resequence"
)

// sequencer guards one ordered collection. Every operation that reads
// placements and writes them back runs under mu, so two admins dragging
// items at the same time cannot interleave inside this process.
type sequencer struct {
	mu   sync.Mutex
	repo repository.Orderable
}

func newSequencer(repo repository.Orderable) *sequencer {
	return &sequencer{repo: repo}
}

// locked runs fn while holding the collection lock.
func (s *sequencer) locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// tailOf returns the next free position in group. Callers must hold the lock.
func (s *sequencer) tailOf(ctx context.Context, group string) (int, error) {
	items, err := s.repo.Placements(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		if it.Group == group {
			n++
		}
	}
	return n, nil
}

// reorder applies a batch of moves and persists only the rows that changed.
func (s *sequencer) reorder(ctx context.Context, moves []resequence.Move) error {
	return s.locked(func() error {
		current, err := s.repo.Placements(ctx)
		if err != nil {
			return err
		}
		next, err := resequence.Apply(current, moves)
		if err != nil {
			return err
		}
		if err := s.repo.ApplyOrder(ctx, resequence.Changed(current, next)); err != nil {
			return fmt.Errorf("persisting order: %w", err)
		}
		return nil
	})
}

// densify closes gaps left by deletes and group changes. Callers must hold the lock.
func (s *sequencer) densify(ctx context.Context) error {
	current, err := s.repo.Placements(ctx)
	if err != nil {
		return err
	}
	next := resequence.Densify(current)
	return s.repo.ApplyOrder(ctx, resequence.Changed(current, next))
}
