package dungeon

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

type Service interface {
	// Attempt runs one /roll-attempt for the player.
	Attempt(ctx context.Context, player Player) (*AttemptResult, error)
	Status(ctx context.Context, player Player) (*StatusReport, error)
	Levels(ctx context.Context) ([]Threshold, error)
}

type Option func(*service)

func WithCooldown(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.cooldown = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func WithRNG(rng RNG) Option {
	return func(s *service) {
		s.rng = &lockedRNG{rng: rng}
	}
}

type service struct {
	repository Repository
	references *ReferenceCache
	locks      *UserLocks
	rng        RNG
	now        func() time.Time
	cooldown   time.Duration
}

func NewService(repository Repository, references *ReferenceCache, opts ...Option) *service {
	s := &service{
		repository: repository,
		references: references,
		locks:      NewUserLocks(),
		rng:        &lockedRNG{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))},
		now:        time.Now,
		cooldown:   DefaultCooldown,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Attempt(ctx context.Context, player Player) (*AttemptResult, error) {
	unlock := s.locks.Lock(player.ID)
	defer unlock()

	result := &AttemptResult{Player: player}

	err := s.repository.WithinUserTx(ctx, player.ID, func(repo Repository) error {
		user, err := repo.GetOrCreateUser(ctx, player.ID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}

		now := s.now().UTC()
		decision := CheckCooldown(user.LastCheck, s.cooldown, now)
		if !decision.Allowed {
			result.Remaining = decision.Remaining
			result.User = *user
			return nil
		}
		result.Allowed = true

		if err := repo.UpdateLastCheck(ctx, player.ID, now); err != nil {
			return fmt.Errorf("failed to save check time: %w", err)
		}
		user.LastCheck = &now

		roll := RollDelta(user.CurrentLevel, s.rng)
		result.Roll = roll

		if table, ok := roll.Outcome.Table(); ok && roll.Delta != 0 {
			msg, err := s.references.RandomEncounter(ctx, repo, table, s.rng)
			if err != nil {
				return err
			}
			result.Encounter = msg
		}

		if roll.Delta != 0 {
			levels, err := s.references.Levels(ctx, repo)
			if err != nil {
				return err
			}

			ApplyDelta(user, roll.Delta)
			transition, err := ResolveLevelChange(user, levels)
			if err != nil {
				return err
			}
			result.Transition = transition

			if err := repo.UpdateProgress(ctx, player.ID, user.TotalExp, user.CurrentLevel); err != nil {
				return fmt.Errorf("failed to save progress: %w", err)
			}
		}

		result.User = *user
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Dungeon attempt resolved",
		slog.String("type", "sys"),
		slog.String("user_id", player.ID),
		slog.Bool("allowed", result.Allowed),
		slog.String("outcome", result.Roll.Outcome.String()),
		slog.Int64("delta", result.Roll.Delta),
		slog.Int64("total_exp", result.User.TotalExp),
		slog.Int("level", result.User.CurrentLevel))

	return result, nil
}

func (s *service) Status(ctx context.Context, player Player) (*StatusReport, error) {
	user, err := s.repository.GetOrCreateUser(ctx, player.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	levels, err := s.references.Levels(ctx, s.repository)
	if err != nil {
		return nil, err
	}

	return &StatusReport{
		Player:        player,
		User:          *user,
		NextThreshold: levels.Next(user.CurrentLevel),
	}, nil
}

func (s *service) Levels(ctx context.Context) ([]Threshold, error) {
	levels, err := s.references.Levels(ctx, s.repository)
	if err != nil {
		return nil, err
	}
	return levels.Thresholds(), nil
}

// lockedRNG makes a non thread-safe source usable from concurrent commands.
type lockedRNG struct {
	mu  sync.Mutex
	rng RNG
}

func (r *lockedRNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}
