package habit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"habittracker/internal/model"
	"habittracker/internal/repository"
)

// Store is the habit persistence surface the service needs. Implementations
// return repository.ErrNotFound for missing rows.
type Store interface {
	Insert(ctx context.Context, h *model.Habit) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Habit, error)
	ListVisible(ctx context.Context, userID int64, limit, offset int) ([]model.Habit, error)
	ListOwned(ctx context.Context, userID int64) ([]model.Habit, error)
	Update(ctx context.Context, h *model.Habit) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Patch carries the fields of a partial update. Nil means unchanged.
// RelatedTo set to 0 clears the companion reference.
type Patch struct {
	Place     *string
	Action    *string
	StartTime *time.Time
	Interval  *model.Interval
	IsNice    *bool
	RelatedTo *int64
	Reward    *string
	Duration  *time.Duration
	IsPublic  *bool
}

// Create validates the draft and persists it with the caller as owner.
func (s *Service) Create(ctx context.Context, ownerID int64, draft *model.Habit) (*model.Habit, error) {
	draft.OwnerID = ownerID

	if err := s.validate(ctx, draft); err != nil {
		return nil, err
	}

	id, err := s.store.Insert(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("insert habit: %w", err)
	}

	created, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload habit %d: %w", id, err)
	}

	s.logger.Info("Habit created",
		zap.Int64("id", id),
		zap.Int64("owner_id", ownerID),
		zap.String("action", created.Action),
	)
	return created, nil
}

// Get returns a habit when the actor owns it or it is public.
func (s *Service) Get(ctx context.Context, actorID, id int64) (*model.Habit, error) {
	h, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != actorID && !h.IsPublic {
		return nil, ErrNotOwner
	}
	return h, nil
}

// ListVisible returns the actor's own habits plus all public ones,
// deduplicated and ordered by id, paginated.
func (s *Service) ListVisible(ctx context.Context, actorID int64, limit, offset int) ([]model.Habit, error) {
	return s.store.ListVisible(ctx, actorID, limit, offset)
}

// ListOwned returns only the actor's habits, ordered by id.
func (s *Service) ListOwned(ctx context.Context, actorID int64) ([]model.Habit, error) {
	return s.store.ListOwned(ctx, actorID)
}

// Update merges the patch into the stored habit, re-validates the result and
// persists it. Only the owner may update.
func (s *Service) Update(ctx context.Context, actorID, id int64, patch Patch) (*model.Habit, error) {
	h, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != actorID {
		return nil, ErrNotOwner
	}

	merged := *h
	applyPatch(&merged, patch)

	if err := s.validate(ctx, &merged); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, &merged); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update habit %d: %w", id, err)
	}

	s.logger.Info("Habit updated", zap.Int64("id", id), zap.Int64("owner_id", actorID))
	return &merged, nil
}

// Delete removes a habit. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	h, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if h.OwnerID != actorID {
		return ErrNotOwner
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete habit %d: %w", id, err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*model.Habit, error) {
	h, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load habit %d: %w", id, err)
	}
	return h, nil
}

// validate resolves the companion habit, if any, and runs the business rules.
func (s *Service) validate(ctx context.Context, candidate *model.Habit) error {
	var related *model.Habit
	if candidate.RelatedTo != nil {
		var err error
		related, err = s.store.GetByID(ctx, *candidate.RelatedTo)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrCompanionNotNice
			}
			return fmt.Errorf("resolve companion habit %d: %w", *candidate.RelatedTo, err)
		}
	}
	return Validate(candidate, related)
}

func applyPatch(h *model.Habit, p Patch) {
	if p.Place != nil {
		h.Place = *p.Place
	}
	if p.Action != nil {
		h.Action = *p.Action
	}
	if p.StartTime != nil {
		h.StartTime = *p.StartTime
	}
	if p.Interval != nil {
		h.Interval = *p.Interval
	}
	if p.IsNice != nil {
		h.IsNice = *p.IsNice
	}
	if p.RelatedTo != nil {
		if *p.RelatedTo == 0 {
			h.RelatedTo = nil
		} else {
			h.RelatedTo = p.RelatedTo
		}
	}
	if p.Reward != nil {
		h.Reward = *p.Reward
	}
	if p.Duration != nil {
		h.Duration = *p.Duration
	}
	if p.IsPublic != nil {
		h.IsPublic = *p.IsPublic
	}
}
