package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"habittracker/internal/model"
)

// MemoryHabitStore is an in-memory HabitRepository equivalent used by tests.
// It mirrors the SQL contract exactly: ids are assigned sequentially, lists
// are ordered by id ascending, and the due window is half-open [lower, upper).
type MemoryHabitStore struct {
	mu     sync.Mutex
	habits map[int64]model.Habit
	nextID int64
}

func NewMemoryHabitStore() *MemoryHabitStore {
	return &MemoryHabitStore{
		habits: make(map[int64]model.Habit),
		nextID: 1,
	}
}

func (s *MemoryHabitStore) Insert(_ context.Context, h *model.Habit) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	stored := *h
	stored.ID = id
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.habits[id] = stored
	return id, nil
}

func (s *MemoryHabitStore) GetByID(_ context.Context, id int64) (*model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &h, nil
}

func (s *MemoryHabitStore) ListVisible(_ context.Context, userID int64, limit, offset int) ([]model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var habits []model.Habit
	for _, h := range s.habits {
		if h.OwnerID == userID || h.IsPublic {
			habits = append(habits, h)
		}
	}
	sortByID(habits)

	if offset >= len(habits) {
		return nil, nil
	}
	habits = habits[offset:]
	if limit > 0 && limit < len(habits) {
		habits = habits[:limit]
	}
	return habits, nil
}

func (s *MemoryHabitStore) ListOwned(_ context.Context, userID int64) ([]model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var habits []model.Habit
	for _, h := range s.habits {
		if h.OwnerID == userID {
			habits = append(habits, h)
		}
	}
	sortByID(habits)
	return habits, nil
}

func (s *MemoryHabitStore) ListDueBetween(_ context.Context, lower, upper time.Time) ([]model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var habits []model.Habit
	for _, h := range s.habits {
		if !h.StartTime.Before(lower) && h.StartTime.Before(upper) {
			habits = append(habits, h)
		}
	}
	sortByID(habits)
	return habits, nil
}

func (s *MemoryHabitStore) Update(_ context.Context, h *model.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.habits[h.ID]
	if !ok {
		return ErrNotFound
	}

	stored := *h
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now()
	s.habits[h.ID] = stored
	return nil
}

func (s *MemoryHabitStore) UpdateStartTime(_ context.Context, id int64, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[id]
	if !ok {
		return ErrNotFound
	}
	h.StartTime = t
	h.UpdatedAt = time.Now()
	s.habits[id] = h
	return nil
}

func (s *MemoryHabitStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.habits[id]; !ok {
		return ErrNotFound
	}
	delete(s.habits, id)
	return nil
}

func sortByID(habits []model.Habit) {
	sort.Slice(habits, func(i, j int) bool { return habits[i].ID < habits[j].ID })
}

// MemoryUserStore is the in-memory UserRepository equivalent.
type MemoryUserStore struct {
	mu     sync.Mutex
	users  map[int64]model.User
	nextID int64
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:  make(map[int64]model.User),
		nextID: 1,
	}
}

func (s *MemoryUserStore) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextID
	s.nextID++
	u.CreatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) UpdateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	s.users[u.ID] = *u
	return nil
}
