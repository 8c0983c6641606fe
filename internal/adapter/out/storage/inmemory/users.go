package inmemory

import (
	"context"
	"strings"
	"sync"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/service"
)

type UserStorage struct {
	mu      sync.RWMutex
	nextID  int64
	byEmail map[string]model.User
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		byEmail: make(map[string]model.User),
	}
}

func (s *UserStorage) CreateUser(_ context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, ok := s.byEmail[key]; ok {
		return model.User{}, service.ErrConflict
	}

	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	s.byEmail[key] = u
	return u, nil
}

func (s *UserStorage) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return model.User{}, service.ErrNotFound
	}
	return u, nil
}
