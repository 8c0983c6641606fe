package inmemory

import (
	"context"
	"slices"
	"sync"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/service"
)

type PostStorage struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]model.Post
}

func NewPostStorage() *PostStorage {
	return &PostStorage{
		byID: make(map[int64]model.Post),
	}
}

func (s *PostStorage) CreatePost(_ context.Context, in model.Post) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	in.ID = s.nextID
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	in.UpdatedAt = in.CreatedAt
	s.byID[in.ID] = in
	return in, nil
}

func (s *PostStorage) GetPostByID(_ context.Context, postID int64) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if post, ok := s.byID[postID]; ok {
		return post, nil
	}
	return model.Post{}, service.ErrNotFound
}

// GetPosts returns every post, newest first.
func (s *PostStorage) GetPosts(_ context.Context) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Post, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b model.Post) int {
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		default:
			return 0
		}
	})
	return out, nil
}

func (s *PostStorage) UpdatePost(_ context.Context, in model.Post) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[in.ID]
	if !ok {
		return model.Post{}, service.ErrNotFound
	}
	p.Title = in.Title
	p.Body = in.Body
	p.Author = in.Author
	p.UpdatedAt = time.Now()
	s.byID[p.ID] = p
	return p, nil
}

func (s *PostStorage) DeletePost(_ context.Context, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[postID]; !ok {
		return service.ErrNotFound
	}
	delete(s.byID, postID)
	return nil
}
