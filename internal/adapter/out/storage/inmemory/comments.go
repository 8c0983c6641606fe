package inmemory

import (
	"context"
	"slices"
	"sync"
	"time"

	"blogapi/internal/adapter/out/storage"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

type CommentStorage struct {
	mu sync.RWMutex

	nextID   int64
	comments map[int64]model.Comment
	byPost   map[int64][]int64
	byParent map[int64][]int64
}

func NewCommentStorage() *CommentStorage {
	return &CommentStorage{
		comments: make(map[int64]model.Comment),
		byPost:   make(map[int64][]int64),
		byParent: make(map[int64][]int64),
	}
}

func (s *CommentStorage) CreateComment(_ context.Context, req service.CreateCommentRequest) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ParentID != nil {
		if _, ok := s.comments[*req.ParentID]; !ok {
			return model.Comment{}, service.ErrParentNotFound
		}
	}

	s.nextID++
	now := time.Now()
	c := model.Comment{
		ID:        s.nextID,
		PostID:    req.PostID,
		UserID:    req.UserID,
		Text:      req.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.ParentID != nil {
		pid := *req.ParentID
		c.ParentID = &pid
	}

	s.comments[c.ID] = c
	s.byPost[c.PostID] = append(s.byPost[c.PostID], c.ID)
	if c.ParentID != nil {
		s.byParent[*c.ParentID] = append(s.byParent[*c.ParentID], c.ID)
	}

	return c, nil
}

func (s *CommentStorage) GetCommentByID(_ context.Context, commentID int64) (model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[commentID]
	if !ok {
		return model.Comment{}, service.ErrNotFound
	}
	return c, nil
}

func (s *CommentStorage) UpdateComment(_ context.Context, req service.UpdateCommentRequest) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[req.ID]
	if !ok || c.UserID != req.UserID {
		return model.Comment{}, service.ErrNotFound
	}

	c.Text = req.Text
	if req.IsRead != nil {
		c.IsRead = *req.IsRead
	}
	c.UpdatedAt = time.Now()
	s.comments[c.ID] = c
	return c, nil
}

func (s *CommentStorage) DeleteComment(_ context.Context, commentID, userID int64) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[commentID]
	if !ok || c.UserID != userID {
		return model.Comment{}, service.ErrNotFound
	}
	s.remove(c)
	return c, nil
}

func (s *CommentStorage) DeleteComments(_ context.Context, commentIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range commentIDs {
		if c, ok := s.comments[id]; ok {
			s.remove(c)
		}
	}
	return nil
}

func (s *CommentStorage) DeleteCommentsByPost(_ context.Context, postID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := slices.Clone(s.byPost[postID])
	for _, id := range ids {
		s.remove(s.comments[id])
	}
	return ids, nil
}

// GetDescendantIDs walks the reply tree below commentID breadth first.
func (s *CommentStorage) GetDescendantIDs(_ context.Context, commentID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []int64
	queue := slices.Clone(s.byParent[commentID])
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)
		queue = append(queue, s.byParent[id]...)
	}
	return out, nil
}

func (s *CommentStorage) ReparentReplies(_ context.Context, fromParentID int64, toParentID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	children := s.byParent[fromParentID]
	delete(s.byParent, fromParentID)

	for _, id := range children {
		c := s.comments[id]
		if toParentID == nil {
			c.ParentID = nil
		} else {
			pid := *toParentID
			c.ParentID = &pid
			s.byParent[pid] = append(s.byParent[pid], id)
		}
		s.comments[id] = c
	}
	if toParentID != nil {
		slices.Sort(s.byParent[*toParentID])
	}
	return nil
}

func (s *CommentStorage) GetRootComments(_ context.Context, p storage.RootCommentsParams) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Comment, 0)
	for _, id := range s.byPost[p.PostID] {
		c := s.comments[id]
		if !c.IsRoot() {
			continue
		}
		if p.UserID != nil && c.UserID != *p.UserID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *CommentStorage) GetReplies(_ context.Context, parentID int64) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	childIDs := s.byParent[parentID]
	out := make([]model.Comment, 0, len(childIDs))
	for _, id := range childIDs {
		out = append(out, s.comments[id])
	}
	return out, nil
}

// remove drops c from every index. Callers hold the write lock.
func (s *CommentStorage) remove(c model.Comment) {
	delete(s.comments, c.ID)
	s.byPost[c.PostID] = deleteID(s.byPost[c.PostID], c.ID)
	if len(s.byPost[c.PostID]) == 0 {
		delete(s.byPost, c.PostID)
	}
	if c.ParentID != nil {
		pid := *c.ParentID
		s.byParent[pid] = deleteID(s.byParent[pid], c.ID)
		if len(s.byParent[pid]) == 0 {
			delete(s.byParent, pid)
		}
	}
}

func deleteID(ids []int64, id int64) []int64 {
	return slices.DeleteFunc(ids, func(v int64) bool { return v == id })
}
