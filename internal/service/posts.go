package service

import (
	"context"
	"errors"
	"fmt"

	"blogapi/internal/model"
	"blogapi/pkg/logger"
)

//go:generate mockgen -source=posts.go -destination=./post_storage_mock.go -package=service
type PostStorage interface {
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
	GetPostByID(ctx context.Context, postID int64) (model.Post, error)
	GetPosts(ctx context.Context) ([]model.Post, error)
	UpdatePost(ctx context.Context, post model.Post) (model.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

type PostService struct {
	postStorage    PostStorage
	commentStorage CommentStorage
	notifier       Notifier
	tx             TxManager
}

func NewPostService(postStorage PostStorage, commentStorage CommentStorage, notifier Notifier, tx TxManager) *PostService {
	return &PostService{
		postStorage:    postStorage,
		commentStorage: commentStorage,
		notifier:       notifier,
		tx:             tx,
	}
}

func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (model.Post, error) {
	if err := validateRequest(req); err != nil {
		return model.Post{}, err
	}
	p, err := s.postStorage.CreatePost(ctx, model.Post{
		Title:  req.Title,
		Body:   req.Body,
		Author: req.Author,
	})
	if err != nil {
		return model.Post{}, storageError("create post", err)
	}
	return p, nil
}

func (s *PostService) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	if postID <= 0 {
		return model.Post{}, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	p, err := s.postStorage.GetPostByID(ctx, postID)
	if err != nil {
		return model.Post{}, storageError("get post", err)
	}
	return p, nil
}

func (s *PostService) GetPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := s.postStorage.GetPosts(ctx)
	if err != nil {
		return nil, storageError("get posts", err)
	}
	return posts, nil
}

func (s *PostService) UpdatePost(ctx context.Context, req UpdatePostRequest) (model.Post, error) {
	if err := validateRequest(req); err != nil {
		return model.Post{}, err
	}
	p, err := s.postStorage.UpdatePost(ctx, model.Post{
		ID:     req.ID,
		Title:  req.Title,
		Body:   req.Body,
		Author: req.Author,
	})
	if err != nil {
		return model.Post{}, storageError("update post", err)
	}
	return p, nil
}

// DeletePost removes the post together with its comments and the
// notifications those comments produced.
func (s *PostService) DeletePost(ctx context.Context, postID int64) error {
	if postID <= 0 {
		return fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}

	var removed int
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		if _, err := s.postStorage.GetPostByID(ctx, postID); err != nil {
			return storageError("get post", err)
		}

		ids, err := s.commentStorage.DeleteCommentsByPost(ctx, postID)
		if err != nil {
			return storageError("delete post comments", err)
		}
		if err := s.notifier.Purge(ctx, ids); err != nil {
			return err
		}
		removed = len(ids)

		if err := s.postStorage.DeletePost(ctx, postID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrNotFound
			}
			return storageError("delete post", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("post deleted", "post_id", postID, "comments_removed", removed)
	return nil
}
