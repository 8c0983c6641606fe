package service

import (
	"context"
	"errors"
	"fmt"

	"blogapi/internal/adapter/out/storage"
	"blogapi/internal/model"
	"blogapi/pkg/logger"
)

// RootScope decides whose root comments a listing returns.
type RootScope string

const (
	// RootScopeOwner lists only the caller's own root comments.
	RootScopeOwner RootScope = "owner"
	// RootScopePost lists every root comment on the post.
	RootScopePost RootScope = "post"
)

func ParseRootScope(s string) (RootScope, error) {
	switch RootScope(s) {
	case RootScopeOwner, RootScopePost:
		return RootScope(s), nil
	default:
		return "", fmt.Errorf("%w: unknown root scope %q", ErrInvalidRequest, s)
	}
}

//go:generate mockgen -source=comments.go -destination=./comments_mock.go -package=service
type CommentStorage interface {
	CreateComment(ctx context.Context, req CreateCommentRequest) (model.Comment, error)
	GetCommentByID(ctx context.Context, commentID int64) (model.Comment, error)
	UpdateComment(ctx context.Context, req UpdateCommentRequest) (model.Comment, error)
	DeleteComment(ctx context.Context, commentID, userID int64) (model.Comment, error)
	DeleteComments(ctx context.Context, commentIDs []int64) error
	DeleteCommentsByPost(ctx context.Context, postID int64) ([]int64, error)
	GetDescendantIDs(ctx context.Context, commentID int64) ([]int64, error)
	ReparentReplies(ctx context.Context, fromParentID int64, toParentID *int64) error
	GetRootComments(ctx context.Context, params storage.RootCommentsParams) ([]model.Comment, error)
	GetReplies(ctx context.Context, parentID int64) ([]model.Comment, error)
}

// Notifier derives notification records from comment tree transitions.
type Notifier interface {
	NotifyReply(ctx context.Context, parent, reply model.Comment) (model.Notification, error)
	NotifyEdit(ctx context.Context, reply model.Comment) error
	Purge(ctx context.Context, commentIDs []int64) error
	Retarget(ctx context.Context, commentIDs []int64, recipientID int64) error
	Publish(ctx context.Context, n model.Notification)
}

// TxManager runs fn atomically. Storage calls made with the ctx passed to fn
// join the transaction.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type CommentService struct {
	commentStorage CommentStorage
	postStorage    PostStorage
	notifier       Notifier
	tx             TxManager
}

func NewCommentService(commentStorage CommentStorage, postStorage PostStorage, notifier Notifier, tx TxManager) *CommentService {
	return &CommentService{
		commentStorage: commentStorage,
		postStorage:    postStorage,
		notifier:       notifier,
		tx:             tx,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, req CreateCommentRequest) (model.Comment, error) {
	log := logger.FromContext(ctx).With("post_id", req.PostID, "user_id", req.UserID)

	if err := validateRequest(req); err != nil {
		return model.Comment{}, err
	}
	if req.ParentID != nil && *req.ParentID <= 0 {
		return model.Comment{}, fmt.Errorf("%w: parent id must be > 0", ErrInvalidRequest)
	}

	if _, err := s.postStorage.GetPostByID(ctx, req.PostID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Comment{}, fmt.Errorf("post %d: %w", req.PostID, ErrNotFound)
		}
		return model.Comment{}, storageError("get post", err)
	}

	var (
		comment      model.Comment
		notification *model.Notification
	)
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		var parent model.Comment
		if req.ParentID != nil {
			p, err := s.commentStorage.GetCommentByID(ctx, *req.ParentID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return ErrParentNotFound
				}
				return storageError("get parent comment", err)
			}
			if p.PostID != req.PostID {
				return fmt.Errorf("%w: parent comment belongs to another post", ErrInvalidRequest)
			}
			parent = p
		}

		c, err := s.commentStorage.CreateComment(ctx, req)
		if err != nil {
			return storageError("create comment", err)
		}
		comment = c

		if c.IsRoot() {
			return nil
		}
		n, err := s.notifier.NotifyReply(ctx, parent, c)
		if err != nil {
			return err
		}
		notification = &n
		return nil
	})
	if err != nil {
		log.Warn("comment not created", "error", err)
		return model.Comment{}, err
	}

	if notification != nil {
		s.notifier.Publish(ctx, *notification)
	}

	log.Info("comment created", "comment_id", comment.ID, "reply", !comment.IsRoot())
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, req UpdateCommentRequest) (model.Comment, error) {
	if err := validateRequest(req); err != nil {
		return model.Comment{}, err
	}

	var updated model.Comment
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		c, err := s.commentStorage.UpdateComment(ctx, req)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				s.logMiss(ctx, "update", req.ID, req.UserID)
				return ErrNotFound
			}
			return storageError("update comment", err)
		}
		updated = c

		if c.IsRoot() {
			return nil
		}
		return s.notifier.NotifyEdit(ctx, c)
	})
	if err != nil {
		return model.Comment{}, err
	}

	logger.FromContext(ctx).Info("comment updated", "comment_id", updated.ID, "user_id", req.UserID)
	return updated, nil
}

// DeleteComment removes a comment owned by userID and returns the ids of every
// comment that went with it, the comment itself first.
//
// Deleting a root removes its whole reply subtree. Deleting a reply removes
// only the reply; its direct replies move up to the deleted reply's parent.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, userID int64) ([]int64, error) {
	if commentID <= 0 || userID <= 0 {
		return nil, ErrInvalidRequest
	}

	var removed []int64
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		log := logger.FromContext(ctx).With("op", "delete", "comment_id", commentID, "user_id", userID)

		c, err := s.commentStorage.GetCommentByID(ctx, commentID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				log.Info("comment mutation rejected", "reason", "comment does not exist")
				return ErrNotFound
			}
			return storageError("get comment", err)
		}
		if c.UserID != userID {
			log.Warn("comment mutation rejected", "reason", "caller is not the owner")
			return ErrNotFound
		}

		ids := []int64{commentID}
		if c.IsRoot() {
			descendants, err := s.commentStorage.GetDescendantIDs(ctx, commentID)
			if err != nil {
				return storageError("get descendants", err)
			}
			ids = append(ids, descendants...)
		} else if err := s.liftReplies(ctx, c); err != nil {
			return err
		}

		if err := s.notifier.Purge(ctx, ids); err != nil {
			return err
		}

		if _, err := s.commentStorage.DeleteComment(ctx, commentID, userID); err != nil {
			return storageError("delete comment", err)
		}
		if len(ids) > 1 {
			if err := s.commentStorage.DeleteComments(ctx, ids[1:]); err != nil {
				return storageError("delete replies", err)
			}
		}

		removed = ids
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("comment deleted",
		"comment_id", commentID,
		"user_id", userID,
		"cascaded", len(removed)-1,
	)
	return removed, nil
}

// liftReplies hands the direct replies of c to c's parent and points their
// notifications at the parent's author. Must run inside the delete transaction.
func (s *CommentService) liftReplies(ctx context.Context, c model.Comment) error {
	children, err := s.commentStorage.GetReplies(ctx, c.ID)
	if err != nil {
		return storageError("get replies", err)
	}
	if len(children) == 0 {
		return nil
	}

	if err := s.commentStorage.ReparentReplies(ctx, c.ID, c.ParentID); err != nil {
		return storageError("reparent replies", err)
	}

	parent, err := s.commentStorage.GetCommentByID(ctx, *c.ParentID)
	if err != nil {
		return storageError("get new parent", err)
	}

	ids := make([]int64, 0, len(children))
	for _, child := range children {
		ids = append(ids, child.ID)
	}
	return s.notifier.Retarget(ctx, ids, parent.UserID)
}

func (s *CommentService) ListRootComments(ctx context.Context, postID, userID int64, scope RootScope) ([]model.Comment, error) {
	if postID <= 0 {
		return nil, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}

	params := storage.RootCommentsParams{PostID: postID}
	switch scope {
	case RootScopeOwner:
		if userID <= 0 {
			return nil, fmt.Errorf("userID must be > 0: %w", ErrInvalidRequest)
		}
		params.UserID = &userID
	case RootScopePost:
	default:
		return nil, fmt.Errorf("%w: unknown root scope %q", ErrInvalidRequest, scope)
	}

	comments, err := s.commentStorage.GetRootComments(ctx, params)
	if err != nil {
		return nil, storageError("get root comments", err)
	}
	return comments, nil
}

func (s *CommentService) ListReplies(ctx context.Context, commentID int64) ([]model.Comment, error) {
	if commentID <= 0 {
		return nil, fmt.Errorf("commentID must be > 0: %w", ErrInvalidRequest)
	}

	if _, err := s.commentStorage.GetCommentByID(ctx, commentID); err != nil {
		return nil, storageError("get comment", err)
	}

	replies, err := s.commentStorage.GetReplies(ctx, commentID)
	if err != nil {
		return nil, storageError("get replies", err)
	}
	return replies, nil
}

// logMiss records why an ownership-scoped mutation matched nothing. Callers
// only ever see ErrNotFound.
func (s *CommentService) logMiss(ctx context.Context, op string, commentID, userID int64) {
	log := logger.FromContext(ctx).With("op", op, "comment_id", commentID, "user_id", userID)

	c, err := s.commentStorage.GetCommentByID(ctx, commentID)
	switch {
	case errors.Is(err, ErrNotFound):
		log.Info("comment mutation rejected", "reason", "comment does not exist")
	case err != nil:
		log.Warn("comment mutation rejected", "reason", "lookup failed", "error", err)
	case c.UserID != userID:
		log.Warn("comment mutation rejected", "reason", "caller is not the owner")
	default:
		log.Info("comment mutation rejected", "reason", "no matching row")
	}
}
