package rest

import (
	"net/http"

	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
)

type createCommentBody struct {
	Text          string `json:"text"`
	ParentComment *int64 `json:"parentComment"`
}

type updateCommentBody struct {
	Text   string `json:"text"`
	IsRead *bool  `json:"isRead"`
}

func (h *Handler) createComment(c *gin.Context) {
	postID, err := idParam(c, "postId")
	if err != nil {
		fail(c, "create comment", err)
		return
	}
	var body createCommentBody
	if err := bindJSON(c, &body); err != nil {
		fail(c, "create comment", err)
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), service.CreateCommentRequest{
		PostID:   postID,
		ParentID: body.ParentComment,
		UserID:   identityFrom(c).UserID,
		Text:     body.Text,
	})
	if err != nil {
		fail(c, "create comment", err)
		return
	}
	ok(c, http.StatusCreated, "comment created", comment)
}

func (h *Handler) updateComment(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, "update comment", err)
		return
	}
	var body updateCommentBody
	if err := bindJSON(c, &body); err != nil {
		fail(c, "update comment", err)
		return
	}

	comment, err := h.comments.UpdateComment(c.Request.Context(), service.UpdateCommentRequest{
		ID:     id,
		UserID: identityFrom(c).UserID,
		Text:   body.Text,
		IsRead: body.IsRead,
	})
	if err != nil {
		fail(c, "update comment", err)
		return
	}
	ok(c, http.StatusOK, "comment updated", comment)
}

func (h *Handler) deleteComment(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, "delete comment", err)
		return
	}

	removed, err := h.comments.DeleteComment(c.Request.Context(), id, identityFrom(c).UserID)
	if err != nil {
		fail(c, "delete comment", err)
		return
	}
	ok(c, http.StatusOK, "comment deleted", gin.H{"deleted": removed})
}

// listRootComments honours ?scope=owner|post, falling back to the configured default.
func (h *Handler) listRootComments(c *gin.Context) {
	postID, err := idParam(c, "postId")
	if err != nil {
		fail(c, "list comments", err)
		return
	}

	scope := h.rootScope
	if raw := c.Query("scope"); raw != "" {
		if scope, err = service.ParseRootScope(raw); err != nil {
			fail(c, "list comments", err)
			return
		}
	}

	comments, err := h.comments.ListRootComments(c.Request.Context(), postID, identityFrom(c).UserID, scope)
	if err != nil {
		fail(c, "list comments", err)
		return
	}
	ok(c, http.StatusOK, "comments", comments)
}

func (h *Handler) listReplies(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, "list replies", err)
		return
	}

	replies, err := h.comments.ListReplies(c.Request.Context(), id)
	if err != nil {
		fail(c, "list replies", err)
		return
	}
	ok(c, http.StatusOK, "replies", replies)
}
