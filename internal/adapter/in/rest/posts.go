package rest

import (
	"net/http"

	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
)

type postBody struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Author string `json:"author"`
}

func (h *Handler) createPost(c *gin.Context) {
	var body postBody
	if err := bindJSON(c, &body); err != nil {
		fail(c, "create post", err)
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), service.CreatePostRequest{
		Title:  body.Title,
		Body:   body.Body,
		Author: body.Author,
	})
	if err != nil {
		fail(c, "create post", err)
		return
	}
	ok(c, http.StatusCreated, "post created", post)
}

func (h *Handler) updatePost(c *gin.Context) {
	id, err := idParam(c, "blogId")
	if err != nil {
		fail(c, "update post", err)
		return
	}
	var body postBody
	if err := bindJSON(c, &body); err != nil {
		fail(c, "update post", err)
		return
	}

	post, err := h.posts.UpdatePost(c.Request.Context(), service.UpdatePostRequest{
		ID:     id,
		Title:  body.Title,
		Body:   body.Body,
		Author: body.Author,
	})
	if err != nil {
		fail(c, "update post", err)
		return
	}
	ok(c, http.StatusOK, "post updated", post)
}

func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.posts.GetPosts(c.Request.Context())
	if err != nil {
		fail(c, "list posts", err)
		return
	}
	ok(c, http.StatusOK, "posts", posts)
}

func (h *Handler) deletePost(c *gin.Context) {
	id, err := idParam(c, "blogId")
	if err != nil {
		fail(c, "delete post", err)
		return
	}
	if err := h.posts.DeletePost(c.Request.Context(), id); err != nil {
		fail(c, "delete post", err)
		return
	}
	ok(c, http.StatusOK, "post deleted", nil)
}
