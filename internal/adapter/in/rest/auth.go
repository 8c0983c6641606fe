package rest

import (
	"net/http"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
)

type signupBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      model.Identity `json:"user"`
}

func (h *Handler) signup(c *gin.Context) {
	var body signupBody
	if err := bindJSON(c, &body); err != nil {
		fail(c, "signup", err)
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), service.SignupRequest{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		fail(c, "signup", err)
		return
	}
	ok(c, http.StatusCreated, "user created", user)
}

func (h *Handler) login(c *gin.Context) {
	var body loginBody
	if err := bindJSON(c, &body); err != nil {
		fail(c, "login", err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), service.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		fail(c, "login", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookie, res.Token, int(service.TokenTTL.Seconds()), "/", "", true, true)
	ok(c, http.StatusOK, "logged in", loginData{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      res.Identity,
	})
}

func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookie, "", -1, "/", "", true, true)
	ok(c, http.StatusOK, "logged out", nil)
}

func (h *Handler) checkAuth(c *gin.Context) {
	ok(c, http.StatusOK, "authenticated", gin.H{
		"isAuthenticated": true,
		"user":            identityFrom(c),
	})
}
