package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fluxyapp/fluxy/internal/auth"
	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/response"
)

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new account and returns a session token.
func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := s.auth.Register(c.Request.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			response.Error(c, http.StatusConflict, err.Error())
		case errors.Is(err, auth.ErrWeakPassword):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			fail(c, err)
		}
		return
	}
	response.Created(c, authResponse{User: user, Token: token})
}

// Login verifies credentials and returns a session token.
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, err.Error())
			return
		}
		fail(c, err)
		return
	}
	response.OK(c, authResponse{User: user, Token: token})
}
