package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fluxyapp/fluxy/internal/middleware"
	"github.com/fluxyapp/fluxy/internal/response"
)

type friendRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestFriend sends a friend request to the user registered under the
// given email.
func (s *Server) RequestFriend(c *gin.Context) {
	var req friendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	f, err := s.friends.Request(c.Request.Context(), middleware.GetUserID(c), req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, f)
}

// ListFriends lists the authenticated user's friendships with the other
// side's profile attached.
func (s *Server) ListFriends(c *gin.Context) {
	friends, err := s.friends.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, friends)
}

// AcceptFriend accepts a pending friend request addressed to the
// authenticated user.
func (s *Server) AcceptFriend(c *gin.Context) {
	f, err := s.friends.Accept(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, f)
}

// BlockFriend blocks the other side of a friendship.
func (s *Server) BlockFriend(c *gin.Context) {
	f, err := s.friends.Block(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, f)
}

// RemoveFriend deletes a friendship the authenticated user is a party to.
func (s *Server) RemoveFriend(c *gin.Context) {
	if err := s.friends.Remove(c.Request.Context(), c.Param("id"), middleware.GetUserID(c)); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, nil)
}
