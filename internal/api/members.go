package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/response"
)

type memberRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

// CreateMember adds a household member.
func (s *Server) CreateMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	member := &models.Member{Name: req.Name, Color: req.Color, Emoji: req.Emoji}
	if err := s.members.Create(c.Request.Context(), member); err != nil {
		fail(c, err)
		return
	}
	response.Created(c, member)
}

// GetMember returns one member by ID.
func (s *Server) GetMember(c *gin.Context) {
	member, err := s.members.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, member)
}

// ListMembers returns all household members.
func (s *Server) ListMembers(c *gin.Context) {
	members, err := s.members.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, members)
}

// UpdateMember changes a member's display fields.
func (s *Server) UpdateMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	member, err := s.members.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	member.Name = req.Name
	member.Color = req.Color
	member.Emoji = req.Emoji
	if err := s.members.Update(c.Request.Context(), member); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, member)
}

// DeleteMember removes a member and scrubs it from every subscription.
func (s *Server) DeleteMember(c *gin.Context) {
	if err := s.members.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, nil)
}
