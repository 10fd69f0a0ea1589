package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	contactdomain "github.com/invoiceflow/invoiceflow/internal/contact/domain"
	"github.com/invoiceflow/invoiceflow/pkg/db/pagination"
)

func (s *Server) CreateContact(c *gin.Context) {
	var req contactdomain.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	resp, err := s.contactSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListContacts(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name  string `form:"name"`
		Email string `form:"email"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.contactSvc.List(c.Request.Context(), contactdomain.ListContactRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Name:      strings.TrimSpace(query.Name),
		Email:     strings.TrimSpace(query.Email),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetContactByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := snowflake.ParseString(id); err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	resp, err := s.contactSvc.GetByID(c.Request.Context(), contactdomain.GetContactRequest{
		ID: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateContact(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req contactdomain.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.contactSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteContact(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.contactSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isContactValidationError(err error) bool {
	switch err {
	case contactdomain.ErrInvalidName,
		contactdomain.ErrInvalidEmail,
		contactdomain.ErrInvalidID,
		contactdomain.ErrInvalidPageToken:
		return true
	default:
		return false
	}
}
