package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	invoicedomain "github.com/invoiceflow/invoiceflow/internal/invoice/domain"
	"github.com/invoiceflow/invoiceflow/pkg/db/pagination"
)

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		State  string `form:"state"`
		Client string `form:"client"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	state, err := parseOptionalState(query.State)
	if err != nil {
		AbortWithError(c, newValidationError("state", "invalid_state", "invalid state"))
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		State:     state,
		Client:    strings.TrimSpace(query.Client),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := snowflake.ParseString(id); err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	item, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req invoicedomain.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInvoiceStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req invoicedomain.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.invoiceSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isInvoiceValidationError(err error) bool {
	switch err {
	case invoicedomain.ErrInvalidClient,
		invoicedomain.ErrInvalidID,
		invoicedomain.ErrMissingQuantity,
		invoicedomain.ErrInvalidQuantity,
		invoicedomain.ErrMissingUnitPrice,
		invoicedomain.ErrInvalidUnitPrice,
		invoicedomain.ErrInvalidTaxRate,
		invoicedomain.ErrInvalidShipping,
		invoicedomain.ErrInvalidState,
		invoicedomain.ErrInvalidPageToken:
		return true
	default:
		return false
	}
}
