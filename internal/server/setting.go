package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	settingdomain "github.com/invoiceflow/invoiceflow/internal/setting/domain"
	"gorm.io/datatypes"
)

func (s *Server) GetSettings(c *gin.Context) {
	resp, err := s.settingSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReplaceSettings(c *gin.Context) {
	var req datatypes.JSONMap
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.settingSvc.Replace(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PatchSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))

	var req struct {
		Value any `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.settingSvc.Patch(c.Request.Context(), key, req.Value)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isSettingValidationError(err error) bool {
	switch err {
	case settingdomain.ErrInvalidKey:
		return true
	default:
		return false
	}
}
