package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/invoiceflow/invoiceflow/internal/usercontext"
)

const (
	// HeaderUser carries the caller identity resolved by the edge proxy.
	HeaderUser = "X-User-ID"

	contextUserIDKey = "user_id"
)

// AuthRequired resolves the caller identity from the X-User-ID header and
// injects it into the request context. Requests without a parseable user
// ID are rejected before reaching any handler.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderUser))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		userID, err := snowflake.ParseString(raw)
		if err != nil || userID == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := usercontext.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(contextUserIDKey, userID.String())
		c.Next()
	}
}
