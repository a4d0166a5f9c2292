package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Samu-Kiss/Uni-App/pkg/response"
)

// MustGetUserID extracts the authenticated user ID from the context.
// Returns false and writes a 401 if the auth middleware did not run;
// callers should return immediately when ok is false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}
