package auth

import "github.com/gin-gonic/gin"

// Gin context keys set by AuthRequired.
const (
	ctxUserID    = "userID"
	ctxUserEmail = "userEmail"
	ctxIsStaff   = "isStaff"
	ctxIsAdmin   = "isAdmin"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return stringValue(c, ctxUserID)
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	return stringValue(c, ctxUserEmail)
}

// IsStaffUser reports whether the caller's token marks them as firm
// staff.
func IsStaffUser(c *gin.Context) bool {
	return boolValue(c, ctxIsStaff)
}

// IsAdminUser reports whether the caller's token marks them as an
// administrator.
func IsAdminUser(c *gin.Context) bool {
	return boolValue(c, ctxIsAdmin)
}

func stringValue(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func boolValue(c *gin.Context, key string) bool {
	if v, ok := c.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
