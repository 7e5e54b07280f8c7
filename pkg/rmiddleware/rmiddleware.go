package rmiddleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillswap/api/internal/middleware"
)

// AdminMiddleware guards admin-only routes. The is_admin flag is read from
// the database on every request so revoking admin takes effect immediately.
func AdminMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		var isAdmin bool
		row := db.Table("users").
			Select("is_admin").
			Where("id = ? AND deleted_at IS NULL", userID).
			Row()
		if err := row.Scan(&isAdmin); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user role"})
			return
		}

		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "You don't have permission to access this resource",
			})
			return
		}

		c.Next()
	}
}
