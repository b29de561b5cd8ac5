package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckAdmin must run after CheckAuth. Admin and Instructor roles pass.
func CheckAdmin(c *gin.Context) {
	if !c.GetBool("admin") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.Next()
}
