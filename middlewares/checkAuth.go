package middlewares

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/DevotionHub/initializers"
	"github.com/DevotionHub/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// CheckAuth validates the bearer token and loads the account fresh from
// the database. The role is never trusted from the token; the admin
// flag is derived from the role column on every request.
func CheckAuth(c *gin.Context) {
	user, ok := userFromAuthHeader(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Request is not authorized"})
		return
	}

	c.Set("currentUser", user)
	c.Set("admin", user.Role == models.RoleAdmin || user.Role == models.RoleInstructor)

	c.Next()
}

// OptionalAuth sets currentUser when a valid token is present but never
// rejects the request. Public endpoints use it to personalize output.
func OptionalAuth(c *gin.Context) {
	if user, ok := userFromAuthHeader(c); ok {
		c.Set("currentUser", user)
		c.Set("admin", user.Role == models.RoleAdmin || user.Role == models.RoleInstructor)
	}
	c.Next()
}

func userFromAuthHeader(c *gin.Context) (models.UserAccount, bool) {
	var user models.UserAccount

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return user, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return user, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("SECRET")), nil
	})
	if err != nil || !token.Valid {
		return user, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["_id"] == nil {
		return user, false
	}

	found, err := initializers.DB.From("user_account").
		Select("*").
		Where(goqu.C("user_id").Eq(claims["_id"])).
		ScanStruct(&user)
	if err != nil || !found || user.User_ID == 0 {
		return user, false
	}

	return user, true
}
