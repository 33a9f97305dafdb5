package middlewares

import (
	"booktrack/src/db"
	"booktrack/src/models"
	"booktrack/src/types"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Auth resolves the bearer token to a user and rejects blocked accounts.
// The signing secret is injected at construction, not read from the
// environment.
func Auth(secret []byte) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bearerToken := ctx.Request.Header.Get("Authorization")
		if !strings.HasPrefix(bearerToken, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		reqToken := strings.TrimPrefix(bearerToken, "Bearer ")
		if reqToken == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims := &types.Claims{}
		tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil || !tkn.Valid {
			if err != nil {
				log.Printf("token error: %s\n", err.Error())
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var user models.User
		db := db.GetDb()
		if err := db.
			Model(&models.User{}).
			Where(&models.User{ID: claims.Subject}).
			First(&user).
			Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if user.Blocked {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account blocked"})
			return
		}

		ctx.Set("id", user.ID)
		ctx.Set("role", string(user.Role))
		ctx.Set("name", user.Name)
		ctx.Set("email", user.Email)
	}
}
