package middleware

import (
	"net/http"

	"careerpath/models"
	"careerpath/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects requests whose authenticated role is not one of roles.
// It must run after JWTAuthUserMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, r := range roles {
			if string(r) == role {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "Access denied for role '"+role+"'.")
	}
}
