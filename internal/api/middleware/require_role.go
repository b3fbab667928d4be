package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobportal/internal/models"
	"github.com/yoockh/jobportal/internal/utils"
)

// RequireRole must run after JWTAuth.
func RequireRole(allowed ...models.UserRole) gin.HandlerFunc {
	allow := map[string]struct{}{}
	for _, a := range allowed {
		s := strings.TrimSpace(strings.ToLower(string(a)))
		if s != "" {
			allow[s] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		v, ok := c.Get("role")
		role, _ := v.(string)
		role = strings.ToLower(strings.TrimSpace(role))

		if !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:    utils.CodeForbidden,
				Message: "forbidden",
			})
			return
		}

		if _, ok := allow[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:    utils.CodeForbidden,
				Message: "only " + strings.Join(keys(allowed), " or ") + " accounts can do this",
			})
			return
		}

		c.Next()
	}
}

func keys(roles []models.UserRole) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}

func RequireJobSeeker() gin.HandlerFunc { return RequireRole(models.RoleJobSeeker) }

func RequireEmployer() gin.HandlerFunc { return RequireRole(models.RoleEmployer) }
