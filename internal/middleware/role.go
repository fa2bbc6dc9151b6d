package middleware

import (
	"net/http"

	domainUser "skillconnect/internal/domain/user"
	"skillconnect/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware admits only the listed user types. The type comes from the
// token, so a user who just registered as a worker must use the reissued token.
func RoleMiddleware(allowed ...domainUser.Type) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(UserTypeKey)
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "User type not found in context")
			c.Abort()
			return
		}

		userType, _ := v.(string)
		for _, t := range allowed {
			if userType == string(t) {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func WorkerOnly() gin.HandlerFunc {
	return RoleMiddleware(domainUser.TypeWorker)
}

func CustomerOnly() gin.HandlerFunc {
	return RoleMiddleware(domainUser.TypeCustomer)
}
