package handlers

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/config"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/utils"
)

// TeacherAuthMiddleware guards the teacher route group with a Casdoor bearer
// token. When Casdoor is not configured the middleware is a pass-through: the
// prototype deployment runs inside a classroom network without an IdP.
func TeacherAuthMiddleware(cfg *config.Config, logger utils.Logger) gin.HandlerFunc {
	if !cfg.TeacherAuthEnabled() {
		logger.Warn("Casdoor not configured, teacher routes are unprotected")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	casdoorsdk.InitConfig(
		cfg.CasdoorEndpoint,
		cfg.CasdoorClientID,
		cfg.CasdoorClientSecret,
		cfg.CasdoorCertificate,
		cfg.CasdoorOrganization,
		cfg.CasdoorApplication,
	)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing bearer token",
			})
			return
		}

		claims, err := casdoorsdk.ParseJwtToken(token)
		if err != nil {
			logger.Warn("Teacher token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid token",
			})
			return
		}

		c.Set("user_id", claims.User.Name)
		c.Next()
	}
}
