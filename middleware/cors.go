package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/aaauuugggghhhh/unihub-event-management/pkg/appenv"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware configures CORS headers.
//   - In non-production environments, any origin is allowed for convenience.
//   - In production, the incoming Origin is reflected only when present in the
//     comma-separated ALLOWED_ORIGINS env var. ALLOW_CREDENTIALS=true adds the
//     credentials header.
func CORSMiddleware() gin.HandlerFunc {
	isProd := appenv.IsProduction() || gin.Mode() == gin.ReleaseMode

	var allowedOrigins map[string]struct{}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		allowedOrigins = make(map[string]struct{})
		for _, o := range strings.Split(raw, ",") {
			if origin := strings.TrimSpace(o); origin != "" {
				allowedOrigins[origin] = struct{}{}
			}
		}
	}

	allowCredentials := strings.EqualFold(os.Getenv("ALLOW_CREDENTIALS"), "true")
	allowedMethods := "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	allowedHeaders := "Origin, Content-Type, Authorization"

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Responses vary by Origin; advise caches accordingly.
		c.Header("Vary", "Origin")

		if !isProd {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", allowedMethods)
			c.Header("Access-Control-Allow-Headers", allowedHeaders)
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
			return
		}

		if origin != "" && allowedOrigins != nil {
			if _, ok := allowedOrigins[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Methods", allowedMethods)
				c.Header("Access-Control-Allow-Headers", allowedHeaders)
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
			}
		}

		if c.Request.Method == http.MethodOptions {
			// Preflight: return 204. If the origin is not allowed the headers
			// above are absent and the browser blocks the request.
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
