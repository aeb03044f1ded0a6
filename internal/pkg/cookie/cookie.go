package cookie

import (
	"github.com/gin-gonic/gin"
)

// The external auth service sets this cookie for browser sessions; this
// module only ever reads it. Service-to-service callers use the
// Authorization header instead.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
