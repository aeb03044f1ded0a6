package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"

	"rategrid/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// SignatureHeader carries the lowercase hex HMAC-SHA256 of the raw request
// body, keyed by the channel's shared secret.
const SignatureHeader = "X-Rategrid-Signature"

// WebhookSignature authenticates channel webhooks. The :channel path param
// selects the shared secret; channels without a configured secret are
// rejected outright. The body is restored after reading so handlers can
// still bind it.
func WebhookSignature(cfg config.WebhookConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		channel := c.Param("channel")
		secret, ok := cfg.Secrets[channel]
		if !ok || secret == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Unknown webhook channel",
			})
			c.Abort()
			return
		}

		signature := c.GetHeader(SignatureHeader)
		if signature == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Signature required",
			})
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unreadable request body",
			})
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !verifySignature(body, signature, secret) {
			slog.Warn("Webhook signature mismatch", "channel", channel)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid signature",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func verifySignature(body []byte, signature, secret string) bool {
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(provided, mac.Sum(nil))
}
