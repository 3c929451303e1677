package middleware

import (
	"github.com/gin-gonic/gin"

	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/i18n"
)

// Locale negotiates the response language from Accept-Language once per request.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Negotiate(c.GetHeader(constants.HeaderAcceptLanguage))
		c.Set(constants.ContextKeyLang, string(lang))
		c.Header("Content-Language", string(lang))
		c.Next()
	}
}
