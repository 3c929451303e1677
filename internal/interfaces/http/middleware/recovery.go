package middleware

import (
	stderrors "errors"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
	"labmanager/internal/shared/utils"
)

// redactedHeaders never reach the panic log.
var redactedHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
}

// Recovery logs panics with their stack and answers with a generic 500. A
// client that hung up gets no response at all.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		fields := []any{
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", c.GetString(constants.ContextKeyRequestID),
		}

		if isBrokenConnection(recovered) {
			log.Warnw("client connection lost", append(fields, "error", recovered)...)
			c.Abort()
			return
		}

		log.Errorw("panic recovered", append(fields,
			"headers", safeHeaders(c.Request.Header),
			"panic", recovered,
			"stack", string(debug.Stack()))...)

		utils.ErrorResponse(c, http.StatusInternalServerError, errors.ErrorTypeInternal)
		c.Abort()
	})
}

func isBrokenConnection(recovered any) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	return stderrors.Is(err, syscall.EPIPE) || stderrors.Is(err, syscall.ECONNRESET)
}

func safeHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		if redactedHeaders[k] {
			out[k] = "*"
			continue
		}
		out[k] = h.Get(k)
	}
	return out
}
