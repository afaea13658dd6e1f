package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Response meta rides on the gin context so handlers can annotate the
// envelope without threading a struct through every call.
const metaContextKey = "response_meta"

// WithResponseMeta seeds the per-request metadata map and stamps the request
// duration once the handler chain returns. Handlers that set their own
// processing_time_ms keep it.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(metaContextKey, map[string]interface{}{})
		c.Next()
		meta := metaFrom(c)
		if _, ok := meta["processing_time_ms"]; !ok {
			meta["processing_time_ms"] = time.Since(start).Milliseconds()
		}
	}
}

// SetCacheHit marks whether the response was served from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	metaFrom(c)["cache_hit"] = hit
}

// ExtractMeta returns the request's metadata map, or nil when the middleware
// never ran.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if value, exists := c.Get(metaContextKey); exists {
		if meta, ok := value.(map[string]interface{}); ok {
			return meta
		}
	}
	return nil
}

func metaFrom(c *gin.Context) map[string]interface{} {
	if meta := ExtractMeta(c); meta != nil {
		return meta
	}
	meta := make(map[string]interface{})
	if c != nil {
		c.Set(metaContextKey, meta)
	}
	return meta
}
