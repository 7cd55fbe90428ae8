package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/utils"
)

// cacheWriter tees the response body so it can be stored after the handler ran.
type cacheWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *cacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *cacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCacheKey is the store key for a request URI.
func PageCacheKey(uri string) string {
	return "page:" + uri
}

// CachePage serves GET responses from store for ttl, keyed by request URI.
// Writes elsewhere never invalidate an entry; it lives until expiry or an explicit Clear.
func CachePage(store utils.CacheStore, ttl time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet || ttl <= 0 {
			ctx.Next()
			return
		}
		key := PageCacheKey(ctx.Request.URL.RequestURI())
		if b, ok := store.Get(ctx.Request.Context(), key); ok {
			ctx.Data(http.StatusOK, "text/html; charset=utf-8", b)
			ctx.Abort()
			return
		}

		w := &cacheWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = w
		ctx.Next()

		if w.Status() == http.StatusOK {
			store.Set(ctx.Request.Context(), key, w.body.Bytes(), ttl)
		}
	}
}
