package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// ContextTimeout bounds every request context so a stuck storage driver
// cannot pin a handler forever. A non-positive timeout disables the bound,
// used for endpoints that walk large subtrees.
// ContextTimeout 给请求上下文设置时限，存储驱动卡住时处理器不会被拖死。
// 超时配成非正数表示不设限，供遍历大子树的接口使用。
func ContextTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
