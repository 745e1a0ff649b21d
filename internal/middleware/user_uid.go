package middleware

import (
	"github.com/haierkeys/note-share-sync-service/pkg/app"
	"github.com/haierkeys/note-share-sync-service/pkg/code"
	"github.com/haierkeys/note-share-sync-service/pkg/convert"

	"github.com/gin-gonic/gin"
)

// UserUID extracts the caller uid resolved by the upstream auth layer.
// Authentication itself is out of scope; the gateway passes a verified uid.
// UserUID 提取上游认证层解析出的调用方 UID。
// 认证本身不在引擎范围内，由网关传入已验证的 UID。
func UserUID() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)

		var raw string
		if s := c.GetHeader("X-User-ID"); s != "" {
			raw = s
		} else if s, exist := c.GetQuery("uid"); exist {
			raw = s
		}

		uid := convert.StrTo(raw).MustInt64()
		if uid <= 0 {
			response.ToResponse(code.ErrorForbidden.WithDetails("missing or invalid user identity"))
			c.Abort()
			return
		}

		app.SetUID(c, uid)
		c.Next()
	}
}
