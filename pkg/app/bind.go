package app

import (
	"github.com/gin-gonic/gin"
)

// uid 在请求上下文中的键，由认证中间件写入
const ContextUIDKey = "uid"

// BindAndValid 绑定并校验请求参数
func BindAndValid(c *gin.Context, v interface{}) error {
	return c.ShouldBind(v)
}

// GetUID 取出认证中间件写入的用户 UID，未认证时为 0
func GetUID(c *gin.Context) int64 {
	if v, ok := c.Get(ContextUIDKey); ok {
		if uid, ok := v.(int64); ok {
			return uid
		}
	}
	return 0
}

// SetUID 写入用户 UID
func SetUID(c *gin.Context, uid int64) {
	c.Set(ContextUIDKey, uid)
}
