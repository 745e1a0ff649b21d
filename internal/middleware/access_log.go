package middleware

import (
	"time"

	"github.com/haierkeys/note-share-sync-service/global"
	"github.com/haierkeys/note-share-sync-service/pkg/app"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLog logs one line per request with the caller uid once resolved
// AccessLog 每个请求记一行访问日志，UID 解析出来后一并带上
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		if query != "" {
			path = path + "?" + query
		}

		startTime := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("url", path),
			zap.Int("status", c.Writer.Status()),
			zap.Int("body-size", c.Writer.Size()),
			zap.Duration("time-cost", time.Since(startTime)),
			zap.String("ip", c.ClientIP()),
		}
		// 变更拉取是高频轮询接口，带上游标便于排查推进情况
		if cursor, ok := c.GetQuery("cursor"); ok {
			fields = append(fields, zap.String("cursor", cursor))
		}
		if uid := app.GetUID(c); uid > 0 {
			fields = append(fields, zap.Int64("uid", uid))
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, zap.String("errors", errs))
		}

		global.Log().Info("access", fields...)
	}
}
