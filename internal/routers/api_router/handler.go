// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"github.com/haierkeys/note-share-sync-service/internal/app"
	pkgapp "github.com/haierkeys/note-share-sync-service/pkg/app"
	"github.com/haierkeys/note-share-sync-service/pkg/code"
	"github.com/haierkeys/note-share-sync-service/pkg/convert"

	"github.com/gin-gonic/gin"
)

// Handler 路由处理器基类，持有应用容器
type Handler struct {
	App *app.App
}

// toErrResponse 将服务层错误输出为统一响应
func toErrResponse(response *pkgapp.Response, err error) {
	if cObj, ok := err.(*code.Code); ok {
		response.ToResponse(cObj)
		return
	}
	response.ToResponse(code.ErrorServerInternal.WithDetails(err.Error()))
}

// getCursor 取请求中的游标参数，空表示从头开始
func getCursor(c *gin.Context) int64 {
	return convert.StrTo(pkgapp.GetCursor(c)).MustInt64()
}
