package api_router

import (
	"strconv"

	"github.com/haierkeys/note-share-sync-service/internal/app"
	pkgapp "github.com/haierkeys/note-share-sync-service/pkg/app"
	"github.com/haierkeys/note-share-sync-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// ChangeHandler 变更流 API 路由处理器
type ChangeHandler struct {
	*Handler
}

// NewChangeHandler 创建 ChangeHandler 实例
func NewChangeHandler(app *app.App) *ChangeHandler {
	return &ChangeHandler{
		Handler: &Handler{App: app},
	}
}

// Delta returns the caller's changes after a cursor
// Delta 返回调用者在给定游标之后的变更
func (h *ChangeHandler) Delta(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	cursor := getCursor(c)
	limit := pkgapp.GetLimitWithConfig(c, pkgapp.PaginationConfig{
		DefaultPageSize: h.App.Config().App.DefaultPageSize,
		MaxPageSize:     h.App.Config().App.MaxPageSize,
	})

	page, err := h.App.Service.Change.Delta(c.Request.Context(), uid, cursor, limit)
	if err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponseList(code.Success, page.Items, strconv.FormatInt(page.Cursor, 10), page.HasMore)
}
