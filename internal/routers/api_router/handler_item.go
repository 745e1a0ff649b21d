package api_router

import (
	"strconv"

	"github.com/haierkeys/note-share-sync-service/internal/app"
	"github.com/haierkeys/note-share-sync-service/internal/dto"
	pkgapp "github.com/haierkeys/note-share-sync-service/pkg/app"
	"github.com/haierkeys/note-share-sync-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// ItemHandler 条目 API 路由处理器
type ItemHandler struct {
	*Handler
}

// NewItemHandler 创建 ItemHandler 实例
func NewItemHandler(app *app.App) *ItemHandler {
	return &ItemHandler{
		Handler: &Handler{App: app},
	}
}

// Save creates or updates a single item
// Save 创建或更新单个条目
func (h *ItemHandler) Save(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ItemSaveRequest{}

	if err := pkgapp.BindAndValid(c, params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	uid := pkgapp.GetUID(c)
	item, err := h.App.Service.Item.Save(c.Request.Context(), uid, params)
	if err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(item))
}

// Put processes a batch upload, one result per entry
// Put 处理批量上传，逐条返回结果
func (h *ItemHandler) Put(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ItemPutRequest{}

	if err := pkgapp.BindAndValid(c, params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	uid := pkgapp.GetUID(c)
	results := h.App.Service.Item.PutItems(c.Request.Context(), uid, params.Items)

	response.ToResponse(code.Success.WithData(results))
}

// Delete removes items by id
// Delete 按 ID 删除条目
func (h *ItemHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ItemDeleteRequest{}

	if err := pkgapp.BindAndValid(c, params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	uid := pkgapp.GetUID(c)
	if err := h.App.Service.Item.Delete(c.Request.Context(), uid, params.IDs); err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success)
}

// Get resolves an item by address within the caller's visible set
// Get 在调用者可见集合内按地址解析条目
func (h *ItemHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	address := c.Query("name")
	if address == "" {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("name is required"))
		return
	}

	uid := pkgapp.GetUID(c)
	item, err := h.App.Service.Item.LoadByName(c.Request.Context(), uid, address)
	if err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(item))
}

// GetByLogicalID resolves an item by logical id in the owner namespace
// GetByLogicalID 在所有者命名空间内按逻辑 ID 解析条目
func (h *ItemHandler) GetByLogicalID(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	logicalID := c.Query("logicalId")
	if logicalID == "" {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("logicalId is required"))
		return
	}

	uid := pkgapp.GetUID(c)
	item, err := h.App.Service.Item.LoadByLogicalID(c.Request.Context(), uid, logicalID)
	if err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(item))
}

// Children lists visible items under a path prefix
// Children 按路径前缀列出可见条目
func (h *ItemHandler) Children(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	address := c.Query("path")
	uid := pkgapp.GetUID(c)
	cursor := getCursor(c)
	limit := pkgapp.GetLimitWithConfig(c, pkgapp.PaginationConfig{
		DefaultPageSize: h.App.Config().App.DefaultPageSize,
		MaxPageSize:     h.App.Config().App.MaxPageSize,
	})

	page, err := h.App.Service.Item.Children(c.Request.Context(), uid, address, cursor, limit)
	if err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponseList(code.Success, page.Items, strconv.FormatInt(page.Cursor, 10), page.HasMore)
}
