// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"time"

	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/pkg/timex"
)

// ItemDTO Item data transfer object
// ItemDTO 条目数据传输对象
type ItemDTO struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	MimeType       string     `json:"mimeType,omitempty"`
	Content        []byte     `json:"content,omitempty"`
	ContentSize    int64      `json:"contentSize"`
	ContentStorage string     `json:"-"`
	LogicalID      string     `json:"logicalId,omitempty"`
	LogicalType    int        `json:"logicalType,omitempty"`
	ParentID       string     `json:"parentId,omitempty"`
	ShareID        int64      `json:"shareId,omitempty"`
	CreatedAt      timex.Time `json:"createdAt"`
	UpdatedAt      timex.Time `json:"updatedAt"`
}

// ItemToDTO 将条目领域模型转换为 DTO
func ItemToDTO(item *domain.Item) *ItemDTO {
	if item == nil {
		return nil
	}
	return &ItemDTO{
		ID:             item.ID,
		Name:           item.Name,
		MimeType:       item.MimeType,
		Content:        item.Content,
		ContentSize:    item.ContentSize,
		ContentStorage: item.ContentStorage,
		LogicalID:      item.LogicalID,
		LogicalType:    int(item.LogicalType),
		ParentID:       item.ParentID,
		ShareID:        item.ShareID,
		CreatedAt:      timex.Time(item.CreatedAt),
		UpdatedAt:      timex.Time(item.UpdatedAt),
	}
}

// ItemSaveRequest Request parameters for creating or modifying an item
// 用于创建或修改条目的请求参数
type ItemSaveRequest struct {
	ID          string   `json:"id" form:"id"`
	Name        string   `json:"name" form:"name" binding:"required"`
	MimeType    string   `json:"mimeType" form:"mimeType"`
	Content     []byte   `json:"content" form:"content"`
	LogicalID   string   `json:"logicalId" form:"logicalId"`
	LogicalType int      `json:"logicalType" form:"logicalType"`
	ParentID    string   `json:"parentId" form:"parentId"`
	ShareID     int64    `json:"shareId" form:"shareId"`
	ResourceIDs []string `json:"resourceIds" form:"resourceIds"`
}

// ItemPutEntry One entry of a batch upload
// 批量上传中的单个条目
type ItemPutEntry struct {
	Name        string   `json:"name" binding:"required"`
	MimeType    string   `json:"mimeType"`
	Content     []byte   `json:"content"`
	LogicalID   string   `json:"logicalId"`
	LogicalType int      `json:"logicalType"`
	ParentID    string   `json:"parentId"`
	ShareID     int64    `json:"shareId"`
	ResourceIDs []string `json:"resourceIds"`
}

// ItemPutRequest Batch upload request
// 批量上传请求
type ItemPutRequest struct {
	Items []*ItemPutEntry `json:"items" binding:"required"`
}

// ItemPutResult Per-entry result of a batch upload
// 批量上传中单个条目的处理结果
type ItemPutResult struct {
	Name  string   `json:"name"`
	Item  *ItemDTO `json:"item,omitempty"`
	Error string   `json:"error,omitempty"`
	Code  int      `json:"code,omitempty"`
}

// ItemDeleteRequest Request parameters for deleting items
// 删除条目的请求参数
type ItemDeleteRequest struct {
	IDs []string `json:"ids" form:"ids" binding:"required"`
}

// ItemPageDTO Cursor-paginated children listing
// 游标分页的子条目清单
type ItemPageDTO struct {
	Items   []*ItemDTO `json:"items"`
	Cursor  int64      `json:"cursor"`
	HasMore bool       `json:"hasMore"`
}

// UpdatedTime 条目更新时间的 Unix 毫秒时间戳
func (d *ItemDTO) UpdatedTime() int64 {
	return time.Time(d.UpdatedAt).UnixMilli()
}
