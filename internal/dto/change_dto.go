package dto

import (
	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/pkg/timex"
)

// ChangeDTO Change feed entry
// ChangeDTO 变更记录数据传输对象
type ChangeDTO struct {
	Cursor      int64      `json:"cursor"`
	ItemID      string     `json:"itemId"`
	ItemName    string     `json:"itemName"`
	Type        int        `json:"type"`
	UpdatedTime timex.Time `json:"updatedTime"`
}

// ChangeToDTO 将变更领域模型转换为 DTO
func ChangeToDTO(c *domain.Change) *ChangeDTO {
	if c == nil {
		return nil
	}
	return &ChangeDTO{
		Cursor:      c.ID,
		ItemID:      c.ItemID,
		ItemName:    c.ItemName,
		Type:        int(c.Type),
		UpdatedTime: timex.Time(c.CreatedAt),
	}
}

// DeltaPageDTO Cursor-paginated delta feed page
// 游标分页的增量变更页
type DeltaPageDTO struct {
	Items   []*ChangeDTO `json:"items"`
	Cursor  int64        `json:"cursor"`
	HasMore bool         `json:"hasMore"`
}
