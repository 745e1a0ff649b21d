package model

import "github.com/haierkeys/note-share-sync-service/pkg/timex"

const TableNameItem = "item"

// Item mapped from table <item>
type Item struct {
	ID             string     `gorm:"column:id;primaryKey" json:"id" form:"id"`
	OwnerUID       int64      `gorm:"column:owner_uid;not null;uniqueIndex:idx_item_owner_name,priority:1;index:idx_item_owner_logical,priority:1" json:"ownerUid" form:"ownerUid"`
	Name           string     `gorm:"column:name;not null;uniqueIndex:idx_item_owner_name,priority:2" json:"name" form:"name"`
	MimeType       string     `gorm:"column:mime_type" json:"mimeType" form:"mimeType"`
	Content        []byte     `gorm:"column:content" json:"-" form:"-"`
	ContentSize    int64      `gorm:"column:content_size;not null;default:0" json:"contentSize" form:"contentSize"`
	ContentStorage string     `gorm:"column:content_storage;not null;default:database" json:"contentStorage" form:"contentStorage"`
	LogicalID      string     `gorm:"column:logical_id;index:idx_item_owner_logical,priority:2" json:"logicalId" form:"logicalId"`
	LogicalType    int        `gorm:"column:logical_type;not null;default:0" json:"logicalType" form:"logicalType"`
	ParentID       string     `gorm:"column:parent_id;index" json:"parentId" form:"parentId"`
	ShareID        int64      `gorm:"column:share_id;not null;default:0;index" json:"shareId" form:"shareId"`
	CreatedAt      timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt      timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Item's table name
func (*Item) TableName() string {
	return TableNameItem
}
