package model

import "github.com/haierkeys/note-share-sync-service/pkg/timex"

const TableNameItemResource = "item_resource"

// ItemResource mapped from table <item_resource>
type ItemResource struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	ItemID     string     `gorm:"column:item_id;not null;uniqueIndex:idx_item_resource,priority:1" json:"itemId" form:"itemId"`
	ResourceID string     `gorm:"column:resource_id;not null;uniqueIndex:idx_item_resource,priority:2;index" json:"resourceId" form:"resourceId"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName ItemResource's table name
func (*ItemResource) TableName() string {
	return TableNameItemResource
}
