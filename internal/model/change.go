package model

import "github.com/haierkeys/note-share-sync-service/pkg/timex"

const TableNameChange = "change"

// Change mapped from table <change>
type Change struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	ItemID       string     `gorm:"column:item_id;not null;index" json:"itemId" form:"itemId"`
	ItemName     string     `gorm:"column:item_name;not null" json:"itemName" form:"itemName"`
	Type         int        `gorm:"column:type;not null" json:"type" form:"type"`
	PreviousItem string     `gorm:"column:previous_item" json:"previousItem" form:"previousItem"`
	UID          int64      `gorm:"column:uid;not null;index:idx_change_uid_id,priority:1" json:"uid" form:"uid"`
	CreatedAt    timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName Change's table name
func (*Change) TableName() string {
	return TableNameChange
}
