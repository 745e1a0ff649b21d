package model

import "github.com/haierkeys/note-share-sync-service/pkg/timex"

const TableNameUserItem = "user_item"

// UserItem mapped from table <user_item>
type UserItem struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID       int64      `gorm:"column:uid;not null;uniqueIndex:idx_user_item_uid_item,priority:1" json:"uid" form:"uid"`
	ItemID    string     `gorm:"column:item_id;not null;uniqueIndex:idx_user_item_uid_item,priority:2;index" json:"itemId" form:"itemId"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName UserItem's table name
func (*UserItem) TableName() string {
	return TableNameUserItem
}
