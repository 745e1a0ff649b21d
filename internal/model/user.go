package model

import "github.com/haierkeys/note-share-sync-service/pkg/timex"

const TableNameUser = "user"

// User mapped from table <user>
type User struct {
	UID          int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid" form:"uid"`
	Email        string     `gorm:"column:email;not null;uniqueIndex" json:"email" form:"email"`
	Enabled      int        `gorm:"column:enabled;not null;default:1" json:"enabled" form:"enabled"`
	CanShare     int        `gorm:"column:can_share;not null;default:1" json:"canShare" form:"canShare"`
	MaxItemSize  int64      `gorm:"column:max_item_size;not null;default:0" json:"maxItemSize" form:"maxItemSize"`
	MaxTotalSize int64      `gorm:"column:max_total_size;not null;default:0" json:"maxTotalSize" form:"maxTotalSize"`
	TotalSize    int64      `gorm:"column:total_size;not null;default:0" json:"totalSize" form:"totalSize"`
	CreatedAt    timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt    timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName User's table name
func (*User) TableName() string {
	return TableNameUser
}
