package model

import "github.com/haierkeys/note-share-sync-service/pkg/timex"

const TableNameShareUser = "share_user"

// ShareUser mapped from table <share_user>
type ShareUser struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	ShareID   int64      `gorm:"column:share_id;not null;uniqueIndex:idx_share_user,priority:1" json:"shareId" form:"shareId"`
	UID       int64      `gorm:"column:uid;not null;uniqueIndex:idx_share_user,priority:2;index" json:"uid" form:"uid"`
	Status    int        `gorm:"column:status;not null;default:0" json:"status" form:"status"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName ShareUser's table name
func (*ShareUser) TableName() string {
	return TableNameShareUser
}
