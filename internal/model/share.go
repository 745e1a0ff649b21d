package model

import "github.com/haierkeys/note-share-sync-service/pkg/timex"

const TableNameShare = "share"

// Share mapped from table <share>
type Share struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	OwnerUID  int64      `gorm:"column:owner_uid;not null;index" json:"ownerUid" form:"ownerUid"`
	Type      int        `gorm:"column:type;not null" json:"type" form:"type"`
	FolderID  string     `gorm:"column:folder_id;index" json:"folderId" form:"folderId"`
	NoteID    string     `gorm:"column:note_id;index" json:"noteId" form:"noteId"`
	Recursive int        `gorm:"column:recursive;not null;default:0" json:"recursive" form:"recursive"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Share's table name
func (*Share) TableName() string {
	return TableNameShare
}
