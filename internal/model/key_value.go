package model

import "github.com/haierkeys/note-share-sync-service/pkg/timex"

const TableNameKeyValue = "key_value"

// KeyValue mapped from table <key_value>
type KeyValue struct {
	Key       string     `gorm:"column:key;primaryKey" json:"key" form:"key"`
	Value     string     `gorm:"column:value" json:"value" form:"value"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName KeyValue's table name
func (*KeyValue) TableName() string {
	return TableNameKeyValue
}
