// Package domain 定义领域模型和接口
package domain

import (
	"encoding/json"
	"time"
)

// ItemType 结构化条目的逻辑类型
type ItemType int

const (
	// ItemTypeUnknown 非结构化条目（引擎不解析其内容）
	ItemTypeUnknown ItemType = 0
	// ItemTypeNote 笔记
	ItemTypeNote ItemType = 1
	// ItemTypeFolder 文件夹
	ItemTypeFolder ItemType = 2
	// ItemTypeResource 资源（附件）
	ItemTypeResource ItemType = 3
)

// Item 条目领域模型
// Name 在所有者命名空间内唯一；Content 可能内联存放，也可能在外部存储驱动中，
// ContentSize 始终等于逻辑内容的字节长度
type Item struct {
	ID             string
	OwnerUID       int64
	Name           string
	MimeType       string
	Content        []byte
	ContentSize    int64
	ContentStorage string

	// 以下为层级/分享相关的领域字段，仅结构化条目填写
	LogicalID   string
	LogicalType ItemType
	ParentID    string
	ShareID     int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsStructured 判断条目是否携带层级领域字段
func (i *Item) IsStructured() bool {
	return i.LogicalType != ItemTypeUnknown
}

// VisibleItem 可见条目及其在可见性关联上的分页游标
type VisibleItem struct {
	*Item
	Cursor int64
}

// ItemSnapshot 条目写前快照，随 Update/Delete 变更记录保存
type ItemSnapshot struct {
	Name        string   `json:"name"`
	ParentID    string   `json:"parent_id"`
	ShareID     int64    `json:"share_id"`
	ResourceIDs []string `json:"resource_ids,omitempty"`
}

// EncodeSnapshot 将快照序列化为 JSON 字符串
func EncodeSnapshot(s *ItemSnapshot) string {
	if s == nil {
		return ""
	}
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(b)
}

// DecodeSnapshot 反序列化快照，内容无效时返回 nil
func DecodeSnapshot(raw string) *ItemSnapshot {
	if raw == "" {
		return nil
	}
	var s ItemSnapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil
	}
	return &s
}
