package domain

import "time"

// ChangeType 变更类型
type ChangeType int

const (
	// ChangeTypeCreate 条目对某用户变为可见
	ChangeTypeCreate ChangeType = 1
	// ChangeTypeUpdate 条目内容或元数据被编辑
	ChangeTypeUpdate ChangeType = 2
	// ChangeTypeDelete 条目对某用户不再可见
	ChangeTypeDelete ChangeType = 3
)

// Change 变更记录
// ID 即游标：全局单调递增，可据此断点续传，不要求连续。
// 每条记录只面向 UID 对应的用户：同一次条目编辑可以产生零条、一条或多条记录
// （每个当前可见的用户一条）
type Change struct {
	ID           int64
	ItemID       string
	ItemName     string
	Type         ChangeType
	PreviousItem string
	UID          int64
	CreatedAt    time.Time
}
