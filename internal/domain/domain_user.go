package domain

import "time"

// User 账户领域模型
// 本引擎不负责认证，只保留分享与配额所需的最小账户信息
type User struct {
	UID      int64
	Email    string
	Enabled  bool
	CanShare bool
	// MaxItemSize 单条目最大字节数，0 表示使用全局默认
	MaxItemSize int64
	// MaxTotalSize 账户总容量上限，0 表示使用全局默认
	MaxTotalSize int64
	// TotalSize 由容量统计任务维护的当前总字节数
	TotalSize int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserItem 用户-条目可见性关联
// 恰好只有一条关联的条目被该用户独占
type UserItem struct {
	ID        int64
	UID       int64
	ItemID    string
	CreatedAt time.Time
}

// ItemResource 笔记条目到资源逻辑 ID 的引用关系
type ItemResource struct {
	ID         int64
	ItemID     string
	ResourceID string
	CreatedAt  time.Time
}
