package domain

import "context"

// ItemRepository 条目仓储接口
type ItemRepository interface {
	// GetByID 根据 ID 获取条目
	GetByID(ctx context.Context, id string) (*Item, error)

	// GetByName 根据所有者与名称获取条目
	GetByName(ctx context.Context, ownerUID int64, name string) (*Item, error)

	// GetByLogicalID 根据所有者与逻辑 ID 获取条目
	GetByLogicalID(ctx context.Context, ownerUID int64, logicalID string) (*Item, error)

	// GetVisibleByName 在某用户的可见集合内按名称获取条目
	GetVisibleByName(ctx context.Context, viewerUID int64, name string) (*Item, error)

	// Create 创建条目
	Create(ctx context.Context, item *Item) error

	// Update 更新条目
	Update(ctx context.Context, item *Item) error

	// UpdateShareID 仅更新条目的分享归属，不触碰 updated_at
	UpdateShareID(ctx context.Context, id string, shareID int64) error

	// UpdateContentPlacement 仅更新内容的存放位置与内联副本，不触碰 updated_at
	UpdateContentPlacement(ctx context.Context, id string, storageType string, inline []byte) error

	// Delete 物理删除条目行
	Delete(ctx context.Context, id string) error

	// ListChildrenLogical 列出某文件夹（按逻辑 ID）的直接子条目
	ListChildrenLogical(ctx context.Context, ownerUID int64, parentLogicalID string) ([]*Item, error)

	// ListByShareID 列出当前归属于某分享的所有条目
	ListByShareID(ctx context.Context, shareID int64) ([]*Item, error)

	// ListVisibleChildren 按名称前缀列出某用户可见的子条目
	// 每行附带可见性关联的自增 ID 作为游标，严格递增，并发插入不会造成漏读
	// prefix 为空列出顶层条目；wildcard 为 true 时只列出下一层
	ListVisibleChildren(ctx context.Context, viewerUID int64, prefix string, wildcard bool, cursor int64, limit int) ([]*VisibleItem, error)

	// ListForMigration 列出内容尚未位于目标驱动且未超过大小上限的条目
	ListForMigration(ctx context.Context, targetStorage string, maxSize int64, afterID string, limit int) ([]*Item, error)

	// SumSizeByUser 统计某用户可见条目的内容字节总和
	SumSizeByUser(ctx context.Context, uid int64) (int64, error)
}

// UserItemRepository 用户-条目可见性仓储接口
type UserItemRepository interface {
	// Get 获取某用户对某条目的可见性关联
	Get(ctx context.Context, uid int64, itemID string) (*UserItem, error)

	// ListByItem 列出某条目的全部可见性关联
	ListByItem(ctx context.Context, itemID string) ([]*UserItem, error)

	// ListItemIDsByUser 列出某用户可见的全部条目 ID
	ListItemIDsByUser(ctx context.Context, uid int64) ([]string, error)

	// Add 建立可见性关联
	Add(ctx context.Context, uid int64, itemID string) error

	// Remove 删除可见性关联
	Remove(ctx context.Context, uid int64, itemID string) error

	// RemoveByItem 删除某条目的全部可见性关联
	RemoveByItem(ctx context.Context, itemID string) error

	// CountByUser 统计某用户可见的条目数
	CountByUser(ctx context.Context, uid int64) (int64, error)

	// ExclusivelyOwnedItemIDs 列出仅对该用户可见的条目 ID
	ExclusivelyOwnedItemIDs(ctx context.Context, uid int64) ([]string, error)
}

// ItemResourceRepository 笔记-资源引用仓储接口
type ItemResourceRepository interface {
	// ReplaceForItem 重建某笔记条目的资源引用集合
	ReplaceForItem(ctx context.Context, itemID string, resourceIDs []string) error

	// ListResourceIDsByItem 列出某笔记条目引用的资源逻辑 ID
	ListResourceIDsByItem(ctx context.Context, itemID string) ([]string, error)

	// DeleteByItem 删除某条目的全部资源引用
	DeleteByItem(ctx context.Context, itemID string) error
}

// ShareRepository 分享仓储接口
type ShareRepository interface {
	// Create 创建分享
	Create(ctx context.Context, share *Share) error

	// GetByID 根据 ID 获取分享
	GetByID(ctx context.Context, id int64) (*Share, error)

	// GetByRootLogicalID 根据根条目逻辑 ID 获取分享
	GetByRootLogicalID(ctx context.Context, ownerUID int64, rootLogicalID string) (*Share, error)

	// ListAll 列出全部分享
	ListAll(ctx context.Context) ([]*Share, error)

	// ListByOwner 列出某用户拥有的分享
	ListByOwner(ctx context.Context, ownerUID int64) ([]*Share, error)

	// Delete 删除分享
	Delete(ctx context.Context, id int64) error
}

// ShareUserRepository 分享接收者仓储接口
type ShareUserRepository interface {
	// Create 创建邀请
	Create(ctx context.Context, shareUser *ShareUser) error

	// GetByID 根据 ID 获取邀请
	GetByID(ctx context.Context, id int64) (*ShareUser, error)

	// GetByShareAndUser 获取某分享对某用户的邀请
	GetByShareAndUser(ctx context.Context, shareID int64, uid int64) (*ShareUser, error)

	// ListByShare 列出某分享的全部邀请
	ListByShare(ctx context.Context, shareID int64) ([]*ShareUser, error)

	// ListAcceptedByShare 列出某分享下已接受的邀请
	ListAcceptedByShare(ctx context.Context, shareID int64) ([]*ShareUser, error)

	// ListByUser 列出某用户收到的全部邀请
	ListByUser(ctx context.Context, uid int64) ([]*ShareUser, error)

	// UpdateStatus 更新邀请状态
	UpdateStatus(ctx context.Context, id int64, status ShareUserStatus) error

	// DeleteByShare 删除某分享的全部邀请
	DeleteByShare(ctx context.Context, shareID int64) error
}

// ChangeRepository 变更记录仓储接口
type ChangeRepository interface {
	// Create 追加变更记录，回填生成的游标
	Create(ctx context.Context, change *Change) error

	// ListByUserSince 按游标列出某用户的变更，游标严格递增
	ListByUserSince(ctx context.Context, uid int64, cursor int64, limit int) ([]*Change, error)

	// ListSince 按游标列出全部用户的变更，供后台任务消费
	ListSince(ctx context.Context, cursor int64, limit int) ([]*Change, error)
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据 UID 获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// UpdateTotalSize 更新用户的容量统计值
	UpdateTotalSize(ctx context.Context, uid int64, totalSize int64) error

	// GetAllUIDs 获取所有用户 UID
	GetAllUIDs(ctx context.Context) ([]int64, error)
}

// KeyValueRepository 键值仓储接口，存放后台任务的进度游标
type KeyValueRepository interface {
	// Get 读取键值，键不存在时返回空字符串
	Get(ctx context.Context, key string) (string, error)

	// Set 写入键值
	Set(ctx context.Context, key string, value string) error
}
