package domain

import "time"

// ShareType 分享类型
type ShareType int

const (
	// ShareTypeNote 单条笔记分享
	ShareTypeNote ShareType = 1
	// ShareTypeFolder 文件夹递归分享
	ShareTypeFolder ShareType = 2
	// ShareTypeApp 应用级分享
	ShareTypeApp ShareType = 3
)

// Share 分享领域模型
// FolderID / NoteID 二选一，存放被分享根条目的 LogicalID
type Share struct {
	ID        int64
	OwnerUID  int64
	Type      ShareType
	FolderID  string
	NoteID    string
	Recursive bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RootLogicalID 返回被分享根条目的逻辑 ID
func (s *Share) RootLogicalID() string {
	if s.Type == ShareTypeFolder {
		return s.FolderID
	}
	return s.NoteID
}

// ShareUserStatus 分享邀请状态
type ShareUserStatus int

const (
	// ShareUserStatusWaiting 等待接受
	ShareUserStatusWaiting ShareUserStatus = 0
	// ShareUserStatusAccepted 已接受
	ShareUserStatusAccepted ShareUserStatus = 1
	// ShareUserStatusRejected 已拒绝
	ShareUserStatusRejected ShareUserStatus = 2
)

// ShareUser 单个接收者对一个分享的邀请/接受状态
type ShareUser struct {
	ID        int64
	ShareID   int64
	UID       int64
	Status    ShareUserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
