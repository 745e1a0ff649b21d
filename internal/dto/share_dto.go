package dto

import (
	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/pkg/timex"
)

// ShareDTO Share data transfer object
// ShareDTO 分享数据传输对象
type ShareDTO struct {
	ID        int64      `json:"id"`
	OwnerUID  int64      `json:"ownerUid"`
	Type      int        `json:"type"`
	FolderID  string     `json:"folderId,omitempty"`
	NoteID    string     `json:"noteId,omitempty"`
	Recursive bool       `json:"recursive"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// ShareToDTO 将分享领域模型转换为 DTO
func ShareToDTO(s *domain.Share) *ShareDTO {
	if s == nil {
		return nil
	}
	return &ShareDTO{
		ID:        s.ID,
		OwnerUID:  s.OwnerUID,
		Type:      int(s.Type),
		FolderID:  s.FolderID,
		NoteID:    s.NoteID,
		Recursive: s.Recursive,
		CreatedAt: timex.Time(s.CreatedAt),
		UpdatedAt: timex.Time(s.UpdatedAt),
	}
}

// ShareUserDTO ShareUser data transfer object
// ShareUserDTO 分享邀请数据传输对象
type ShareUserDTO struct {
	ID        int64      `json:"id"`
	ShareID   int64      `json:"shareId"`
	UID       int64      `json:"uid"`
	Status    int        `json:"status"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// ShareUserToDTO 将分享邀请领域模型转换为 DTO
func ShareUserToDTO(su *domain.ShareUser) *ShareUserDTO {
	if su == nil {
		return nil
	}
	return &ShareUserDTO{
		ID:        su.ID,
		ShareID:   su.ShareID,
		UID:       su.UID,
		Status:    int(su.Status),
		CreatedAt: timex.Time(su.CreatedAt),
		UpdatedAt: timex.Time(su.UpdatedAt),
	}
}

// ShareCreateRequest Request parameters for creating a share
// 创建分享的请求参数
type ShareCreateRequest struct {
	Type          int    `json:"type" form:"type" binding:"required"`
	RootLogicalID string `json:"rootLogicalId" form:"rootLogicalId" binding:"required"`
}

// ShareInviteRequest Request parameters for inviting a recipient
// 邀请接收者的请求参数
type ShareInviteRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}

// ShareRespondRequest Request parameters for accepting or rejecting an invitation
// 接受或拒绝邀请的请求参数
type ShareRespondRequest struct {
	Status int `json:"status" form:"status" binding:"required"`
}
