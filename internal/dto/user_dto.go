package dto

import (
	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/pkg/timex"
)

// UserDTO User data transfer object
// UserDTO 用户数据传输对象
type UserDTO struct {
	UID          int64      `json:"uid"`
	Email        string     `json:"email"`
	Enabled      bool       `json:"enabled"`
	CanShare     bool       `json:"canShare"`
	MaxItemSize  int64      `json:"maxItemSize"`
	MaxTotalSize int64      `json:"maxTotalSize"`
	TotalSize    int64      `json:"totalSize"`
	CreatedAt    timex.Time `json:"createdAt"`
}

// UserToDTO 将用户领域模型转换为 DTO
func UserToDTO(u *domain.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		UID:          u.UID,
		Email:        u.Email,
		Enabled:      u.Enabled,
		CanShare:     u.CanShare,
		MaxItemSize:  u.MaxItemSize,
		MaxTotalSize: u.MaxTotalSize,
		TotalSize:    u.TotalSize,
		CreatedAt:    timex.Time(u.CreatedAt),
	}
}

// UserRegisterRequest Request parameters for creating an account
// 创建账户的请求参数
type UserRegisterRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}
