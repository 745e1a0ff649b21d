package service

import (
	"context"

	"github.com/haierkeys/note-share-sync-service/internal/dao"
	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/internal/dto"
	"github.com/haierkeys/note-share-sync-service/pkg/code"

	"go.uber.org/zap"
)

// UserService defines the minimal account service interface
// UserService 定义最小账户服务接口
// 认证在引擎范围之外，这里只维护分享与配额所需的账户行
type UserService interface {
	// Register creates an account with the configured default quotas
	// Register 按配置的默认配额创建账户
	Register(ctx context.Context, req *dto.UserRegisterRequest) (*dto.UserDTO, error)

	// Get returns an account by uid
	// Get 按 UID 获取账户
	Get(ctx context.Context, uid int64) (*dto.UserDTO, error)
}

// userService implementation of UserService interface
// userService 实现 UserService 接口
type userService struct {
	dao    *dao.Dao
	logger *zap.Logger
	config *ServiceConfig
}

// NewUserService creates UserService instance
// NewUserService 创建 UserService 实例
func NewUserService(d *dao.Dao, logger *zap.Logger, config *ServiceConfig) UserService {
	return &userService{dao: d, logger: logger, config: config}
}

// Register creates an account with default quotas
// Register 按默认配额创建账户
func (s *userService) Register(ctx context.Context, req *dto.UserRegisterRequest) (*dto.UserDTO, error) {
	existing, err := s.dao.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if existing != nil {
		return dto.UserToDTO(existing), nil
	}

	user, err := s.dao.Users().Create(ctx, &domain.User{
		Email:        req.Email,
		Enabled:      true,
		CanShare:     s.config.User.CanShare,
		MaxItemSize:  s.config.User.MaxItemSize,
		MaxTotalSize: s.config.User.MaxTotalSize,
	})
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	s.logger.Info("user registered", zap.Int64("uid", user.UID), zap.String("email", user.Email))
	return dto.UserToDTO(user), nil
}

// Get returns an account by uid
// Get 按 UID 获取账户
func (s *userService) Get(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.dao.Users().GetByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if user == nil {
		return nil, code.ErrorUserNotFound
	}
	return dto.UserToDTO(user), nil
}
