package dao

import (
	"context"

	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/internal/model"
	"github.com/haierkeys/note-share-sync-service/pkg/convert"
	"github.com/haierkeys/note-share-sync-service/pkg/timex"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	user := convert.StructAssign(m, &domain.User{}).(*domain.User)
	// 开关字段在库里是 0/1，无法按类型自动转换
	user.Enabled = m.Enabled != 0
	user.CanShare = m.CanShare != 0
	return user
}

func (r *userRepository) db() *gorm.DB {
	return r.dao.db.Model(&model.User{})
}

// GetByUID 根据 UID 获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	err := r.db().WithContext(ctx).Where("uid = ?", uid).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.db().WithContext(ctx).Where("email = ?", email).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := convert.StructAssign(user, &model.User{}).(*model.User)
	m.UID = 0
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()
	if user.Enabled {
		m.Enabled = 1
	}
	if user.CanShare {
		m.CanShare = 1
	}
	if err := r.db().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// UpdateTotalSize 更新用户的容量统计值
func (r *userRepository) UpdateTotalSize(ctx context.Context, uid int64, totalSize int64) error {
	return r.db().WithContext(ctx).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"total_size": totalSize,
			"updated_at": timex.Now(),
		}).Error
}

// GetAllUIDs 获取所有用户 UID
func (r *userRepository) GetAllUIDs(ctx context.Context) ([]int64, error) {
	var uids []int64
	err := r.db().WithContext(ctx).
		Order("uid ASC").
		Pluck("uid", &uids).Error
	if err != nil {
		return nil, err
	}
	return uids, nil
}
