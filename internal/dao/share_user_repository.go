package dao

import (
	"context"
	"time"

	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/internal/model"
	"github.com/haierkeys/note-share-sync-service/pkg/convert"
	"github.com/haierkeys/note-share-sync-service/pkg/timex"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// shareUserRepository 实现 domain.ShareUserRepository 接口
type shareUserRepository struct {
	dao *Dao
}

// NewShareUserRepository 创建 ShareUserRepository 实例
func NewShareUserRepository(dao *Dao) domain.ShareUserRepository {
	return &shareUserRepository{dao: dao}
}

func (r *shareUserRepository) toDomain(m *model.ShareUser) *domain.ShareUser {
	if m == nil {
		return nil
	}
	return convert.StructAssign(m, &domain.ShareUser{}).(*domain.ShareUser)
}

func (r *shareUserRepository) db() *gorm.DB {
	return r.dao.db.Model(&model.ShareUser{})
}

// Create 创建邀请
func (r *shareUserRepository) Create(ctx context.Context, shareUser *domain.ShareUser) error {
	m := convert.StructAssign(shareUser, &model.ShareUser{}).(*model.ShareUser)
	m.ID = 0
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()
	if err := r.db().WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	shareUser.ID = m.ID
	shareUser.CreatedAt = time.Time(m.CreatedAt)
	shareUser.UpdatedAt = time.Time(m.UpdatedAt)
	return nil
}

// GetByID 根据 ID 获取邀请
func (r *shareUserRepository) GetByID(ctx context.Context, id int64) (*domain.ShareUser, error) {
	var m model.ShareUser
	err := r.db().WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByShareAndUser 获取某分享对某用户的邀请
func (r *shareUserRepository) GetByShareAndUser(ctx context.Context, shareID int64, uid int64) (*domain.ShareUser, error) {
	var m model.ShareUser
	err := r.db().WithContext(ctx).
		Where("share_id = ? AND uid = ?", shareID, uid).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByShare 列出某分享的全部邀请
func (r *shareUserRepository) ListByShare(ctx context.Context, shareID int64) ([]*domain.ShareUser, error) {
	var ms []*model.ShareUser
	err := r.db().WithContext(ctx).
		Where("share_id = ?", shareID).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.ShareUser, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// ListAcceptedByShare 列出某分享下已接受的邀请
func (r *shareUserRepository) ListAcceptedByShare(ctx context.Context, shareID int64) ([]*domain.ShareUser, error) {
	var ms []*model.ShareUser
	err := r.db().WithContext(ctx).
		Where("share_id = ? AND status = ?", shareID, int(domain.ShareUserStatusAccepted)).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.ShareUser, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// ListByUser 列出某用户收到的全部邀请
func (r *shareUserRepository) ListByUser(ctx context.Context, uid int64) ([]*domain.ShareUser, error) {
	var ms []*model.ShareUser
	err := r.db().WithContext(ctx).
		Where("uid = ?", uid).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.ShareUser, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// UpdateStatus 更新邀请状态
func (r *shareUserRepository) UpdateStatus(ctx context.Context, id int64, status domain.ShareUserStatus) error {
	return r.db().WithContext(ctx).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     int(status),
			"updated_at": timex.Now(),
		}).Error
}

// DeleteByShare 删除某分享的全部邀请
func (r *shareUserRepository) DeleteByShare(ctx context.Context, shareID int64) error {
	return r.db().WithContext(ctx).
		Where("share_id = ?", shareID).
		Delete(&model.ShareUser{}).Error
}
