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

// shareRepository 实现 domain.ShareRepository 接口
type shareRepository struct {
	dao *Dao
}

// NewShareRepository 创建 ShareRepository 实例
func NewShareRepository(dao *Dao) domain.ShareRepository {
	return &shareRepository{dao: dao}
}

func (r *shareRepository) toDomain(m *model.Share) *domain.Share {
	if m == nil {
		return nil
	}
	share := convert.StructAssign(m, &domain.Share{}).(*domain.Share)
	// 开关字段在库里是 0/1，无法按类型自动转换
	share.Recursive = m.Recursive != 0
	return share
}

func (r *shareRepository) db() *gorm.DB {
	return r.dao.db.Model(&model.Share{})
}

// Create 创建分享
func (r *shareRepository) Create(ctx context.Context, share *domain.Share) error {
	m := convert.StructAssign(share, &model.Share{}).(*model.Share)
	m.ID = 0
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()
	if share.Recursive {
		m.Recursive = 1
	}
	if err := r.db().WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	share.ID = m.ID
	share.CreatedAt = time.Time(m.CreatedAt)
	share.UpdatedAt = time.Time(m.UpdatedAt)
	return nil
}

// GetByID 根据 ID 获取分享
func (r *shareRepository) GetByID(ctx context.Context, id int64) (*domain.Share, error) {
	var m model.Share
	err := r.db().WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByRootLogicalID 根据根条目逻辑 ID 获取分享
func (r *shareRepository) GetByRootLogicalID(ctx context.Context, ownerUID int64, rootLogicalID string) (*domain.Share, error) {
	var m model.Share
	err := r.db().WithContext(ctx).
		Where("owner_uid = ?", ownerUID).
		Where("folder_id = ? OR note_id = ?", rootLogicalID, rootLogicalID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListAll 列出全部分享
func (r *shareRepository) ListAll(ctx context.Context) ([]*domain.Share, error) {
	var ms []*model.Share
	if err := r.db().WithContext(ctx).Find(&ms).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Share, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// ListByOwner 列出某用户拥有的分享
func (r *shareRepository) ListByOwner(ctx context.Context, ownerUID int64) ([]*domain.Share, error) {
	var ms []*model.Share
	err := r.db().WithContext(ctx).
		Where("owner_uid = ?", ownerUID).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Share, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// Delete 删除分享
func (r *shareRepository) Delete(ctx context.Context, id int64) error {
	return r.db().WithContext(ctx).Where("id = ?", id).Delete(&model.Share{}).Error
}
