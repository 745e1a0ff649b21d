package dao

import (
	"context"
	"time"

	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/internal/model"
	"github.com/haierkeys/note-share-sync-service/pkg/convert"
	"github.com/haierkeys/note-share-sync-service/pkg/timex"

	"gorm.io/gorm"
)

// changeRepository 实现 domain.ChangeRepository 接口
type changeRepository struct {
	dao *Dao
}

// NewChangeRepository 创建 ChangeRepository 实例
func NewChangeRepository(dao *Dao) domain.ChangeRepository {
	return &changeRepository{dao: dao}
}

func (r *changeRepository) toDomain(m *model.Change) *domain.Change {
	if m == nil {
		return nil
	}
	return convert.StructAssign(m, &domain.Change{}).(*domain.Change)
}

func (r *changeRepository) db() *gorm.DB {
	return r.dao.db.Model(&model.Change{})
}

// Create 追加变更记录，回填生成的游标
func (r *changeRepository) Create(ctx context.Context, change *domain.Change) error {
	m := convert.StructAssign(change, &model.Change{}).(*model.Change)
	m.ID = 0
	m.CreatedAt = timex.Now()
	if err := r.db().WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	change.ID = m.ID
	change.CreatedAt = time.Time(m.CreatedAt)
	return nil
}

// ListByUserSince 按游标列出某用户的变更，游标严格递增
func (r *changeRepository) ListByUserSince(ctx context.Context, uid int64, cursor int64, limit int) ([]*domain.Change, error) {
	var ms []*model.Change
	err := r.db().WithContext(ctx).
		Where("uid = ? AND id > ?", uid, cursor).
		Order("id ASC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Change, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// ListSince 按游标列出全部用户的变更，供后台任务消费
func (r *changeRepository) ListSince(ctx context.Context, cursor int64, limit int) ([]*domain.Change, error) {
	var ms []*model.Change
	err := r.db().WithContext(ctx).
		Where("id > ?", cursor).
		Order("id ASC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Change, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}
