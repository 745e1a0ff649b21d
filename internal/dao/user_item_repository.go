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

// userItemRepository 实现 domain.UserItemRepository 接口
type userItemRepository struct {
	dao *Dao
}

// NewUserItemRepository 创建 UserItemRepository 实例
func NewUserItemRepository(dao *Dao) domain.UserItemRepository {
	return &userItemRepository{dao: dao}
}

func (r *userItemRepository) toDomain(m *model.UserItem) *domain.UserItem {
	if m == nil {
		return nil
	}
	return convert.StructAssign(m, &domain.UserItem{}).(*domain.UserItem)
}

func (r *userItemRepository) db() *gorm.DB {
	return r.dao.db.Model(&model.UserItem{})
}

// Get 获取某用户对某条目的可见性关联
func (r *userItemRepository) Get(ctx context.Context, uid int64, itemID string) (*domain.UserItem, error) {
	var m model.UserItem
	err := r.db().WithContext(ctx).
		Where("uid = ? AND item_id = ?", uid, itemID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByItem 列出某条目的全部可见性关联
func (r *userItemRepository) ListByItem(ctx context.Context, itemID string) ([]*domain.UserItem, error) {
	var ms []*model.UserItem
	err := r.db().WithContext(ctx).
		Where("item_id = ?", itemID).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.UserItem, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// ListItemIDsByUser 列出某用户可见的全部条目 ID
func (r *userItemRepository) ListItemIDsByUser(ctx context.Context, uid int64) ([]string, error) {
	var ids []string
	err := r.db().WithContext(ctx).
		Where("uid = ?", uid).
		Pluck("item_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Add 建立可见性关联
func (r *userItemRepository) Add(ctx context.Context, uid int64, itemID string) error {
	m := &model.UserItem{
		UID:       uid,
		ItemID:    itemID,
		CreatedAt: timex.Now(),
	}
	return r.db().WithContext(ctx).Create(m).Error
}

// Remove 删除可见性关联
func (r *userItemRepository) Remove(ctx context.Context, uid int64, itemID string) error {
	return r.db().WithContext(ctx).
		Where("uid = ? AND item_id = ?", uid, itemID).
		Delete(&model.UserItem{}).Error
}

// RemoveByItem 删除某条目的全部可见性关联
func (r *userItemRepository) RemoveByItem(ctx context.Context, itemID string) error {
	return r.db().WithContext(ctx).
		Where("item_id = ?", itemID).
		Delete(&model.UserItem{}).Error
}

// CountByUser 统计某用户可见的条目数
func (r *userItemRepository) CountByUser(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := r.db().WithContext(ctx).
		Where("uid = ?", uid).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ExclusivelyOwnedItemIDs 列出仅对该用户可见的条目 ID
func (r *userItemRepository) ExclusivelyOwnedItemIDs(ctx context.Context, uid int64) ([]string, error) {
	ui := model.TableNameUserItem
	var ids []string
	err := r.dao.db.WithContext(ctx).
		Table(ui).
		Where("uid = ?", uid).
		Where("item_id NOT IN (?)", r.dao.db.Table(ui).
			Select("item_id").
			Where("uid <> ?", uid)).
		Pluck("item_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
