package dao

import (
	"context"

	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/internal/model"
	"github.com/haierkeys/note-share-sync-service/pkg/timex"

	"gorm.io/gorm"
)

// itemResourceRepository 实现 domain.ItemResourceRepository 接口
type itemResourceRepository struct {
	dao *Dao
}

// NewItemResourceRepository 创建 ItemResourceRepository 实例
func NewItemResourceRepository(dao *Dao) domain.ItemResourceRepository {
	return &itemResourceRepository{dao: dao}
}

func (r *itemResourceRepository) db() *gorm.DB {
	return r.dao.db.Model(&model.ItemResource{})
}

// ReplaceForItem 重建某笔记条目的资源引用集合
func (r *itemResourceRepository) ReplaceForItem(ctx context.Context, itemID string, resourceIDs []string) error {
	return r.dao.Transaction(func(txDao *Dao) error {
		tx := txDao.db.WithContext(ctx)
		if err := tx.Where("item_id = ?", itemID).Delete(&model.ItemResource{}).Error; err != nil {
			return err
		}
		if len(resourceIDs) == 0 {
			return nil
		}
		rows := make([]*model.ItemResource, 0, len(resourceIDs))
		for _, rid := range resourceIDs {
			rows = append(rows, &model.ItemResource{
				ItemID:     itemID,
				ResourceID: rid,
				CreatedAt:  timex.Now(),
			})
		}
		return tx.Create(rows).Error
	})
}

// ListResourceIDsByItem 列出某笔记条目引用的资源逻辑 ID
func (r *itemResourceRepository) ListResourceIDsByItem(ctx context.Context, itemID string) ([]string, error) {
	var ids []string
	err := r.db().WithContext(ctx).
		Where("item_id = ?", itemID).
		Pluck("resource_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteByItem 删除某条目的全部资源引用
func (r *itemResourceRepository) DeleteByItem(ctx context.Context, itemID string) error {
	return r.db().WithContext(ctx).
		Where("item_id = ?", itemID).
		Delete(&model.ItemResource{}).Error
}
