package dao

import (
	"context"
	"time"

	"github.com/haierkeys/note-share-sync-service/global"
	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/internal/model"
	"github.com/haierkeys/note-share-sync-service/pkg/convert"
	"github.com/haierkeys/note-share-sync-service/pkg/storage"
	"github.com/haierkeys/note-share-sync-service/pkg/timex"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// itemRepository 实现 domain.ItemRepository 接口
type itemRepository struct {
	dao *Dao
}

// NewItemRepository 创建 ItemRepository 实例
func NewItemRepository(dao *Dao) domain.ItemRepository {
	return &itemRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *itemRepository) toDomain(ctx context.Context, m *model.Item) *domain.Item {
	if m == nil {
		return nil
	}
	item := convert.StructAssign(m, &domain.Item{}).(*domain.Item)
	r.fillContent(ctx, item)
	return item
}

// toModel 将领域模型转换为数据库模型
func (r *itemRepository) toModel(item *domain.Item) *model.Item {
	if item == nil {
		return nil
	}
	return convert.StructAssign(item, &model.Item{}).(*model.Item)
}

// fillContent 从外部存储驱动加载条目内容
// 内容位于 database 驱动时行内已携带，无需额外加载
func (r *itemRepository) fillContent(ctx context.Context, item *domain.Item) {
	if item == nil || item.ContentStorage == "" || item.ContentStorage == storage.Database {
		return
	}
	fs := global.ContentStorage
	if fs == nil || fs.Type() != item.ContentStorage {
		return
	}
	content, err := fs.Read(ctx, item.ID)
	if err != nil {
		global.Log().Warn("item content load failed",
			zap.String("item_id", item.ID),
			zap.String("storage", item.ContentStorage),
			zap.Error(err))
		return
	}
	item.Content = content
}

func (r *itemRepository) db() *gorm.DB {
	return r.dao.db.Model(&model.Item{})
}

// GetByID 根据 ID 获取条目
func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	var m model.Item
	err := r.db().WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(ctx, &m), nil
}

// GetByName 根据所有者与名称获取条目
func (r *itemRepository) GetByName(ctx context.Context, ownerUID int64, name string) (*domain.Item, error) {
	var m model.Item
	err := r.db().WithContext(ctx).
		Where("owner_uid = ? AND name = ?", ownerUID, name).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(ctx, &m), nil
}

// GetByLogicalID 根据所有者与逻辑 ID 获取条目
func (r *itemRepository) GetByLogicalID(ctx context.Context, ownerUID int64, logicalID string) (*domain.Item, error) {
	var m model.Item
	err := r.db().WithContext(ctx).
		Where("owner_uid = ? AND logical_id = ?", ownerUID, logicalID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(ctx, &m), nil
}

// GetVisibleByName 在某用户的可见集合内按名称获取条目
func (r *itemRepository) GetVisibleByName(ctx context.Context, viewerUID int64, name string) (*domain.Item, error) {
	var m model.Item
	err := r.dao.db.WithContext(ctx).
		Table(model.TableNameItem).
		Joins("JOIN "+model.TableNameUserItem+" ON "+model.TableNameUserItem+".item_id = "+model.TableNameItem+".id").
		Where(model.TableNameUserItem+".uid = ? AND "+model.TableNameItem+".name = ?", viewerUID, name).
		Select(model.TableNameItem + ".*").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(ctx, &m), nil
}

// Create 创建条目
func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	m := r.toModel(item)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	content := m.Content
	if m.ContentStorage != storage.Database {
		// 内容交给外部驱动，行内不落库
		m.Content = nil
	}
	if err := r.db().WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	if m.ContentStorage != storage.Database && global.ContentStorage != nil && len(content) > 0 {
		if err := global.ContentStorage.Write(ctx, m.ID, content); err != nil {
			return err
		}
	}
	item.CreatedAt = time.Time(m.CreatedAt)
	item.UpdatedAt = time.Time(m.UpdatedAt)
	return nil
}

// Update 更新条目
func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	m := r.toModel(item)
	m.UpdatedAt = timex.Now()

	content := m.Content
	if m.ContentStorage != storage.Database {
		m.Content = nil
	}
	err := r.db().WithContext(ctx).
		Where("id = ?", m.ID).
		Select("name", "mime_type", "content", "content_size", "content_storage",
			"logical_id", "logical_type", "parent_id", "updated_at").
		Updates(m).Error
	if err != nil {
		return err
	}
	if m.ContentStorage != storage.Database && global.ContentStorage != nil {
		if err := global.ContentStorage.Write(ctx, m.ID, content); err != nil {
			return err
		}
	}
	item.UpdatedAt = time.Time(m.UpdatedAt)
	return nil
}

// UpdateShareID 仅更新条目的分享归属，不触碰 updated_at
func (r *itemRepository) UpdateShareID(ctx context.Context, id string, shareID int64) error {
	return r.db().WithContext(ctx).
		Where("id = ?", id).
		UpdateColumn("share_id", shareID).Error
}

// UpdateContentPlacement 仅更新内容的存放位置与内联副本，不触碰 updated_at
func (r *itemRepository) UpdateContentPlacement(ctx context.Context, id string, storageType string, inline []byte) error {
	return r.db().WithContext(ctx).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"content_storage": storageType,
			"content":         inline,
		}).Error
}

// Delete 物理删除条目行
func (r *itemRepository) Delete(ctx context.Context, id string) error {
	return r.db().WithContext(ctx).Where("id = ?", id).Delete(&model.Item{}).Error
}

// ListChildrenLogical 列出某文件夹（按逻辑 ID）的直接子条目
func (r *itemRepository) ListChildrenLogical(ctx context.Context, ownerUID int64, parentLogicalID string) ([]*domain.Item, error) {
	var ms []*model.Item
	err := r.db().WithContext(ctx).
		Where("owner_uid = ? AND parent_id = ?", ownerUID, parentLogicalID).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(ms))
	for _, m := range ms {
		items = append(items, r.toDomain(ctx, m))
	}
	return items, nil
}

// ListByShareID 列出当前归属于某分享的所有条目
func (r *itemRepository) ListByShareID(ctx context.Context, shareID int64) ([]*domain.Item, error) {
	var ms []*model.Item
	err := r.db().WithContext(ctx).
		Where("share_id = ?", shareID).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(ms))
	for _, m := range ms {
		items = append(items, r.toDomain(ctx, m))
	}
	return items, nil
}

// itemWithCursor 联表查询的行载体，附带可见性关联的自增 ID 作为游标
type itemWithCursor struct {
	model.Item
	Cursor int64 `gorm:"column:cursor"`
}

// ListVisibleChildren 按名称前缀列出某用户可见的子条目
// 按可见性关联的自增 ID 排序取游标，后插入的行游标一定更大
func (r *itemRepository) ListVisibleChildren(ctx context.Context, viewerUID int64, prefix string, wildcard bool, cursor int64, limit int) ([]*domain.VisibleItem, error) {
	it := model.TableNameItem
	ui := model.TableNameUserItem

	q := r.dao.db.WithContext(ctx).
		Table(it).
		Joins("JOIN "+ui+" ON "+ui+".item_id = "+it+".id").
		Where(ui+".uid = ?", viewerUID).
		Where(ui+".id > ?", cursor)

	if prefix == "" {
		q = q.Where(it + ".name NOT LIKE '%/%'")
	} else {
		q = q.Where(it+".name LIKE ?", prefix+"/%")
		if wildcard {
			q = q.Where(it+".name NOT LIKE ?", prefix+"/%/%")
		}
	}

	var rows []*itemWithCursor
	err := q.Select(it + ".*, " + ui + ".id AS cursor").
		Order(ui + ".id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]*domain.VisibleItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &domain.VisibleItem{
			Item:   r.toDomain(ctx, &row.Item),
			Cursor: row.Cursor,
		})
	}
	return items, nil
}

// ListForMigration 列出内容尚未位于目标驱动且未超过大小上限的条目
func (r *itemRepository) ListForMigration(ctx context.Context, targetStorage string, maxSize int64, afterID string, limit int) ([]*domain.Item, error) {
	q := r.db().WithContext(ctx).
		Where("content_storage <> ?", targetStorage).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit)
	if maxSize > 0 {
		q = q.Where("content_size <= ?", maxSize)
	}
	var ms []*model.Item
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(ms))
	for _, m := range ms {
		items = append(items, r.toDomain(ctx, m))
	}
	return items, nil
}

// SumSizeByUser 统计某用户可见条目的内容字节总和
func (r *itemRepository) SumSizeByUser(ctx context.Context, uid int64) (int64, error) {
	it := model.TableNameItem
	ui := model.TableNameUserItem

	var total int64
	err := r.dao.db.WithContext(ctx).
		Table(it).
		Joins("JOIN "+ui+" ON "+ui+".item_id = "+it+".id").
		Where(ui+".uid = ?", uid).
		Select("COALESCE(SUM(" + it + ".content_size), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
