package dao

import (
	"context"

	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/internal/model"
	"github.com/haierkeys/note-share-sync-service/pkg/timex"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// keyValueRepository 实现 domain.KeyValueRepository 接口
type keyValueRepository struct {
	dao *Dao
}

// NewKeyValueRepository 创建 KeyValueRepository 实例
func NewKeyValueRepository(dao *Dao) domain.KeyValueRepository {
	return &keyValueRepository{dao: dao}
}

// Get 读取键值，键不存在时返回空字符串
func (r *keyValueRepository) Get(ctx context.Context, key string) (string, error) {
	var m model.KeyValue
	err := r.dao.db.WithContext(ctx).
		Model(&model.KeyValue{}).
		Where("key = ?", key).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return m.Value, nil
}

// Set 写入键值
func (r *keyValueRepository) Set(ctx context.Context, key string, value string) error {
	m := &model.KeyValue{
		Key:       key,
		Value:     value,
		UpdatedAt: timex.Now(),
	}
	return r.dao.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(m).Error
}
