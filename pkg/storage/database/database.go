// Package database 实现关系库列存储驱动：内容直接存放在条目表的 content 列
package database

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Config struct {
	// Table 条目表名（含表前缀）
	Table string
}

type DatabaseFS struct {
	Config *Config
	db     *gorm.DB
}

// NewClient 创建关系库列存储驱动实例
func NewClient(conf *Config, db *gorm.DB) (*DatabaseFS, error) {
	if conf.Table == "" {
		conf.Table = "item"
	}
	return &DatabaseFS{Config: conf, db: db}, nil
}

func (d *DatabaseFS) Type() string {
	return "database"
}

// Write 将内容写入条目行的 content 列
// 使用 UpdateColumn 避免触发 updated_at 自动更新，迁移时客户端不应被迫重新下载
func (d *DatabaseFS) Write(ctx context.Context, itemID string, content []byte) error {
	tx := d.db.WithContext(ctx).Table(d.Config.Table).
		Where("id = ?", itemID).
		UpdateColumn("content", content)
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "database storage")
	}
	if tx.RowsAffected == 0 {
		return errors.Errorf("database storage: item %s has no row", itemID)
	}
	return nil
}

// Read 从条目行的 content 列读取内容
func (d *DatabaseFS) Read(ctx context.Context, itemID string) ([]byte, error) {
	var content []byte
	tx := d.db.WithContext(ctx).Table(d.Config.Table).
		Select("content").
		Where("id = ?", itemID).
		Scan(&content)
	if tx.Error != nil {
		return nil, errors.Wrap(tx.Error, "database storage")
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return content, nil
}

// Exists 判断条目行是否持有非空内容
func (d *DatabaseFS) Exists(ctx context.Context, itemID string) (bool, error) {
	var count int64
	tx := d.db.WithContext(ctx).Table(d.Config.Table).
		Where("id = ? AND content IS NOT NULL", itemID).
		Count(&count)
	if tx.Error != nil {
		return false, errors.Wrap(tx.Error, "database storage")
	}
	return count > 0, nil
}

// Delete 清空条目行的 content 列
// 行本身由条目存储层负责删除，这里只负责内容字节
func (d *DatabaseFS) Delete(ctx context.Context, itemID string) error {
	tx := d.db.WithContext(ctx).Table(d.Config.Table).
		Where("id = ?", itemID).
		UpdateColumn("content", nil)
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "database storage")
	}
	return nil
}
