// Package dao 实现数据访问层
package dao

import (
	"fmt"
	"os"
	"time"

	"github.com/haierkeys/note-share-sync-service/global"
	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/internal/model"
	"github.com/haierkeys/note-share-sync-service/pkg/fileurl"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Dao 聚合全部仓储的数据访问对象
type Dao struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Dao {
	return &Dao{db: db}
}

func (d *Dao) DB() *gorm.DB {
	return d.db
}

// Transaction 在事务中执行 fn，fn 收到的 Dao 绑定到事务连接
func (d *Dao) Transaction(fn func(txDao *Dao) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// 仓储访问器，返回绑定到当前连接的仓储实例（事务内为事务连接）

func (d *Dao) Items() domain.ItemRepository {
	return NewItemRepository(d)
}

func (d *Dao) UserItems() domain.UserItemRepository {
	return NewUserItemRepository(d)
}

func (d *Dao) ItemResources() domain.ItemResourceRepository {
	return NewItemResourceRepository(d)
}

func (d *Dao) Shares() domain.ShareRepository {
	return NewShareRepository(d)
}

func (d *Dao) ShareUsers() domain.ShareUserRepository {
	return NewShareUserRepository(d)
}

func (d *Dao) Changes() domain.ChangeRepository {
	return NewChangeRepository(d)
}

func (d *Dao) Users() domain.UserRepository {
	return NewUserRepository(d)
}

func (d *Dao) KeyValues() domain.KeyValueRepository {
	return NewKeyValueRepository(d)
}

func NewDBEngine(c global.DatabaseConfig, runMode string) (*gorm.DB, error) {

	db, err := gorm.Open(dialector(c), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}
	if runMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	if c.AutoMigrate {
		if err := model.AutoMigrate(db, ""); err != nil {
			return nil, err
		}
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	sqlDB.SetConnMaxLifetime(time.Minute * 10)

	return db, nil
}

func dialector(c global.DatabaseConfig) gorm.Dialector {
	if c.Type == "mysql" {
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	} else if c.Type == "sqlite" {
		if !fileurl.IsExist(c.Path) {
			fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
