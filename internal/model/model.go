// Package model 定义数据库表模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名迁移数据表，空 key 迁移全部
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Item":
		return db.AutoMigrate(Item{})

	case "UserItem":
		return db.AutoMigrate(UserItem{})

	case "ItemResource":
		return db.AutoMigrate(ItemResource{})

	case "Share":
		return db.AutoMigrate(Share{})

	case "ShareUser":
		return db.AutoMigrate(ShareUser{})

	case "Change":
		return db.AutoMigrate(Change{})

	case "User":
		return db.AutoMigrate(User{})

	case "KeyValue":
		return db.AutoMigrate(KeyValue{})

	case "":
		return db.AutoMigrate(
			Item{},
			UserItem{},
			ItemResource{},
			Share{},
			ShareUser{},
			Change{},
			User{},
			KeyValue{},
		)
	}
	return nil
}
