// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	User UserServiceConfig // User related config // 用户相关配置
	App  AppServiceConfig  // App related config // 应用相关配置
}

// UserServiceConfig user service configuration
// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	MaxItemSize  int64 // Default single item size quota in bytes // 默认单条目字节配额
	MaxTotalSize int64 // Default account total size quota in bytes // 默认账户总容量配额
	CanShare     bool  // Whether new accounts may share // 新账户是否允许分享
}

// AppServiceConfig app service configuration
// AppServiceConfig 应用服务配置
type AppServiceConfig struct {
	DefaultPageSize int // Default page size // 默认分页大小
	MaxPageSize     int // Max page size // 最大分页大小
	ChangeBatchSize int // Change feed batch size for background jobs // 后台任务单批读取的变更数
}

// pageSize 归一化分页大小
func (c *AppServiceConfig) pageSize(limit int) int {
	if limit <= 0 {
		if c.DefaultPageSize > 0 {
			return c.DefaultPageSize
		}
		return 100
	}
	if c.MaxPageSize > 0 && limit > c.MaxPageSize {
		return c.MaxPageSize
	}
	return limit
}

// changeBatchSize 归一化后台批大小
func (c *AppServiceConfig) changeBatchSize() int {
	if c.ChangeBatchSize > 0 {
		return c.ChangeBatchSize
	}
	return 1000
}
