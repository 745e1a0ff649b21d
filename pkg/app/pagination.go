package app

import (
	"github.com/haierkeys/note-share-sync-service/pkg/convert"

	"github.com/gin-gonic/gin"
)

// PaginationConfig pagination configuration // 分页配置
type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultPaginationConfig default pagination configuration // 默认分页配置
var DefaultPaginationConfig = PaginationConfig{
	DefaultPageSize: 100,
	MaxPageSize:     1000,
}

// GetCursor 获取请求中的游标参数，空字符串表示从头开始
func GetCursor(c *gin.Context) string {
	if s, exist := c.GetQuery("cursor"); exist {
		return s
	}
	return c.PostForm("cursor")
}

// GetLimitWithConfig 获取分页大小（使用注入的配置）
func GetLimitWithConfig(c *gin.Context, cfg PaginationConfig) int {
	var limit int

	if s, exist := c.GetQuery("limit"); exist {
		limit = convert.StrTo(s).MustInt()
	} else if s := c.PostForm("limit"); s != "" {
		limit = convert.StrTo(s).MustInt()
	}

	if limit <= 0 {
		return cfg.DefaultPageSize
	}
	if limit > cfg.MaxPageSize {
		return cfg.MaxPageSize
	}

	return limit
}

// GetLimit 获取分页大小（使用默认配置）
func GetLimit(c *gin.Context) int {
	return GetLimitWithConfig(c, DefaultPaginationConfig)
}
