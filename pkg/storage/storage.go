// Package storage 提供统一的条目内容存储驱动契约
package storage

import (
	"context"

	"github.com/haierkeys/note-share-sync-service/pkg/code"
	"github.com/haierkeys/note-share-sync-service/pkg/storage/aws_s3"
	"github.com/haierkeys/note-share-sync-service/pkg/storage/database"
	"github.com/haierkeys/note-share-sync-service/pkg/storage/local_fs"
	"github.com/haierkeys/note-share-sync-service/pkg/storage/webdav"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Type = string

const Database Type = "database"
const LOCAL Type = "localfs"
const S3 Type = "s3"
const WebDAV Type = "webdav"

var StorageTypeMap = map[Type]bool{
	Database: true,
	LOCAL:    true,
	S3:       true,
	WebDAV:   true,
}

// Config Unified storage configuration
// Config 统一存储配置
type Config struct {
	Type Type `yaml:"type" default:"database"`

	// Common settings
	CustomPath string `yaml:"custom-path"`

	// Cloud Storage (S3)
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`

	// WebDAV 与 S3 兼容端点共用
	Endpoint string `yaml:"endpoint"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Path     string `yaml:"path"`

	// Local FS
	SavePath string `yaml:"save-path" default:"storage/content"`

	// Database 驱动的内容表名（含表前缀）
	ContentTable string `yaml:"content-table" default:"item"`
}

// Storager is the uniform content driver contract: the engine reads and
// writes item content by item id regardless of where the bytes live.
// Storager 是统一的内容驱动契约：引擎按条目 ID 读写内容，与字节实际存放位置无关。
type Storager interface {
	// Type 返回驱动类型标识
	Type() Type
	// Write 写入条目内容
	Write(ctx context.Context, itemID string, content []byte) error
	// Read 读取条目内容
	Read(ctx context.Context, itemID string) ([]byte, error)
	// Exists 判断条目内容是否存在
	Exists(ctx context.Context, itemID string) (bool, error)
	// Delete 删除条目内容
	Delete(ctx context.Context, itemID string) error
}

// Option 驱动构建选项
type Option func(*options)

type options struct {
	db     *gorm.DB
	logger *zap.Logger
}

// WithDB 注入数据库连接，database 驱动必需
func WithDB(db *gorm.DB) Option {
	return func(o *options) {
		o.db = db
	}
}

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewClient 根据配置创建存储驱动实例
func NewClient(config *Config, opts ...Option) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	switch config.Type {
	case Database:
		if o.db == nil {
			return nil, code.ErrorInvalidStorageType.WithDetails("database storage requires a db connection")
		}
		return database.NewClient(&database.Config{
			Table: config.ContentTable,
		}, o.db)
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath:   config.SavePath,
			CustomPath: config.CustomPath,
		})
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			Endpoint:        config.Endpoint,
			CustomPath:      config.CustomPath,
		}, aws_s3.WithLogger(o.logger))
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			Endpoint:   config.Endpoint,
			Path:       config.Path,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
		})
	}
	return nil, code.ErrorInvalidStorageType.WithDetails("unknown storage type: " + config.Type)
}
