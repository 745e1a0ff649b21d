package global

import (
	"os"
	"path/filepath"

	"github.com/haierkeys/note-share-sync-service/pkg/storage"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	User     UserConfig     `yaml:"user"`
	Storage  storage.Config `yaml:"storage"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，默认为 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型，sqlite 或 mysql
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset" default:"utf8mb4"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time" default:"true"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
}

// UserConfig 用户账户默认配额配置
type UserConfig struct {
	// MaxItemSize 单条目最大字节数，0 表示不限制
	MaxItemSize int64 `yaml:"max-item-size" default:"10485760"`
	// MaxTotalSize 账户总容量上限，0 表示不限制
	MaxTotalSize int64 `yaml:"max-total-size" default:"1073741824"`
	// CanShare 新账户是否默认允许分享
	CanShare bool `yaml:"can-share" default:"true"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultPageSize 默认分页大小
	DefaultPageSize int `yaml:"default-page-size" default:"100"`
	// MaxPageSize 最大分页大小
	MaxPageSize int `yaml:"max-page-size" default:"1000"`
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// ReconcileQuiet 分享对账防抖静默期（秒）
	ReconcileQuiet int `yaml:"reconcile-quiet" default:"1"`
	// ReconcileMaxWait 分享对账最长等待（秒）
	ReconcileMaxWait int `yaml:"reconcile-max-wait" default:"30"`
	// ReconcileInterval 分享对账兜底轮询间隔（秒）
	ReconcileInterval int `yaml:"reconcile-interval" default:"600"`
	// TotalSizeInterval 容量统计轮询间隔（秒）
	TotalSizeInterval int `yaml:"total-size-interval" default:"300"`
	// ChangeBatchSize 后台任务单批读取的变更数
	ChangeBatchSize int `yaml:"change-batch-size" default:"1000"`
}

// LoadConfig 加载 YAML 配置文件并应用默认值
// 返回配置对象与配置文件的绝对路径
func LoadConfig(path string) (*AppConfig, string, error) {
	cfg := &AppConfig{}
	if err := defaults.Set(cfg); err != nil {
		return nil, "", errors.Wrap(err, "apply config defaults")
	}

	realpath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "resolve config path")
	}

	content, err := os.ReadFile(realpath)
	if err != nil {
		return nil, "", errors.Wrap(err, "read config file")
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, "", errors.Wrap(err, "parse config file")
	}

	cfg.File = realpath
	return cfg, realpath, nil
}
