// Package local_fs 实现本地文件系统存储驱动
package local_fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath   string `yaml:"save-path" default:"storage/content"`
	CustomPath string `yaml:"custom-path"`
}

type LocalFS struct {
	Config *Config
}

// NewClient 创建本地文件系统存储驱动实例
func NewClient(conf *Config) (*LocalFS, error) {
	if conf.SavePath == "" {
		conf.SavePath = "storage/content"
	}
	return &LocalFS{Config: conf}, nil
}

func (l *LocalFS) Type() string {
	return "localfs"
}

// contentPath 按条目 ID 前两位分桶，避免单目录文件数过多
func (l *LocalFS) contentPath(itemID string) string {
	base := filepath.Join(l.Config.SavePath, l.Config.CustomPath)
	if len(itemID) >= 2 {
		return filepath.Join(base, itemID[:2], itemID)
	}
	return filepath.Join(base, itemID)
}

func (l *LocalFS) Write(ctx context.Context, itemID string, content []byte) error {
	path := l.contentPath(itemID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "local_fs")
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.Wrap(err, "local_fs")
	}
	return nil
}

func (l *LocalFS) Read(ctx context.Context, itemID string) ([]byte, error) {
	content, err := os.ReadFile(l.contentPath(itemID))
	if err != nil {
		return nil, errors.Wrap(err, "local_fs")
	}
	return content, nil
}

func (l *LocalFS) Exists(ctx context.Context, itemID string) (bool, error) {
	_, err := os.Stat(l.contentPath(itemID))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "local_fs")
	}
	return true, nil
}

func (l *LocalFS) Delete(ctx context.Context, itemID string) error {
	err := os.Remove(l.contentPath(itemID))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "local_fs")
	}
	return nil
}
