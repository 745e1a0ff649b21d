// Package webdav 实现 WebDAV 存储驱动
package webdav

import (
	"context"
	"os"
	"strings"

	"github.com/haierkeys/note-share-sync-service/pkg/fileurl"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

// Config 结构体用于存储 WebDAV 连接信息
type Config struct {
	Endpoint   string `yaml:"endpoint"`
	Path       string `yaml:"path"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
}

// WebDAV 结构体表示 WebDAV 客户端
type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

var clients = make(map[string]*WebDAV)

// NewClient 创建一个新的 WebDAV 客户端实例
func NewClient(conf *Config) (*WebDAV, error) {
	key := conf.Endpoint + conf.Path + conf.User + conf.CustomPath
	if clients[key] != nil {
		return clients[key], nil
	}

	c := gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password)
	if err := c.Connect(); err != nil {
		return nil, errors.Wrap(err, "webdav")
	}

	clients[key] = &WebDAV{
		Client: c,
		Config: conf,
	}
	return clients[key], nil
}

func (w *WebDAV) Type() string {
	return "webdav"
}

// contentKey 计算条目在 WebDAV 上的路径
func (w *WebDAV) contentKey(itemID string) string {
	return fileurl.PathSuffixCheckAdd(w.Config.Path, "/") +
		fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + itemID
}

func (w *WebDAV) Write(ctx context.Context, itemID string, content []byte) error {
	key := w.contentKey(itemID)

	dir := key[:strings.LastIndex(key, "/")+1]
	if dir != "" {
		if err := w.Client.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "webdav")
		}
	}

	if err := w.Client.Write(key, content, os.ModePerm); err != nil {
		return errors.Wrap(err, "webdav")
	}
	return nil
}

func (w *WebDAV) Read(ctx context.Context, itemID string) ([]byte, error) {
	content, err := w.Client.Read(w.contentKey(itemID))
	if err != nil {
		return nil, errors.Wrap(err, "webdav")
	}
	return content, nil
}

func (w *WebDAV) Exists(ctx context.Context, itemID string) (bool, error) {
	_, err := w.Client.Stat(w.contentKey(itemID))
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "webdav")
	}
	return true, nil
}

func (w *WebDAV) Delete(ctx context.Context, itemID string) error {
	err := w.Client.Remove(w.contentKey(itemID))
	if err != nil && !gowebdav.IsErrNotFound(err) {
		return errors.Wrap(err, "webdav")
	}
	return nil
}
