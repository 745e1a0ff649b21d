package global

import (
	"github.com/haierkeys/note-share-sync-service/pkg/debounce"
	"github.com/haierkeys/note-share-sync-service/pkg/storage"

	"gorm.io/gorm"
)

var (
	// DBEngine 全局数据库连接
	DBEngine *gorm.DB

	// ContentStorage 当前生效的内容存储驱动
	ContentStorage storage.Storager

	// ReconcileTrigger 分享对账任务的防抖触发器，服务端启动时注入
	ReconcileTrigger *debounce.Debouncer
)

// KickReconcile 请求一次防抖后的分享对账，触发器未初始化时为空操作
func KickReconcile() {
	if ReconcileTrigger != nil {
		ReconcileTrigger.Kick()
	}
}
