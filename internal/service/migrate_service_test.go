package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/note-share-sync-service/internal/dto"
	"github.com/haierkeys/note-share-sync-service/internal/model"
	"github.com/haierkeys/note-share-sync-service/pkg/storage/local_fs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportContentToStorageMovesBytesWithoutTouchingUpdatedAt(t *testing.T) {
	ctx := context.Background()
	svc, d := newTestService(t)
	uid := registerUser(t, svc, "a@example.com")

	small := mustSave(t, svc, uid, &dto.ItemSaveRequest{Name: "small", Content: []byte("abc")})
	big := mustSave(t, svc, uid, &dto.ItemSaveRequest{Name: "big", Content: []byte("0123456789")})

	var before model.Item
	require.NoError(t, d.DB().Where("id = ?", small.ID).First(&before).Error)

	target, err := local_fs.NewClient(&local_fs.Config{SavePath: t.TempDir()})
	require.NoError(t, err)

	result, err := svc.Migrate.ImportContentToStorage(ctx, target, MigrateOptions{
		MaxContentSize: 5,
		BatchSize:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)

	// 超出大小上限的条目原样保留
	var bigRow model.Item
	require.NoError(t, d.DB().Where("id = ?", big.ID).First(&bigRow).Error)
	assert.NotEqual(t, target.Type(), bigRow.ContentStorage)
	assert.Equal(t, []byte("0123456789"), bigRow.Content)

	// 迁移后行内副本清空，归属指向目标驱动
	var after model.Item
	require.NoError(t, d.DB().Where("id = ?", small.ID).First(&after).Error)
	assert.Equal(t, target.Type(), after.ContentStorage)
	assert.Empty(t, after.Content)

	// updated_at 保持不变，客户端不会被迫重新下载
	assert.True(t, time.Time(after.UpdatedAt).Equal(time.Time(before.UpdatedAt)))

	// 字节已经在目标驱动上
	content, err := target.Read(ctx, small.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), content)
}

func TestImportContentToStorageIsIncremental(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	uid := registerUser(t, svc, "a@example.com")

	for _, name := range []string{"a", "b", "c"} {
		mustSave(t, svc, uid, &dto.ItemSaveRequest{Name: name, Content: []byte(name)})
	}

	target, err := local_fs.NewClient(&local_fs.Config{SavePath: t.TempDir()})
	require.NoError(t, err)

	// maxProcessedItems 限制单次迁移量
	result, err := svc.Migrate.ImportContentToStorage(ctx, target, MigrateOptions{
		BatchSize:         2,
		MaxProcessedItems: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)

	result, err = svc.Migrate.ImportContentToStorage(ctx, target, MigrateOptions{BatchSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)

	// 已全部位于目标驱动，再跑一遍零处理
	result, err = svc.Migrate.ImportContentToStorage(ctx, target, MigrateOptions{BatchSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
}
