package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/haierkeys/note-share-sync-service/internal/dao"
	"github.com/haierkeys/note-share-sync-service/internal/dto"
	"github.com/haierkeys/note-share-sync-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestService 在临时 SQLite 库上搭建一套完整的服务栈
func newTestService(t *testing.T) (*Service, *dao.Dao) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "engine.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, ""))

	d := dao.New(db)
	svc := New(d, zap.NewNop(), &ServiceConfig{
		User: UserServiceConfig{
			MaxItemSize:  1 << 20,
			MaxTotalSize: 1 << 30,
			CanShare:     true,
		},
		App: AppServiceConfig{
			DefaultPageSize: 100,
			MaxPageSize:     1000,
			ChangeBatchSize: 100,
		},
	})
	return svc, d
}

// registerUser 注册账户并返回 UID
func registerUser(t *testing.T, svc *Service, email string) int64 {
	t.Helper()
	user, err := svc.User.Register(context.Background(), &dto.UserRegisterRequest{Email: email})
	require.NoError(t, err)
	return user.UID
}

// mustSave 保存条目，失败即终止测试
func mustSave(t *testing.T, svc *Service, uid int64, req *dto.ItemSaveRequest) *dto.ItemDTO {
	t.Helper()
	item, err := svc.Item.Save(context.Background(), uid, req)
	require.NoError(t, err)
	return item
}

// deltaAll 逐页读完某用户自零游标起的全部变更
func deltaAll(t *testing.T, svc *Service, uid int64) []*dto.ChangeDTO {
	t.Helper()
	var all []*dto.ChangeDTO
	cursor := int64(0)
	for {
		page, err := svc.Change.Delta(context.Background(), uid, cursor, 50)
		require.NoError(t, err)
		all = append(all, page.Items...)
		if !page.HasMore {
			return all
		}
		cursor = page.Cursor
	}
}

// listAllChildren 逐页读完某用户在给定地址下的全部可见条目
func listAllChildren(t *testing.T, svc *Service, uid int64, address string) []*dto.ItemDTO {
	t.Helper()
	var all []*dto.ItemDTO
	cursor := int64(0)
	for {
		page, err := svc.Item.Children(context.Background(), uid, address, cursor, 50)
		require.NoError(t, err)
		all = append(all, page.Items...)
		if !page.HasMore {
			return all
		}
		cursor = page.Cursor
	}
}

// sharedFolderFixture 常用分享测试现场
// A 持有根文件夹 F1（含笔记 N1 与其引用的资源 R1）以及不相关的兄弟子树 F2/N2，
// F1 已分享给 B 并被接受
type sharedFolderFixture struct {
	svc     *Service
	dao     *dao.Dao
	ownerA  int64
	userB   int64
	shareID int64

	f1 *dto.ItemDTO
	n1 *dto.ItemDTO
	r1 *dto.ItemDTO
	f2 *dto.ItemDTO
	n2 *dto.ItemDTO
}

func newSharedFolderFixture(t *testing.T) *sharedFolderFixture {
	t.Helper()
	ctx := context.Background()
	svc, d := newTestService(t)

	fx := &sharedFolderFixture{svc: svc, dao: d}
	fx.ownerA = registerUser(t, svc, "a@example.com")
	fx.userB = registerUser(t, svc, "b@example.com")

	fx.f1 = mustSave(t, svc, fx.ownerA, &dto.ItemSaveRequest{
		Name: "F1", LogicalID: "f1", LogicalType: 2,
	})
	fx.r1 = mustSave(t, svc, fx.ownerA, &dto.ItemSaveRequest{
		Name: "R1", Content: []byte("res"), LogicalID: "r1", LogicalType: 3,
	})
	fx.n1 = mustSave(t, svc, fx.ownerA, &dto.ItemSaveRequest{
		Name: "N1", Content: []byte("note one"), LogicalID: "n1", LogicalType: 1,
		ParentID: "f1", ResourceIDs: []string{"r1"},
	})
	fx.f2 = mustSave(t, svc, fx.ownerA, &dto.ItemSaveRequest{
		Name: "F2", LogicalID: "f2", LogicalType: 2,
	})
	fx.n2 = mustSave(t, svc, fx.ownerA, &dto.ItemSaveRequest{
		Name: "N2", Content: []byte("note two"), LogicalID: "n2", LogicalType: 1,
		ParentID: "f2",
	})

	share, err := svc.Share.CreateShare(ctx, fx.ownerA, &dto.ShareCreateRequest{
		Type: 2, RootLogicalID: "f1",
	})
	require.NoError(t, err)
	fx.shareID = share.ID

	invitation, err := svc.Share.InviteUser(ctx, fx.ownerA, share.ID, "b@example.com")
	require.NoError(t, err)

	_, err = svc.Share.Respond(ctx, fx.userB, invitation.ID, 1)
	require.NoError(t, err)

	return fx
}

// visibleItemIDs 某用户当前可见的条目 ID 集合
func (fx *sharedFolderFixture) visibleItemIDs(t *testing.T, uid int64) map[string]bool {
	t.Helper()
	ids, err := fx.dao.UserItems().ListItemIDsByUser(context.Background(), uid)
	require.NoError(t, err)
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
