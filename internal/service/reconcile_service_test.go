package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/internal/dto"
	"github.com/haierkeys/note-share-sync-service/internal/model"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countChanges 统计全库变更行数
func countChanges(t *testing.T, fx *sharedFolderFixture) int64 {
	t.Helper()
	var n int64
	require.NoError(t, fx.dao.DB().Model(&model.Change{}).Count(&n).Error)
	return n
}

// countTypeForItemSince 统计某用户针对某条目、游标之后某类变更的条数
func countTypeForItemSince(t *testing.T, svc *Service, uid int64, itemID string, since int64, changeType domain.ChangeType) int {
	t.Helper()
	n := 0
	for _, change := range deltaAll(t, svc, uid) {
		if change.Cursor > since && change.ItemID == itemID && change.Type == int(changeType) {
			n++
		}
	}
	return n
}

func TestShareScenarioMoveOutAndBackIn(t *testing.T) {
	ctx := context.Background()
	svc, d := newTestService(t)
	uidA := registerUser(t, svc, "a@example.com")
	uidB := registerUser(t, svc, "b@example.com")

	f1 := mustSave(t, svc, uidA, &dto.ItemSaveRequest{Name: "F1", LogicalID: "f1", LogicalType: 2})
	n1 := mustSave(t, svc, uidA, &dto.ItemSaveRequest{
		Name: "N1", Content: []byte("note"), LogicalID: "n1", LogicalType: 1, ParentID: "f1",
	})
	mustSave(t, svc, uidA, &dto.ItemSaveRequest{Name: "F2", LogicalID: "f2", LogicalType: 2})

	share, err := svc.Share.CreateShare(ctx, uidA, &dto.ShareCreateRequest{Type: 2, RootLogicalID: "f1"})
	require.NoError(t, err)
	invitation, err := svc.Share.InviteUser(ctx, uidA, share.ID, "b@example.com")
	require.NoError(t, err)
	_, err = svc.Share.Respond(ctx, uidB, invitation.ID, 1)
	require.NoError(t, err)

	// 接受后 B 的根列表恰好是 F1 与 N1
	listing := listAllChildren(t, svc, uidB, "")
	require.Len(t, listing, 2)
	names := []string{listing[0].Name, listing[1].Name}
	assert.ElementsMatch(t, []string{"F1", "N1"}, names)

	// A 把 N1 移入未分享的 F2，然后跑对账
	bDelta := deltaAll(t, svc, uidB)
	mark := bDelta[len(bDelta)-1].Cursor
	mustSave(t, svc, uidA, &dto.ItemSaveRequest{
		ID: n1.ID, Name: "N1", Content: []byte("note"), LogicalID: "n1", LogicalType: 1, ParentID: "f2",
	})
	require.NoError(t, svc.Reconcile.Run(ctx))

	listing = listAllChildren(t, svc, uidB, "")
	require.Len(t, listing, 1)
	assert.Equal(t, "F1", listing[0].Name)

	// B 恰好收到一条针对 N1 的 Delete 变更
	assert.Equal(t, 1, countTypeForItemSince(t, svc, uidB, n1.ID, mark, domain.ChangeTypeDelete))

	// N1 不再归属该分享
	moved, err := d.Items().GetByID(ctx, n1.ID)
	require.NoError(t, err)
	assert.Zero(t, moved.ShareID)

	// 移回来恰好产生一条 Create 变更
	bDelta = deltaAll(t, svc, uidB)
	mark = bDelta[len(bDelta)-1].Cursor
	mustSave(t, svc, uidA, &dto.ItemSaveRequest{
		ID: n1.ID, Name: "N1", Content: []byte("note"), LogicalID: "n1", LogicalType: 1, ParentID: "f1",
	})
	require.NoError(t, svc.Reconcile.Run(ctx))

	listing = listAllChildren(t, svc, uidB, "")
	assert.Len(t, listing, 2)
	assert.Equal(t, 1, countTypeForItemSince(t, svc, uidB, n1.ID, mark, domain.ChangeTypeCreate))

	_ = f1
}

func TestReconcileRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	fx := newSharedFolderFixture(t)

	require.NoError(t, fx.svc.Reconcile.Run(ctx))
	before := countChanges(t, fx)

	// 无中间写入时重跑必须零变更
	require.NoError(t, fx.svc.Reconcile.Run(ctx))
	assert.Equal(t, before, countChanges(t, fx))

	require.NoError(t, fx.svc.Reconcile.ReconcileShare(ctx, fx.shareID))
	assert.Equal(t, before, countChanges(t, fx))
}

func TestReconcileTearsDownShareWhenRootRowGone(t *testing.T) {
	ctx := context.Background()
	fx := newSharedFolderFixture(t)

	// 根条目的行被直接移除，模拟与后台对账的竞态
	require.NoError(t, fx.dao.Items().Delete(ctx, fx.f1.ID))

	require.NoError(t, fx.svc.Reconcile.ReconcileShare(ctx, fx.shareID))

	share, err := fx.dao.Shares().GetByID(ctx, fx.shareID)
	require.NoError(t, err)
	assert.Nil(t, share)

	// 接收者残留的可见性全部收回
	visible := fx.visibleItemIDs(t, fx.userB)
	assert.False(t, visible[fx.n1.ID])
	assert.False(t, visible[fx.r1.ID])

	// 已删除的分享再次对账是空操作
	require.NoError(t, fx.svc.Reconcile.ReconcileShare(ctx, fx.shareID))
}

func TestReconcileToleratesDanglingResourceRef(t *testing.T) {
	ctx := context.Background()
	svc, d := newTestService(t)
	uidA := registerUser(t, svc, "a@example.com")
	uidB := registerUser(t, svc, "b@example.com")

	mustSave(t, svc, uidA, &dto.ItemSaveRequest{Name: "F", LogicalID: "f", LogicalType: 2})
	n := mustSave(t, svc, uidA, &dto.ItemSaveRequest{
		Name: "N", Content: []byte("x"), LogicalID: "n", LogicalType: 1, ParentID: "f",
		ResourceIDs: []string{"ghost"},
	})

	share, err := svc.Share.CreateShare(ctx, uidA, &dto.ShareCreateRequest{Type: 2, RootLogicalID: "f"})
	require.NoError(t, err)
	invitation, err := svc.Share.InviteUser(ctx, uidA, share.ID, "b@example.com")
	require.NoError(t, err)

	// 悬空的资源引用被跳过，不阻断对账
	_, err = svc.Share.Respond(ctx, uidB, invitation.ID, 1)
	require.NoError(t, err)

	ids, err := d.UserItems().ListItemIDsByUser(ctx, uidB)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	_ = n
}

func TestParentChainCycleTerminates(t *testing.T) {
	ctx := context.Background()
	fx := newSharedFolderFixture(t)

	// 人为制造 parent 环：f1 → f2 → f1
	require.NoError(t, fx.dao.DB().Model(&model.Item{}).
		Where("id = ?", fx.f1.ID).Update("parent_id", "f2").Error)
	require.NoError(t, fx.dao.DB().Model(&model.Item{}).
		Where("id = ?", fx.f2.ID).Update("parent_id", "f1").Error)

	// 环检测保证遍历终止，对账不报错
	require.NoError(t, fx.svc.Reconcile.Run(ctx))
	require.NoError(t, fx.svc.Reconcile.ReconcileShare(ctx, fx.shareID))
}

// 任意移动与撤销重建序列之后，接收者可见集必须等于分享子树，
// 且收敛后再跑一轮对账零变更
func TestPropertyReconcileConvergesAfterRandomOps(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	const noteCount = 4

	properties.Property("recipient visibility equals the shared subtree", prop.ForAll(
		func(ops []int) bool {
			ctx := context.Background()
			svc, d := newTestService(t)
			uidA := registerUser(t, svc, "a@example.com")
			uidB := registerUser(t, svc, "b@example.com")

			mustSave(t, svc, uidA, &dto.ItemSaveRequest{Name: "F", LogicalID: "f", LogicalType: 2})
			mustSave(t, svc, uidA, &dto.ItemSaveRequest{Name: "O", LogicalID: "o", LogicalType: 2})

			notes := make([]*dto.ItemDTO, noteCount)
			parents := make([]string, noteCount)
			for i := range notes {
				lid := fmt.Sprintf("n%d", i)
				notes[i] = mustSave(t, svc, uidA, &dto.ItemSaveRequest{
					Name: "N-" + lid, Content: []byte("x"), LogicalID: lid, LogicalType: 1, ParentID: "f",
				})
				parents[i] = "f"
			}

			accept := func(shareID int64) bool {
				invitation, err := svc.Share.InviteUser(ctx, uidA, shareID, "b@example.com")
				if err != nil {
					t.Logf("invite: %v", err)
					return false
				}
				if _, err := svc.Share.Respond(ctx, uidB, invitation.ID, 1); err != nil {
					t.Logf("respond: %v", err)
					return false
				}
				return true
			}

			share, err := svc.Share.CreateShare(ctx, uidA, &dto.ShareCreateRequest{Type: 2, RootLogicalID: "f"})
			if err != nil {
				t.Logf("create share: %v", err)
				return false
			}
			if !accept(share.ID) {
				return false
			}

			// 每个操作码要么把一条笔记移进或移出分享文件夹，
			// 要么撤销整个分享并重建重邀
			for _, op := range ops {
				if op >= 2*noteCount {
					if err := svc.Share.DeleteShare(ctx, uidA, share.ID); err != nil {
						t.Logf("delete share: %v", err)
						return false
					}
					share, err = svc.Share.CreateShare(ctx, uidA, &dto.ShareCreateRequest{Type: 2, RootLogicalID: "f"})
					if err != nil {
						t.Logf("recreate share: %v", err)
						return false
					}
					if !accept(share.ID) {
						return false
					}
					continue
				}
				i := op % noteCount
				target := "f"
				if op/noteCount == 1 {
					target = "o"
				}
				mustSave(t, svc, uidA, &dto.ItemSaveRequest{
					ID: notes[i].ID, Name: notes[i].Name, Content: []byte("x"),
					LogicalID: fmt.Sprintf("n%d", i), LogicalType: 1, ParentID: target,
				})
				parents[i] = target
			}

			if err := svc.Reconcile.Run(ctx); err != nil {
				t.Logf("run: %v", err)
				return false
			}

			rootItem, err := d.Items().GetByLogicalID(ctx, uidA, "f")
			if err != nil || rootItem == nil {
				return false
			}
			want := map[string]bool{rootItem.ID: true}
			for i, parent := range parents {
				if parent == "f" {
					want[notes[i].ID] = true
				}
			}

			ids, err := d.UserItems().ListItemIDsByUser(ctx, uidB)
			if err != nil {
				return false
			}
			if len(ids) != len(want) {
				t.Logf("visible set size: got %d, want %d", len(ids), len(want))
				return false
			}
			for _, id := range ids {
				if !want[id] {
					t.Logf("unexpected visible item: %s", id)
					return false
				}
			}

			// 收敛检查
			var before, after int64
			if err := d.DB().Model(&model.Change{}).Count(&before).Error; err != nil {
				return false
			}
			if err := svc.Reconcile.Run(ctx); err != nil {
				return false
			}
			if err := d.DB().Model(&model.Change{}).Count(&after).Error; err != nil {
				return false
			}
			if before != after {
				t.Logf("second run emitted %d changes", after-before)
				return false
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 2*noteCount)),
	))

	properties.TestingRun(t)
}

func TestNoteShareCoversNoteAndResources(t *testing.T) {
	ctx := context.Background()
	svc, d := newTestService(t)
	uidA := registerUser(t, svc, "a@example.com")
	uidB := registerUser(t, svc, "b@example.com")

	mustSave(t, svc, uidA, &dto.ItemSaveRequest{
		Name: "R", Content: []byte("img"), LogicalID: "r", LogicalType: 3,
	})
	n := mustSave(t, svc, uidA, &dto.ItemSaveRequest{
		Name: "N", Content: []byte("body"), LogicalID: "n", LogicalType: 1,
		ResourceIDs: []string{"r"},
	})
	other := mustSave(t, svc, uidA, &dto.ItemSaveRequest{
		Name: "Other", Content: []byte("x"), LogicalID: "o", LogicalType: 1,
	})

	share, err := svc.Share.CreateShare(ctx, uidA, &dto.ShareCreateRequest{Type: 1, RootLogicalID: "n"})
	require.NoError(t, err)
	invitation, err := svc.Share.InviteUser(ctx, uidA, share.ID, "b@example.com")
	require.NoError(t, err)
	_, err = svc.Share.Respond(ctx, uidB, invitation.ID, 1)
	require.NoError(t, err)

	ids, err := d.UserItems().ListItemIDsByUser(ctx, uidB)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	assert.True(t, set[n.ID])
	assert.False(t, set[other.ID])
}
