package service

import (
	"context"
	"testing"

	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/internal/dto"
	"github.com/haierkeys/note-share-sync-service/internal/model"
	"github.com/haierkeys/note-share-sync-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderShareGrantsRecursiveVisibility(t *testing.T) {
	fx := newSharedFolderFixture(t)

	visible := fx.visibleItemIDs(t, fx.userB)

	// 根文件夹、子笔记与其引用的资源全部可见
	assert.True(t, visible[fx.f1.ID])
	assert.True(t, visible[fx.n1.ID])
	assert.True(t, visible[fx.r1.ID])

	// 无关的兄弟子树保持不可见
	assert.False(t, visible[fx.f2.ID])
	assert.False(t, visible[fx.n2.ID])

	// 每次可见性授予都对应一条 Create 变更
	var created []string
	for _, change := range deltaAll(t, fx.svc, fx.userB) {
		if change.Type == int(domain.ChangeTypeCreate) {
			created = append(created, change.ItemID)
		}
	}
	assert.ElementsMatch(t, []string{fx.f1.ID, fx.n1.ID, fx.r1.ID}, created)
}

func TestCreateShareValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	uid := registerUser(t, svc, "a@example.com")

	mustSave(t, svc, uid, &dto.ItemSaveRequest{
		Name: "root-folder", LogicalID: "rf", LogicalType: 2,
	})
	mustSave(t, svc, uid, &dto.ItemSaveRequest{
		Name: "nested-folder", LogicalID: "nf", LogicalType: 2, ParentID: "rf",
	})

	_, err := svc.Share.CreateShare(ctx, uid, &dto.ShareCreateRequest{Type: 2, RootLogicalID: "missing"})
	assert.True(t, code.Is(err, code.ErrorItemNotFound))

	// 只有根文件夹可以被整树分享
	_, err = svc.Share.CreateShare(ctx, uid, &dto.ShareCreateRequest{Type: 2, RootLogicalID: "nf"})
	assert.True(t, code.Is(err, code.ErrorShareRootHasParent))

	first, err := svc.Share.CreateShare(ctx, uid, &dto.ShareCreateRequest{Type: 2, RootLogicalID: "rf"})
	require.NoError(t, err)

	// 同一根条目的分享复用既有记录
	second, err := svc.Share.CreateShare(ctx, uid, &dto.ShareCreateRequest{Type: 2, RootLogicalID: "rf"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestInviteUserValidation(t *testing.T) {
	ctx := context.Background()
	fx := newSharedFolderFixture(t)

	// 非拥有者不能邀请
	_, err := fx.svc.Share.InviteUser(ctx, fx.userB, fx.shareID, "a@example.com")
	assert.True(t, code.Is(err, code.ErrorNotShareOwner))

	// 不能分享给自己
	_, err = fx.svc.Share.InviteUser(ctx, fx.ownerA, fx.shareID, "a@example.com")
	assert.True(t, code.Is(err, code.ErrorShareSelfInvite))

	// 已受邀的接收者不能重复邀请
	_, err = fx.svc.Share.InviteUser(ctx, fx.ownerA, fx.shareID, "b@example.com")
	assert.True(t, code.Is(err, code.ErrorShareUserExists))

	_, err = fx.svc.Share.InviteUser(ctx, fx.ownerA, fx.shareID, "nobody@example.com")
	assert.True(t, code.Is(err, code.ErrorUserNotFound))
}

func TestRespondTransitions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	uidA := registerUser(t, svc, "a@example.com")
	uidB := registerUser(t, svc, "b@example.com")
	uidC := registerUser(t, svc, "c@example.com")

	mustSave(t, svc, uidA, &dto.ItemSaveRequest{Name: "F", LogicalID: "f", LogicalType: 2})
	share, err := svc.Share.CreateShare(ctx, uidA, &dto.ShareCreateRequest{Type: 2, RootLogicalID: "f"})
	require.NoError(t, err)
	invitation, err := svc.Share.InviteUser(ctx, uidA, share.ID, "b@example.com")
	require.NoError(t, err)

	// 只有被邀请者本人可以应答
	_, err = svc.Share.Respond(ctx, uidC, invitation.ID, 1)
	assert.True(t, code.Is(err, code.ErrorNotShareParticipant))

	answered, err := svc.Share.Respond(ctx, uidB, invitation.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int(domain.ShareUserStatusAccepted), answered.Status)

	// Waiting → Accepted 只允许发生一次
	_, err = svc.Share.Respond(ctx, uidB, invitation.ID, 1)
	assert.True(t, code.Is(err, code.ErrorShareStatusTransition))

	// 已应答的邀请同样不能再拒绝
	_, err = svc.Share.Respond(ctx, uidB, invitation.ID, 2)
	assert.True(t, code.Is(err, code.ErrorShareStatusTransition))
}

func TestRespondAcceptCommitsVisibilityAtomically(t *testing.T) {
	ctx := context.Background()
	svc, d := newTestService(t)
	uidA := registerUser(t, svc, "a@example.com")
	uidB := registerUser(t, svc, "b@example.com")

	root := mustSave(t, svc, uidA, &dto.ItemSaveRequest{Name: "F", LogicalID: "f", LogicalType: 2})
	share, err := svc.Share.CreateShare(ctx, uidA, &dto.ShareCreateRequest{Type: 2, RootLogicalID: "f"})
	require.NoError(t, err)
	invitation, err := svc.Share.InviteUser(ctx, uidA, share.ID, "b@example.com")
	require.NoError(t, err)

	// 分享根条目在应答前被直接删掉，接受动作与对账在同一事务里执行
	// 对账发现根已不在，整个分享连同刚翻转的邀请状态一起收尾
	require.NoError(t, d.Items().Delete(ctx, root.ID))

	_, err = svc.Share.Respond(ctx, uidB, invitation.ID, 1)
	require.NoError(t, err)

	gone, err := d.Shares().GetByID(ctx, share.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// 不允许留下已接受却看不到任何条目的邀请行
	orphan, err := d.ShareUsers().GetByID(ctx, invitation.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan)

	ids, err := d.UserItems().ListItemIDsByUser(ctx, uidB)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRejectedInvitationGrantsNothing(t *testing.T) {
	ctx := context.Background()
	svc, d := newTestService(t)
	uidA := registerUser(t, svc, "a@example.com")
	uidB := registerUser(t, svc, "b@example.com")

	mustSave(t, svc, uidA, &dto.ItemSaveRequest{Name: "F", LogicalID: "f", LogicalType: 2})
	share, err := svc.Share.CreateShare(ctx, uidA, &dto.ShareCreateRequest{Type: 2, RootLogicalID: "f"})
	require.NoError(t, err)
	invitation, err := svc.Share.InviteUser(ctx, uidA, share.ID, "b@example.com")
	require.NoError(t, err)

	_, err = svc.Share.Respond(ctx, uidB, invitation.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Reconcile.ReconcileShare(ctx, share.ID))

	ids, err := d.UserItems().ListItemIDsByUser(ctx, uidB)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDeleteShareRevokesVisibilityImmediately(t *testing.T) {
	ctx := context.Background()
	fx := newSharedFolderFixture(t)

	// 非拥有者不能撤销
	err := fx.svc.Share.DeleteShare(ctx, fx.userB, fx.shareID)
	assert.True(t, code.Is(err, code.ErrorNotShareOwner))

	require.NoError(t, fx.svc.Share.DeleteShare(ctx, fx.ownerA, fx.shareID))

	assert.Empty(t, fx.visibleItemIDs(t, fx.userB))

	// 所有者自己的条目不受影响
	ownerVisible := fx.visibleItemIDs(t, fx.ownerA)
	assert.True(t, ownerVisible[fx.f1.ID])
	assert.True(t, ownerVisible[fx.n1.ID])

	// 条目的分享归属标记被清除
	root, err := fx.dao.Items().GetByID(ctx, fx.f1.ID)
	require.NoError(t, err)
	assert.Zero(t, root.ShareID)

	var deleted []string
	for _, change := range deltaAll(t, fx.svc, fx.userB) {
		if change.Type == int(domain.ChangeTypeDelete) {
			deleted = append(deleted, change.ItemID)
		}
	}
	assert.ElementsMatch(t, []string{fx.f1.ID, fx.n1.ID, fx.r1.ID}, deleted)
}

func TestListSharesAndInvitations(t *testing.T) {
	ctx := context.Background()
	fx := newSharedFolderFixture(t)

	shares, err := fx.svc.Share.ListShares(ctx, fx.ownerA)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, fx.shareID, shares[0].ID)
	assert.Equal(t, "f1", shares[0].FolderID)
	assert.True(t, shares[0].Recursive)

	invitations, err := fx.svc.Share.ListInvitations(ctx, fx.userB)
	require.NoError(t, err)
	require.Len(t, invitations, 1)
	assert.Equal(t, int(domain.ShareUserStatusAccepted), invitations[0].Status)
}

func TestSharingDisabledAccount(t *testing.T) {
	ctx := context.Background()
	svc, d := newTestService(t)
	uid := registerUser(t, svc, "a@example.com")
	mustSave(t, svc, uid, &dto.ItemSaveRequest{Name: "F", LogicalID: "f", LogicalType: 2})

	require.NoError(t, d.DB().Model(&model.User{}).Where("uid = ?", uid).Update("can_share", false).Error)

	_, err := svc.Share.CreateShare(ctx, uid, &dto.ShareCreateRequest{Type: 2, RootLogicalID: "f"})
	assert.True(t, code.Is(err, code.ErrorSharingDisabled))
}
