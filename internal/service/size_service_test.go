package service

import (
	"context"
	"testing"

	"github.com/haierkeys/note-share-sync-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateUserTotalSizeCoversOwnedAndShared(t *testing.T) {
	ctx := context.Background()
	fx := newSharedFolderFixture(t)

	// B 自己没有条目，总量完全来自分享获得的可见条目
	totalB, err := fx.svc.Size.CalculateUserTotalSize(ctx, fx.userB)
	require.NoError(t, err)
	wantB := fx.f1.ContentSize + fx.n1.ContentSize + fx.r1.ContentSize
	assert.Equal(t, wantB, totalB)

	totalA, err := fx.svc.Size.CalculateUserTotalSize(ctx, fx.ownerA)
	require.NoError(t, err)
	wantA := wantB + fx.f2.ContentSize + fx.n2.ContentSize
	assert.Equal(t, wantA, totalA)
}

func TestUpdateTotalSizesPersistsMatchingTotals(t *testing.T) {
	ctx := context.Background()
	fx := newSharedFolderFixture(t)

	require.NoError(t, fx.svc.Size.UpdateTotalSizes(ctx))

	for _, uid := range []int64{fx.ownerA, fx.userB} {
		want, err := fx.svc.Size.CalculateUserTotalSize(ctx, uid)
		require.NoError(t, err)

		user, err := fx.svc.User.Get(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, want, user.TotalSize, "uid %d", uid)
	}
}

func TestUpdateTotalSizesReentrantCallFailsFast(t *testing.T) {
	ctx := context.Background()
	fx := newSharedFolderFixture(t)

	size := fx.svc.Size.(*sizeService)
	size.running.Store(true)

	err := fx.svc.Size.UpdateTotalSizes(ctx)
	assert.True(t, code.Is(err, code.ErrorSizeJobRunning))

	size.running.Store(false)
	require.NoError(t, fx.svc.Size.UpdateTotalSizes(ctx))
}

func TestUpdateTotalSizesAdvancesCursor(t *testing.T) {
	ctx := context.Background()
	fx := newSharedFolderFixture(t)

	require.NoError(t, fx.svc.Size.UpdateTotalSizes(ctx))

	raw, err := fx.dao.KeyValues().Get(ctx, sizeCursorKey)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	// 第二次运行从游标续走，没有新变更时立即返回
	require.NoError(t, fx.svc.Size.UpdateTotalSizes(ctx))
	raw2, err := fx.dao.KeyValues().Get(ctx, sizeCursorKey)
	require.NoError(t, err)
	assert.Equal(t, raw, raw2)
}
