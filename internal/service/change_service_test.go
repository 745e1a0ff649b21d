package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/haierkeys/note-share-sync-service/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeltaPaginationNeverSkips(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	uid := registerUser(t, svc, "a@example.com")

	itemIDs := make(map[string]bool)
	for i := 0; i < 7; i++ {
		item := mustSave(t, svc, uid, &dto.ItemSaveRequest{
			Name:    fmt.Sprintf("item-%d", i),
			Content: []byte("x"),
		})
		itemIDs[item.ID] = true
	}

	seen := make(map[string]int)
	cursor := int64(0)
	pages := 0
	for {
		page, err := svc.Change.Delta(ctx, uid, cursor, 3)
		require.NoError(t, err)
		for _, change := range page.Items {
			require.Greater(t, change.Cursor, cursor)
			seen[change.ItemID]++
		}
		pages++
		if !page.HasMore {
			break
		}
		cursor = page.Cursor
	}

	assert.Equal(t, 3, pages)
	require.Len(t, seen, len(itemIDs))
	for id := range itemIDs {
		assert.Equal(t, 1, seen[id], "change for %s delivered exactly once", id)
	}
}

func TestDeltaIsReadOnlyAndRepeatable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	uid := registerUser(t, svc, "a@example.com")

	mustSave(t, svc, uid, &dto.ItemSaveRequest{Name: "a", Content: []byte("1")})
	mustSave(t, svc, uid, &dto.ItemSaveRequest{Name: "b", Content: []byte("2")})

	first, err := svc.Change.Delta(ctx, uid, 0, 10)
	require.NoError(t, err)
	second, err := svc.Change.Delta(ctx, uid, 0, 10)
	require.NoError(t, err)

	require.Len(t, second.Items, len(first.Items))
	for i := range first.Items {
		assert.Equal(t, first.Items[i].Cursor, second.Items[i].Cursor)
		assert.Equal(t, first.Items[i].ItemID, second.Items[i].ItemID)
	}
}

func TestDeltaScopedToUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	uidA := registerUser(t, svc, "a@example.com")
	uidB := registerUser(t, svc, "b@example.com")

	mustSave(t, svc, uidA, &dto.ItemSaveRequest{Name: "mine", Content: []byte("1")})

	page, err := svc.Change.Delta(ctx, uidB, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
}
