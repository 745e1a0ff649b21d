package dao

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "dao.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, ""))
	return New(db)
}

func createItem(t *testing.T, d *Dao, ownerUID int64, name string) *domain.Item {
	t.Helper()
	item := &domain.Item{
		ID:          uuid.NewString(),
		OwnerUID:    ownerUID,
		Name:        name,
		MimeType:    "text/markdown",
		Content:     []byte("body"),
		ContentSize: 4,
		LogicalID:   uuid.NewString(),
		LogicalType: domain.ItemTypeNote,
	}
	require.NoError(t, d.Items().Create(context.Background(), item))
	return item
}

func TestExclusivelyOwnedItemIDs(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	private := createItem(t, d, 1, "private.md")
	shared := createItem(t, d, 1, "shared.md")
	other := createItem(t, d, 2, "other.md")

	require.NoError(t, d.UserItems().Add(ctx, 1, private.ID))
	require.NoError(t, d.UserItems().Add(ctx, 1, shared.ID))
	require.NoError(t, d.UserItems().Add(ctx, 2, shared.ID))
	require.NoError(t, d.UserItems().Add(ctx, 2, other.ID))

	// 仅被一行可见性关联覆盖且该行属于本人的条目才算独占
	ids, err := d.UserItems().ExclusivelyOwnedItemIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{private.ID}, ids)

	ids, err = d.UserItems().ExclusivelyOwnedItemIDs(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID}, ids)

	// 撤销他人可见性后条目回到独占集合
	require.NoError(t, d.UserItems().Remove(ctx, 2, shared.ID))
	ids, err = d.UserItems().ExclusivelyOwnedItemIDs(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{private.ID, shared.ID}, ids)
}

func TestListVisibleChildrenCursorIsMonotone(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	names := []string{"a.md", "b.md", "c.md", "d.md"}
	for _, name := range names {
		item := createItem(t, d, 1, name)
		require.NoError(t, d.UserItems().Add(ctx, 1, item.ID))
	}
	// 深层路径不属于顶层列表
	nested := createItem(t, d, 1, "docs/deep.md")
	require.NoError(t, d.UserItems().Add(ctx, 1, nested.ID))

	var (
		cursor int64
		seen   []string
	)
	for {
		rows, err := d.Items().ListVisibleChildren(ctx, 1, "", false, cursor, 2)
		require.NoError(t, err)
		if len(rows) == 0 {
			break
		}
		for _, row := range rows {
			assert.Greater(t, row.Cursor, cursor)
			cursor = row.Cursor
			seen = append(seen, row.Name)
		}
	}
	assert.Equal(t, names, seen)
}

func TestListVisibleChildrenWildcardDepth(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	for _, name := range []string{"docs/a.md", "docs/b.md", "docs/sub/c.md", "top.md"} {
		item := createItem(t, d, 1, name)
		require.NoError(t, d.UserItems().Add(ctx, 1, item.ID))
	}

	rows, err := d.Items().ListVisibleChildren(ctx, 1, "docs", true, 0, 100)
	require.NoError(t, err)
	var names []string
	for _, row := range rows {
		names = append(names, row.Name)
	}
	assert.ElementsMatch(t, []string{"docs/a.md", "docs/b.md"}, names)

	rows, err = d.Items().ListVisibleChildren(ctx, 1, "docs", false, 0, 100)
	require.NoError(t, err)
	names = names[:0]
	for _, row := range rows {
		names = append(names, row.Name)
	}
	assert.ElementsMatch(t, []string{"docs/a.md", "docs/b.md", "docs/sub/c.md"}, names)
}
