package convert

import (
	"testing"
	"time"

	"github.com/haierkeys/note-share-sync-service/pkg/timex"

	"github.com/stretchr/testify/assert"
)

type assignSrc struct {
	ID        int64
	Name      string
	Kind      int
	CreatedAt timex.Time
	Ignored   string
}

type assignKind int

type assignDst struct {
	ID        int64
	Name      string
	Kind      assignKind
	CreatedAt time.Time
	Extra     string
}

func TestStructAssign(t *testing.T) {
	now := timex.Now()
	src := &assignSrc{
		ID:        7,
		Name:      "note.md",
		Kind:      2,
		CreatedAt: now,
		Ignored:   "dropped",
	}

	dst := StructAssign(src, &assignDst{}).(*assignDst)

	assert.Equal(t, int64(7), dst.ID)
	assert.Equal(t, "note.md", dst.Name)
	// 同名字段按可转换类型自动转换
	assert.Equal(t, assignKind(2), dst.Kind)
	assert.True(t, dst.CreatedAt.Equal(time.Time(now)))
	// 目标独有字段保持零值
	assert.Empty(t, dst.Extra)
}
