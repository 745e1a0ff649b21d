package service

import (
	"context"

	"github.com/haierkeys/note-share-sync-service/internal/dao"
	"github.com/haierkeys/note-share-sync-service/internal/domain"
)

// grantVisibility inserts a User-Item Index row and records the matching
// Create Change. Item creation is only ever observed through this insertion.
// grantVisibility 建立可见性关联并记录对应的 Create 变更。
// 条目的创建只会以该插入的形式被观察到。
func grantVisibility(ctx context.Context, d *dao.Dao, uid int64, item *domain.Item) error {
	if err := d.UserItems().Add(ctx, uid, item.ID); err != nil {
		return err
	}
	return d.Changes().Create(ctx, &domain.Change{
		ItemID:   item.ID,
		ItemName: item.Name,
		Type:     domain.ChangeTypeCreate,
		UID:      uid,
	})
}

// revokeVisibility removes a User-Item Index row and records the matching
// Delete Change carrying the pre-image snapshot.
// revokeVisibility 删除可见性关联并记录携带写前快照的 Delete 变更。
func revokeVisibility(ctx context.Context, d *dao.Dao, uid int64, item *domain.Item, snapshot string) error {
	if err := d.UserItems().Remove(ctx, uid, item.ID); err != nil {
		return err
	}
	return d.Changes().Create(ctx, &domain.Change{
		ItemID:       item.ID,
		ItemName:     item.Name,
		Type:         domain.ChangeTypeDelete,
		PreviousItem: snapshot,
		UID:          uid,
	})
}

// itemSnapshot 构建条目的写前快照
func itemSnapshot(ctx context.Context, d *dao.Dao, item *domain.Item) string {
	s := &domain.ItemSnapshot{
		Name:     item.Name,
		ParentID: item.ParentID,
		ShareID:  item.ShareID,
	}
	if item.LogicalType == domain.ItemTypeNote {
		if ids, err := d.ItemResources().ListResourceIDsByItem(ctx, item.ID); err == nil {
			s.ResourceIDs = ids
		}
	}
	return domain.EncodeSnapshot(s)
}
