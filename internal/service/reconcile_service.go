package service

import (
	"context"
	"strconv"

	"github.com/haierkeys/note-share-sync-service/internal/dao"
	"github.com/haierkeys/note-share-sync-service/internal/domain"

	"go.uber.org/zap"
)

// reconcileCursorKey 后台对账任务的进度游标键
const reconcileCursorKey = "reconcile:cursor"

// ReconcileService defines the share reconciliation service interface
// ReconcileService 定义分享对账服务接口
type ReconcileService interface {
	// Run walks the change feed from the persisted cursor and reconciles
	// every share affected by new changes
	// Run 从持久化游标向前消费变更并对账所有受影响的分享
	Run(ctx context.Context) error

	// ReconcileShare synchronously reconciles one share, used by disruptive
	// operations (accept, revoke, root deletion)
	// ReconcileShare 同步对账单个分享，供破坏性操作直接调用
	ReconcileShare(ctx context.Context, shareID int64) error

	// ReconcileShareTx reconciles one share on the caller's transaction, so a
	// status flip and the visibility it implies commit or roll back together
	// ReconcileShareTx 在调用方事务上对账单个分享，状态翻转与其带来的可见性
	// 要么一起提交要么一起回滚
	ReconcileShareTx(ctx context.Context, tx *dao.Dao, shareID int64) error
}

// reconcileService implementation of ReconcileService interface
// reconcileService 实现 ReconcileService 接口
type reconcileService struct {
	dao    *dao.Dao
	logger *zap.Logger
	config *ServiceConfig
}

// NewReconcileService creates ReconcileService instance
// NewReconcileService 创建 ReconcileService 实例
func NewReconcileService(d *dao.Dao, logger *zap.Logger, config *ServiceConfig) ReconcileService {
	return &reconcileService{dao: d, logger: logger, config: config}
}

// Run 消费新变更，推导受影响的分享并逐个对账
// 游标只在整批对账成功后推进，崩溃后重跑由对账的幂等性兜底
func (s *reconcileService) Run(ctx context.Context) error {
	raw, err := s.dao.KeyValues().Get(ctx, reconcileCursorKey)
	if err != nil {
		return err
	}
	cursor, _ := strconv.ParseInt(raw, 10, 64)

	batch := s.config.App.changeBatchSize()
	for {
		changes, err := s.dao.Changes().ListSince(ctx, cursor, batch)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}

		affected, err := s.affectedShares(ctx, changes)
		if err != nil {
			return err
		}
		for shareID := range affected {
			if err := s.ReconcileShare(ctx, shareID); err != nil {
				return err
			}
		}

		cursor = changes[len(changes)-1].ID
		if err := s.dao.KeyValues().Set(ctx, reconcileCursorKey, strconv.FormatInt(cursor, 10)); err != nil {
			return err
		}
		if len(changes) < batch {
			return nil
		}
	}
}

// affectedShares 从一批变更推导需要对账的分享集合
// 变更引用的条目可能已被删除，此时只能依赖快照中的 share_id
func (s *reconcileService) affectedShares(ctx context.Context, changes []*domain.Change) (map[int64]bool, error) {
	affected := make(map[int64]bool)
	seenItems := make(map[string]bool)

	for _, change := range changes {
		if snapshot := domain.DecodeSnapshot(change.PreviousItem); snapshot != nil && snapshot.ShareID != 0 {
			affected[snapshot.ShareID] = true
		}

		if seenItems[change.ItemID] {
			continue
		}
		seenItems[change.ItemID] = true

		item, err := s.dao.Items().GetByID(ctx, change.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			// 条目已删除，属于正常竞态，跳过
			s.logger.Debug("change references a deleted item",
				zap.String("item_id", change.ItemID),
				zap.Int64("cursor", change.ID))
			continue
		}
		if item.ShareID != 0 {
			affected[item.ShareID] = true
		}
		if !item.IsStructured() {
			continue
		}

		root := s.rootAncestor(ctx, item)
		if root == nil || root.LogicalID == "" {
			continue
		}
		share, err := s.dao.Shares().GetByRootLogicalID(ctx, root.OwnerUID, root.LogicalID)
		if err != nil {
			return nil, err
		}
		if share != nil {
			affected[share.ID] = true
		}
	}
	return affected, nil
}

// rootAncestor 沿 parent_id 链向上走到根条目
// 用已访问集合做环检测，成环或父链断裂时返回当前已到达的条目
func (s *reconcileService) rootAncestor(ctx context.Context, item *domain.Item) *domain.Item {
	visited := make(map[string]bool)
	current := item
	for current.ParentID != "" {
		if visited[current.LogicalID] {
			s.logger.Warn("parent chain cycle detected",
				zap.String("item_id", current.ID),
				zap.String("logical_id", current.LogicalID))
			return current
		}
		visited[current.LogicalID] = true

		parent, err := s.dao.Items().GetByLogicalID(ctx, current.OwnerUID, current.ParentID)
		if err != nil || parent == nil {
			// 父条目缺失，父链到此为止
			return current
		}
		current = parent
	}
	return current
}

// ReconcileShare 把单个分享的可见性推到期望状态
// 两次连续运行且无中间写入时，第二次必须零变更
func (s *reconcileService) ReconcileShare(ctx context.Context, shareID int64) error {
	return s.dao.Transaction(func(tx *dao.Dao) error {
		return s.ReconcileShareTx(ctx, tx, shareID)
	})
}

// ReconcileShareTx 在调用方事务上执行单个分享的对账
func (s *reconcileService) ReconcileShareTx(ctx context.Context, tx *dao.Dao, shareID int64) error {
	share, err := tx.Shares().GetByID(ctx, shareID)
	if err != nil {
		return err
	}
	if share == nil {
		// 分享已删除，无事可做
		s.logger.Debug("reconcile skipped, share no longer exists", zap.Int64("share_id", shareID))
		return nil
	}

	root, err := tx.Items().GetByLogicalID(ctx, share.OwnerUID, share.RootLogicalID())
	if err != nil {
		return err
	}
	if root == nil {
		// 分享根条目已删除：清理分享本身并撤销全部残留可见性
		return s.tearDownShare(ctx, tx, share)
	}

	desired, err := s.desiredItems(ctx, tx, share, root)
	if err != nil {
		return err
	}

	marked, err := tx.Items().ListByShareID(ctx, share.ID)
	if err != nil {
		return err
	}

	recipients, err := tx.ShareUsers().ListAcceptedByShare(ctx, share.ID)
	if err != nil {
		return err
	}

	// 离开子树的条目：撤销归属标记并回收接收者可见性
	for _, item := range marked {
		if _, ok := desired[item.ID]; ok {
			continue
		}
		if err := tx.Items().UpdateShareID(ctx, item.ID, 0); err != nil {
			return err
		}
		snapshot := itemSnapshot(ctx, tx, item)
		for _, recipient := range recipients {
			existing, err := tx.UserItems().Get(ctx, recipient.UID, item.ID)
			if err != nil {
				return err
			}
			if existing == nil {
				continue
			}
			if err := revokeVisibility(ctx, tx, recipient.UID, item, snapshot); err != nil {
				return err
			}
		}
	}

	// 进入子树的条目：补归属标记并授予接收者可见性
	for _, item := range desired {
		if item.ShareID != share.ID {
			if err := tx.Items().UpdateShareID(ctx, item.ID, share.ID); err != nil {
				return err
			}
		}
		for _, recipient := range recipients {
			existing, err := tx.UserItems().Get(ctx, recipient.UID, item.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			if err := grantVisibility(ctx, tx, recipient.UID, item); err != nil {
				return err
			}
		}
	}
	return nil
}

// desiredItems 计算分享子树的期望条目集合
// 自根条目向下做显式 BFS，visited 集合防环；共享笔记引用的资源一并纳入
func (s *reconcileService) desiredItems(ctx context.Context, d *dao.Dao, share *domain.Share, root *domain.Item) (map[string]*domain.Item, error) {
	desired := make(map[string]*domain.Item)
	visited := make(map[string]bool)

	queue := []*domain.Item{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.LogicalID != "" {
			if visited[current.LogicalID] {
				continue
			}
			visited[current.LogicalID] = true
		}
		desired[current.ID] = current

		if current.LogicalType == domain.ItemTypeNote {
			resourceIDs, err := d.ItemResources().ListResourceIDsByItem(ctx, current.ID)
			if err != nil {
				return nil, err
			}
			for _, rid := range resourceIDs {
				resource, err := d.Items().GetByLogicalID(ctx, share.OwnerUID, rid)
				if err != nil {
					return nil, err
				}
				if resource == nil {
					// 资源引用悬空，跳过并记录，不重试
					s.logger.Info("shared note references a missing resource",
						zap.String("note_id", current.ID),
						zap.String("resource_logical_id", rid))
					continue
				}
				queue = append(queue, resource)
			}
		}

		if current.LogicalType != domain.ItemTypeFolder || current.LogicalID == "" {
			continue
		}
		children, err := d.Items().ListChildrenLogical(ctx, share.OwnerUID, current.LogicalID)
		if err != nil {
			return nil, err
		}
		queue = append(queue, children...)
	}
	return desired, nil
}

// tearDownShare 分享根条目已删除时的收尾：删除分享、邀请与全部残留可见性
func (s *reconcileService) tearDownShare(ctx context.Context, tx *dao.Dao, share *domain.Share) error {
	marked, err := tx.Items().ListByShareID(ctx, share.ID)
	if err != nil {
		return err
	}
	recipients, err := tx.ShareUsers().ListAcceptedByShare(ctx, share.ID)
	if err != nil {
		return err
	}

	for _, item := range marked {
		if err := tx.Items().UpdateShareID(ctx, item.ID, 0); err != nil {
			return err
		}
		snapshot := itemSnapshot(ctx, tx, item)
		for _, recipient := range recipients {
			existing, err := tx.UserItems().Get(ctx, recipient.UID, item.ID)
			if err != nil {
				return err
			}
			if existing == nil {
				continue
			}
			if err := revokeVisibility(ctx, tx, recipient.UID, item, snapshot); err != nil {
				return err
			}
		}
	}
	if err := tx.ShareUsers().DeleteByShare(ctx, share.ID); err != nil {
		return err
	}
	if err := tx.Shares().Delete(ctx, share.ID); err != nil {
		return err
	}

	s.logger.Info("share torn down, root item was deleted",
		zap.Int64("share_id", share.ID),
		zap.Int64("owner_uid", share.OwnerUID))
	return nil
}
