package service

import (
	"context"

	"github.com/haierkeys/note-share-sync-service/global"
	"github.com/haierkeys/note-share-sync-service/internal/dao"
	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/internal/dto"
	"github.com/haierkeys/note-share-sync-service/pkg/code"
	"github.com/haierkeys/note-share-sync-service/pkg/storage"
	"github.com/haierkeys/note-share-sync-service/pkg/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ItemService defines the item business service interface
// ItemService 定义条目业务服务接口
type ItemService interface {
	// Save creates or updates an item, keyed by the presence of ID
	// Save 创建或更新条目，依据是否携带 ID 区分
	Save(ctx context.Context, uid int64, req *dto.ItemSaveRequest) (*dto.ItemDTO, error)

	// Delete removes items with full cascade (share, index rows, resource links)
	// Delete 级联删除条目（分享、可见性关联、资源引用）
	Delete(ctx context.Context, uid int64, ids []string) error

	// LoadByName resolves an item address within the user's visible set
	// LoadByName 在用户可见集合内按地址解析条目
	LoadByName(ctx context.Context, uid int64, address string) (*dto.ItemDTO, error)

	// LoadByLogicalID resolves an item by its logical id in the owner namespace
	// LoadByLogicalID 在所有者命名空间内按逻辑 ID 解析条目
	LoadByLogicalID(ctx context.Context, uid int64, logicalID string) (*dto.ItemDTO, error)

	// Children lists visible items under a path prefix with cursor pagination
	// Children 按路径前缀游标分页列出可见条目
	Children(ctx context.Context, uid int64, address string, cursor int64, limit int) (*dto.ItemPageDTO, error)

	// PutItems processes a batch upload, isolating per-entry failures
	// PutItems 处理批量上传，单条失败不影响其余条目
	PutItems(ctx context.Context, uid int64, entries []*dto.ItemPutEntry) []*dto.ItemPutResult
}

// itemService implementation of ItemService interface
// itemService 实现 ItemService 接口
type itemService struct {
	dao    *dao.Dao
	logger *zap.Logger
	config *ServiceConfig
}

// NewItemService creates ItemService instance
// NewItemService 创建 ItemService 实例
func NewItemService(d *dao.Dao, logger *zap.Logger, config *ServiceConfig) ItemService {
	return &itemService{dao: d, logger: logger, config: config}
}

// Save creates or updates an item
// Save 创建或更新条目
func (s *itemService) Save(ctx context.Context, uid int64, req *dto.ItemSaveRequest) (*dto.ItemDTO, error) {
	name, wildcard, err := util.ParseAddress(req.Name)
	if err != nil || wildcard || name == "" {
		return nil, code.ErrorItemInvalid.WithDetails("item name is empty or malformed")
	}

	user, err := s.dao.Users().GetByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if user == nil {
		return nil, code.ErrorUserNotFound
	}
	if !user.Enabled {
		return nil, code.ErrorUserDisabled
	}

	if err := s.checkQuota(user, int64(len(req.Content))); err != nil {
		return nil, err
	}

	// share_id 必须指向真实存在的分享
	if req.ShareID != 0 {
		share, err := s.dao.Shares().GetByID(ctx, req.ShareID)
		if err != nil {
			return nil, code.ErrorServerInternal.WithDetails(err.Error())
		}
		if share == nil {
			return nil, code.ErrorItemShareMissing
		}
	}

	var saved *domain.Item
	if req.ID == "" {
		saved, err = s.create(ctx, uid, name, req)
	} else {
		saved, err = s.update(ctx, uid, name, req)
	}
	if err != nil {
		return nil, err
	}

	global.KickReconcile()
	return dto.ItemToDTO(saved), nil
}

// checkQuota 校验单条目与账户总容量配额
func (s *itemService) checkQuota(user *domain.User, size int64) error {
	maxItem := user.MaxItemSize
	if maxItem == 0 {
		maxItem = s.config.User.MaxItemSize
	}
	if maxItem > 0 && size > maxItem {
		return code.ErrorPayloadTooLarge
	}

	maxTotal := user.MaxTotalSize
	if maxTotal == 0 {
		maxTotal = s.config.User.MaxTotalSize
	}
	if maxTotal > 0 && user.TotalSize+size > maxTotal {
		return code.ErrorOverTotalQuota
	}
	return nil
}

// create 创建新条目：条目行、所有者可见性关联与 Create 变更在同一事务内落库
func (s *itemService) create(ctx context.Context, uid int64, name string, req *dto.ItemSaveRequest) (*domain.Item, error) {
	existing, err := s.dao.Items().GetByName(ctx, uid, name)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if existing != nil {
		// 名称已占用时退化为更新
		req.ID = existing.ID
		return s.update(ctx, uid, name, req)
	}

	storageType := storage.Database
	if global.ContentStorage != nil {
		storageType = global.ContentStorage.Type()
	}

	item := &domain.Item{
		ID:             uuid.New().String(),
		OwnerUID:       uid,
		Name:           name,
		MimeType:       req.MimeType,
		Content:        req.Content,
		ContentSize:    int64(len(req.Content)),
		ContentStorage: storageType,
		LogicalID:      req.LogicalID,
		LogicalType:    domain.ItemType(req.LogicalType),
		ParentID:       req.ParentID,
		ShareID:        req.ShareID,
	}

	err = s.dao.Transaction(func(tx *dao.Dao) error {
		if err := tx.Items().Create(ctx, item); err != nil {
			return err
		}
		if item.LogicalType == domain.ItemTypeNote && len(req.ResourceIDs) > 0 {
			if err := tx.ItemResources().ReplaceForItem(ctx, item.ID, req.ResourceIDs); err != nil {
				return err
			}
		}
		return grantVisibility(ctx, tx, uid, item)
	})
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	s.logger.Info("item created",
		zap.Int64("uid", uid),
		zap.String("item_id", item.ID),
		zap.String("name", item.Name))
	return item, nil
}

// update 更新条目：先取写前快照，再对每个当前可见的用户追加 Update 变更
func (s *itemService) update(ctx context.Context, uid int64, name string, req *dto.ItemSaveRequest) (*domain.Item, error) {
	pre, err := s.dao.Items().GetByID(ctx, req.ID)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if pre == nil {
		return nil, code.ErrorItemNotFound
	}
	if pre.OwnerUID != uid {
		return nil, code.ErrorForbidden
	}

	// 改名时名称不能撞上同一所有者的另一条目
	if name != pre.Name {
		taken, err := s.dao.Items().GetByName(ctx, uid, name)
		if err != nil {
			return nil, code.ErrorServerInternal.WithDetails(err.Error())
		}
		if taken != nil && taken.ID != pre.ID {
			return nil, code.ErrorItemNameTaken.WithDetails(name)
		}
	}

	snapshot := itemSnapshot(ctx, s.dao, pre)

	item := &domain.Item{
		ID:             pre.ID,
		OwnerUID:       pre.OwnerUID,
		Name:           name,
		MimeType:       req.MimeType,
		Content:        req.Content,
		ContentSize:    int64(len(req.Content)),
		ContentStorage: pre.ContentStorage,
		LogicalID:      req.LogicalID,
		LogicalType:    domain.ItemType(req.LogicalType),
		ParentID:       req.ParentID,
		ShareID:        pre.ShareID,
		CreatedAt:      pre.CreatedAt,
	}

	err = s.dao.Transaction(func(tx *dao.Dao) error {
		if err := tx.Items().Update(ctx, item); err != nil {
			return err
		}
		if item.LogicalType == domain.ItemTypeNote {
			if err := tx.ItemResources().ReplaceForItem(ctx, item.ID, req.ResourceIDs); err != nil {
				return err
			}
		}
		viewers, err := tx.UserItems().ListByItem(ctx, item.ID)
		if err != nil {
			return err
		}
		for _, v := range viewers {
			change := &domain.Change{
				ItemID:       item.ID,
				ItemName:     item.Name,
				Type:         domain.ChangeTypeUpdate,
				PreviousItem: snapshot,
				UID:          v.UID,
			}
			if err := tx.Changes().Create(ctx, change); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return item, nil
}

// Delete removes items with full cascade
// Delete 级联删除条目
func (s *itemService) Delete(ctx context.Context, uid int64, ids []string) error {
	for _, id := range ids {
		if err := s.deleteOne(ctx, uid, id); err != nil {
			return err
		}
	}
	global.KickReconcile()
	return nil
}

// deleteOne 在单个事务内删除一个条目
// 条目不存在视为已删除，不报错
func (s *itemService) deleteOne(ctx context.Context, uid int64, id string) error {
	item, err := s.dao.Items().GetByID(ctx, id)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	if item == nil {
		return nil
	}
	if item.OwnerUID != uid {
		return code.ErrorForbidden
	}

	snapshot := itemSnapshot(ctx, s.dao, item)

	err = s.dao.Transaction(func(tx *dao.Dao) error {
		// 作为分享根时连带删除分享及其全部邀请，并回收接收者对整棵
		// 子树的可见性；所有者自己的子条目不受级联影响
		if item.LogicalID != "" {
			share, err := tx.Shares().GetByRootLogicalID(ctx, item.OwnerUID, item.LogicalID)
			if err != nil {
				return err
			}
			if share != nil {
				marked, err := tx.Items().ListByShareID(ctx, share.ID)
				if err != nil {
					return err
				}
				recipients, err := tx.ShareUsers().ListAcceptedByShare(ctx, share.ID)
				if err != nil {
					return err
				}
				for _, m := range marked {
					if m.ID == item.ID {
						// 根条目自身随后与其余可见者一起处理
						continue
					}
					if err := tx.Items().UpdateShareID(ctx, m.ID, 0); err != nil {
						return err
					}
					ms := itemSnapshot(ctx, tx, m)
					for _, recipient := range recipients {
						existing, err := tx.UserItems().Get(ctx, recipient.UID, m.ID)
						if err != nil {
							return err
						}
						if existing == nil {
							continue
						}
						if err := revokeVisibility(ctx, tx, recipient.UID, m, ms); err != nil {
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
			}
		}

		viewers, err := tx.UserItems().ListByItem(ctx, item.ID)
		if err != nil {
			return err
		}
		for _, v := range viewers {
			if err := revokeVisibility(ctx, tx, v.UID, item, snapshot); err != nil {
				return err
			}
		}

		if err := tx.ItemResources().DeleteByItem(ctx, item.ID); err != nil {
			return err
		}
		return tx.Items().Delete(ctx, item.ID)
	})
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}

	// 外部存储中的内容副本尽力清理，失败只记录
	if item.ContentStorage != storage.Database && global.ContentStorage != nil {
		if err := global.ContentStorage.Delete(ctx, item.ID); err != nil {
			s.logger.Warn("item content cleanup failed",
				zap.String("item_id", item.ID),
				zap.String("storage", item.ContentStorage),
				zap.Error(err))
		}
	}

	s.logger.Info("item deleted",
		zap.Int64("uid", uid),
		zap.String("item_id", item.ID),
		zap.String("name", item.Name))
	return nil
}

// LoadByName resolves an item address within the user's visible set
// LoadByName 在用户可见集合内按地址解析条目
func (s *itemService) LoadByName(ctx context.Context, uid int64, address string) (*dto.ItemDTO, error) {
	name, wildcard, err := util.ParseAddress(address)
	if err != nil || wildcard || name == "" {
		return nil, code.ErrorInvalidParams.WithDetails("malformed item address")
	}
	item, err := s.dao.Items().GetVisibleByName(ctx, uid, name)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if item == nil {
		return nil, code.ErrorItemNotFound
	}
	return dto.ItemToDTO(item), nil
}

// LoadByLogicalID resolves an item by logical id in the owner namespace
// LoadByLogicalID 在所有者命名空间内按逻辑 ID 解析条目
func (s *itemService) LoadByLogicalID(ctx context.Context, uid int64, logicalID string) (*dto.ItemDTO, error) {
	if logicalID == "" {
		return nil, code.ErrorInvalidParams.WithDetails("logical id is empty")
	}
	item, err := s.dao.Items().GetByLogicalID(ctx, uid, logicalID)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if item == nil {
		return nil, code.ErrorItemNotFound
	}
	return dto.ItemToDTO(item), nil
}

// Children lists visible items under a path prefix
// Children 按路径前缀列出可见条目
func (s *itemService) Children(ctx context.Context, uid int64, address string, cursor int64, limit int) (*dto.ItemPageDTO, error) {
	prefix, wildcard, err := util.ParseAddress(address)
	if err != nil {
		return nil, code.ErrorInvalidParams.WithDetails("malformed item address")
	}

	limit = s.config.App.pageSize(limit)
	rows, err := s.dao.Items().ListVisibleChildren(ctx, uid, prefix, wildcard, cursor, limit+1)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	page := &dto.ItemPageDTO{
		Items:   make([]*dto.ItemDTO, 0, len(rows)),
		Cursor:  cursor,
		HasMore: hasMore,
	}
	for _, row := range rows {
		d := dto.ItemToDTO(row.Item)
		d.Content = nil // 列表不回传内容
		page.Items = append(page.Items, d)
		page.Cursor = row.Cursor
	}
	return page, nil
}

// PutItems processes a batch upload with per-entry error isolation
// PutItems 处理批量上传，逐条隔离错误
func (s *itemService) PutItems(ctx context.Context, uid int64, entries []*dto.ItemPutEntry) []*dto.ItemPutResult {
	results := make([]*dto.ItemPutResult, 0, len(entries))
	for _, entry := range entries {
		result := &dto.ItemPutResult{Name: entry.Name}

		req := &dto.ItemSaveRequest{
			Name:        entry.Name,
			MimeType:    entry.MimeType,
			Content:     entry.Content,
			LogicalID:   entry.LogicalID,
			LogicalType: entry.LogicalType,
			ParentID:    entry.ParentID,
			ShareID:     entry.ShareID,
			ResourceIDs: entry.ResourceIDs,
		}

		// 批量上传按名称定位既有条目
		if name, wildcard, err := util.ParseAddress(entry.Name); err == nil && !wildcard && name != "" {
			if existing, err := s.dao.Items().GetByName(ctx, uid, name); err == nil && existing != nil {
				req.ID = existing.ID
			}
		}

		item, err := s.Save(ctx, uid, req)
		if err != nil {
			if c, ok := err.(*code.Code); ok {
				result.Code = c.Code()
				result.Error = c.Msg()
			} else {
				result.Code = code.ErrorServerInternal.Code()
				result.Error = err.Error()
			}
		} else {
			result.Item = item
		}
		results = append(results, result)
	}
	return results
}
