package service

import (
	"context"

	"github.com/haierkeys/note-share-sync-service/global"
	"github.com/haierkeys/note-share-sync-service/internal/dao"
	"github.com/haierkeys/note-share-sync-service/internal/domain"
	"github.com/haierkeys/note-share-sync-service/internal/dto"
	"github.com/haierkeys/note-share-sync-service/pkg/code"

	"go.uber.org/zap"
)

// ShareService defines the share business service interface
// ShareService 定义分享业务服务接口
type ShareService interface {
	// CreateShare creates a share rooted at a logical item
	// CreateShare 以某个逻辑条目为根创建分享
	CreateShare(ctx context.Context, ownerUID int64, req *dto.ShareCreateRequest) (*dto.ShareDTO, error)

	// InviteUser invites a recipient by email
	// InviteUser 按邮箱邀请接收者
	InviteUser(ctx context.Context, actorUID int64, shareID int64, email string) (*dto.ShareUserDTO, error)

	// Respond accepts or rejects an invitation
	// Respond 接受或拒绝邀请
	Respond(ctx context.Context, actorUID int64, shareUserID int64, status int) (*dto.ShareUserDTO, error)

	// DeleteShare revokes a share and synchronously withdraws recipient visibility
	// DeleteShare 撤销分享并同步回收接收者可见性
	DeleteShare(ctx context.Context, actorUID int64, shareID int64) error

	// ListShares lists shares owned by a user
	// ListShares 列出用户拥有的分享
	ListShares(ctx context.Context, ownerUID int64) ([]*dto.ShareDTO, error)

	// ListInvitations lists invitations received by a user
	// ListInvitations 列出用户收到的邀请
	ListInvitations(ctx context.Context, uid int64) ([]*dto.ShareUserDTO, error)
}

// shareService implementation of ShareService interface
// shareService 实现 ShareService 接口
type shareService struct {
	dao       *dao.Dao
	reconcile ReconcileService
	logger    *zap.Logger
	config    *ServiceConfig
}

// NewShareService creates ShareService instance
// NewShareService 创建 ShareService 实例
func NewShareService(d *dao.Dao, reconcile ReconcileService, logger *zap.Logger, config *ServiceConfig) ShareService {
	return &shareService{dao: d, reconcile: reconcile, logger: logger, config: config}
}

// canShare 校验账户可用且启用了分享
func (s *shareService) canShare(ctx context.Context, uid int64) (*domain.User, error) {
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
	if !user.CanShare {
		return nil, code.ErrorSharingDisabled
	}
	return user, nil
}

// CreateShare creates a share rooted at a logical item
// CreateShare 以某个逻辑条目为根创建分享
func (s *shareService) CreateShare(ctx context.Context, ownerUID int64, req *dto.ShareCreateRequest) (*dto.ShareDTO, error) {
	if _, err := s.canShare(ctx, ownerUID); err != nil {
		return nil, err
	}

	shareType := domain.ShareType(req.Type)
	if shareType != domain.ShareTypeNote && shareType != domain.ShareTypeFolder {
		return nil, code.ErrorInvalidParams.WithDetails("unsupported share type")
	}

	root, err := s.dao.Items().GetByLogicalID(ctx, ownerUID, req.RootLogicalID)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if root == nil {
		return nil, code.ErrorItemNotFound
	}
	if shareType == domain.ShareTypeFolder {
		if root.LogicalType != domain.ItemTypeFolder {
			return nil, code.ErrorInvalidParams.WithDetails("share root is not a folder")
		}
		// 只有根文件夹可以被整树分享
		if root.ParentID != "" {
			return nil, code.ErrorShareRootHasParent
		}
	} else if root.LogicalType != domain.ItemTypeNote {
		return nil, code.ErrorInvalidParams.WithDetails("share root is not a note")
	}

	// 同一根条目的分享复用既有记录
	existing, err := s.dao.Shares().GetByRootLogicalID(ctx, ownerUID, req.RootLogicalID)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if existing != nil {
		return dto.ShareToDTO(existing), nil
	}

	share := &domain.Share{
		OwnerUID:  ownerUID,
		Type:      shareType,
		Recursive: shareType == domain.ShareTypeFolder,
	}
	if shareType == domain.ShareTypeFolder {
		share.FolderID = req.RootLogicalID
	} else {
		share.NoteID = req.RootLogicalID
	}

	err = s.dao.Transaction(func(tx *dao.Dao) error {
		if err := tx.Shares().Create(ctx, share); err != nil {
			return err
		}
		return tx.Items().UpdateShareID(ctx, root.ID, share.ID)
	})
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	global.KickReconcile()
	s.logger.Info("share created",
		zap.Int64("share_id", share.ID),
		zap.Int64("owner_uid", ownerUID),
		zap.String("root_logical_id", req.RootLogicalID))
	return dto.ShareToDTO(share), nil
}

// InviteUser invites a recipient by email
// InviteUser 按邮箱邀请接收者
func (s *shareService) InviteUser(ctx context.Context, actorUID int64, shareID int64, email string) (*dto.ShareUserDTO, error) {
	share, err := s.dao.Shares().GetByID(ctx, shareID)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if share == nil {
		return nil, code.ErrorShareNotFound
	}
	if share.OwnerUID != actorUID {
		return nil, code.ErrorNotShareOwner
	}
	if _, err := s.canShare(ctx, actorUID); err != nil {
		return nil, err
	}

	target, err := s.dao.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if target == nil {
		return nil, code.ErrorUserNotFound
	}
	if target.UID == actorUID {
		return nil, code.ErrorShareSelfInvite
	}
	if !target.Enabled {
		return nil, code.ErrorUserDisabled
	}
	if !target.CanShare {
		return nil, code.ErrorSharingDisabled
	}

	existing, err := s.dao.ShareUsers().GetByShareAndUser(ctx, shareID, target.UID)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if existing != nil {
		return nil, code.ErrorShareUserExists
	}

	shareUser := &domain.ShareUser{
		ShareID: shareID,
		UID:     target.UID,
		Status:  domain.ShareUserStatusWaiting,
	}
	if err := s.dao.ShareUsers().Create(ctx, shareUser); err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	s.logger.Info("share invitation created",
		zap.Int64("share_id", shareID),
		zap.Int64("recipient_uid", target.UID))
	return dto.ShareUserToDTO(shareUser), nil
}

// Respond accepts or rejects an invitation
// Respond 接受或拒绝邀请
// Waiting → Accepted 只允许发生一次，重复接受按非法状态转换拒绝
func (s *shareService) Respond(ctx context.Context, actorUID int64, shareUserID int64, status int) (*dto.ShareUserDTO, error) {
	newStatus := domain.ShareUserStatus(status)
	if newStatus != domain.ShareUserStatusAccepted && newStatus != domain.ShareUserStatusRejected {
		return nil, code.ErrorInvalidParams.WithDetails("status must be accepted or rejected")
	}

	shareUser, err := s.dao.ShareUsers().GetByID(ctx, shareUserID)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if shareUser == nil {
		return nil, code.ErrorShareUserNotFound
	}
	if shareUser.UID != actorUID {
		return nil, code.ErrorNotShareParticipant
	}
	if shareUser.Status != domain.ShareUserStatusWaiting {
		return nil, code.ErrorShareStatusTransition
	}

	if newStatus == domain.ShareUserStatusAccepted {
		// 状态翻转和随之而来的可见性授予放在同一事务里提交
		// 中途失败时不会留下已接受却什么都看不到的接收者
		err = s.dao.Transaction(func(tx *dao.Dao) error {
			if err := tx.ShareUsers().UpdateStatus(ctx, shareUserID, newStatus); err != nil {
				return err
			}
			return s.reconcile.ReconcileShareTx(ctx, tx, shareUser.ShareID)
		})
	} else {
		err = s.dao.ShareUsers().UpdateStatus(ctx, shareUserID, newStatus)
	}
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	shareUser.Status = newStatus

	s.logger.Info("share invitation answered",
		zap.Int64("share_user_id", shareUserID),
		zap.Int64("uid", actorUID),
		zap.Int("status", status))
	return dto.ShareUserToDTO(shareUser), nil
}

// DeleteShare revokes a share and synchronously withdraws recipient visibility
// DeleteShare 撤销分享并同步回收接收者可见性，不等待后台任务
func (s *shareService) DeleteShare(ctx context.Context, actorUID int64, shareID int64) error {
	share, err := s.dao.Shares().GetByID(ctx, shareID)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	if share == nil {
		return code.ErrorShareNotFound
	}
	if share.OwnerUID != actorUID {
		return code.ErrorNotShareOwner
	}

	marked, err := s.dao.Items().ListByShareID(ctx, shareID)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	recipients, err := s.dao.ShareUsers().ListAcceptedByShare(ctx, shareID)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}

	err = s.dao.Transaction(func(tx *dao.Dao) error {
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
		if err := tx.ShareUsers().DeleteByShare(ctx, shareID); err != nil {
			return err
		}
		return tx.Shares().Delete(ctx, shareID)
	})
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}

	s.logger.Info("share deleted",
		zap.Int64("share_id", shareID),
		zap.Int64("owner_uid", actorUID))
	return nil
}

// ListShares lists shares owned by a user
// ListShares 列出用户拥有的分享
func (s *shareService) ListShares(ctx context.Context, ownerUID int64) ([]*dto.ShareDTO, error) {
	shares, err := s.dao.Shares().ListByOwner(ctx, ownerUID)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	list := make([]*dto.ShareDTO, 0, len(shares))
	for _, share := range shares {
		list = append(list, dto.ShareToDTO(share))
	}
	return list, nil
}

// ListInvitations lists invitations received by a user
// ListInvitations 列出用户收到的邀请
func (s *shareService) ListInvitations(ctx context.Context, uid int64) ([]*dto.ShareUserDTO, error) {
	invitations, err := s.dao.ShareUsers().ListByUser(ctx, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	list := make([]*dto.ShareUserDTO, 0, len(invitations))
	for _, invitation := range invitations {
		list = append(list, dto.ShareUserToDTO(invitation))
	}
	return list, nil
}
