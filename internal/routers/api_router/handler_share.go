package api_router

import (
	"github.com/haierkeys/note-share-sync-service/internal/app"
	"github.com/haierkeys/note-share-sync-service/internal/dto"
	pkgapp "github.com/haierkeys/note-share-sync-service/pkg/app"
	"github.com/haierkeys/note-share-sync-service/pkg/code"
	"github.com/haierkeys/note-share-sync-service/pkg/convert"

	"github.com/gin-gonic/gin"
)

// ShareHandler 分享 API 路由处理器
type ShareHandler struct {
	*Handler
}

// NewShareHandler 创建 ShareHandler 实例
func NewShareHandler(app *app.App) *ShareHandler {
	return &ShareHandler{
		Handler: &Handler{App: app},
	}
}

// Create creates a share rooted at a logical item
// Create 以逻辑条目为根创建分享
func (h *ShareHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ShareCreateRequest{}

	if err := pkgapp.BindAndValid(c, params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	uid := pkgapp.GetUID(c)
	share, err := h.App.Service.Share.CreateShare(c.Request.Context(), uid, params)
	if err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(share))
}

// Invite invites a recipient by email
// Invite 按邮箱邀请接收者
func (h *ShareHandler) Invite(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ShareInviteRequest{}

	if err := pkgapp.BindAndValid(c, params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	shareID := convert.StrTo(c.Param("id")).MustInt64()
	uid := pkgapp.GetUID(c)
	su, err := h.App.Service.Share.InviteUser(c.Request.Context(), uid, shareID, params.Email)
	if err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(su))
}

// Respond accepts or rejects an invitation
// Respond 接受或拒绝邀请
func (h *ShareHandler) Respond(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ShareRespondRequest{}

	if err := pkgapp.BindAndValid(c, params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	shareUserID := convert.StrTo(c.Param("id")).MustInt64()
	uid := pkgapp.GetUID(c)
	su, err := h.App.Service.Share.Respond(c.Request.Context(), uid, shareUserID, params.Status)
	if err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(su))
}

// Delete revokes a share and withdraws recipient visibility
// Delete 撤销分享并回收接收者可见性
func (h *ShareHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	shareID := convert.StrTo(c.Param("id")).MustInt64()
	uid := pkgapp.GetUID(c)
	if err := h.App.Service.Share.DeleteShare(c.Request.Context(), uid, shareID); err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success)
}

// List lists shares owned by the caller
// List 列出调用者拥有的分享
func (h *ShareHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	shares, err := h.App.Service.Share.ListShares(c.Request.Context(), uid)
	if err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(shares))
}

// Invitations lists invitations received by the caller
// Invitations 列出调用者收到的邀请
func (h *ShareHandler) Invitations(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	invites, err := h.App.Service.Share.ListInvitations(c.Request.Context(), uid)
	if err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(invites))
}
