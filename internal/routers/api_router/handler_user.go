package api_router

import (
	"github.com/haierkeys/note-share-sync-service/internal/app"
	"github.com/haierkeys/note-share-sync-service/internal/dto"
	pkgapp "github.com/haierkeys/note-share-sync-service/pkg/app"
	"github.com/haierkeys/note-share-sync-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户 API 路由处理器
type UserHandler struct {
	*Handler
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(app *app.App) *UserHandler {
	return &UserHandler{
		Handler: &Handler{App: app},
	}
}

// Register creates an account with the default quotas
// Register 按默认配额创建账户
func (h *UserHandler) Register(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserRegisterRequest{}

	if err := pkgapp.BindAndValid(c, params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	user, err := h.App.Service.User.Register(c.Request.Context(), params)
	if err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(user))
}

// Me returns the caller's account
// Me 返回调用者账户信息
func (h *UserHandler) Me(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	user, err := h.App.Service.User.Get(c.Request.Context(), uid)
	if err != nil {
		toErrResponse(response, err)
		return
	}

	response.ToResponse(code.Success.WithData(user))
}
