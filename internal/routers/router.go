package routers

import (
	"time"

	"github.com/haierkeys/note-share-sync-service/internal/app"
	"github.com/haierkeys/note-share-sync-service/internal/middleware"
	"github.com/haierkeys/note-share-sync-service/internal/routers/api_router"

	"github.com/gin-gonic/gin"
)

// NewRouter 构建 HTTP 路由
func NewRouter(appContainer *app.App) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()
	r.Use(middleware.AccessLog())
	r.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

	api := r.Group("/api")
	{
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		itemHandler := api_router.NewItemHandler(appContainer)
		shareHandler := api_router.NewShareHandler(appContainer)
		changeHandler := api_router.NewChangeHandler(appContainer)

		// 注册无需携带用户标识
		api.POST("/user/register", userHandler.Register)

		api.Use(middleware.UserUID())

		api.GET("/user/info", userHandler.Me)

		api.POST("/item", itemHandler.Save)
		api.PUT("/items", itemHandler.Put)
		api.DELETE("/items", itemHandler.Delete)
		api.GET("/item", itemHandler.Get)
		api.GET("/item/logical", itemHandler.GetByLogicalID)
		api.GET("/items/children", itemHandler.Children)

		api.POST("/share", shareHandler.Create)
		api.GET("/shares", shareHandler.List)
		api.GET("/shares/invitations", shareHandler.Invitations)
		api.POST("/share/:id/invite", shareHandler.Invite)
		api.POST("/share/invitation/:id/respond", shareHandler.Respond)
		api.DELETE("/share/:id", shareHandler.Delete)

		api.GET("/changes", changeHandler.Delta)
	}

	return r
}
