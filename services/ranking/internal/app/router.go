package app

import (
	"net/http"
	"time"

	"rankings-admin/pkg/middleware"
	rankingHTTP "rankings-admin/services/ranking/internal/controller/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "rankings-admin/services/ranking/docs" // Swagger docs
)

// Router wires the handlers over the current contents of the container.
func (a *App) Router() *gin.Engine {
	rankingHandler := rankingHTTP.NewRankingHandler(a.container.RankingUseCase, a.log)
	itemHandler := rankingHTTP.NewItemHandler(a.container.ItemUseCase, a.log)
	authHandler := rankingHTTP.NewAuthHandler(a.jwtService, rankingHTTP.AdminCredentials{
		Username:     a.cfg.AdminUsername,
		PasswordHash: a.cfg.AdminPasswordHash,
		Session:      a.cfg.AdminSession,
	}, a.log)

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins: a.cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Authorization", "Accept",
			middleware.HeaderAdminToken, middleware.HeaderLocalStorageToken,
		},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": a.cfg.StorageBackend})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	rateLimit := middleware.RateLimitMiddleware(a.ctx, a.redisClient, a.cfg.RateLimitPerMinute, time.Minute)

	api := r.Group("/api")
	{
		api.GET("/rankings", rateLimit, rankingHandler.PublicListRankings)
		api.GET("/rankings/:slug", rateLimit, rankingHandler.PublicGetRanking)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/login", rateLimit, authHandler.Login)
		admin.POST("/logout", authHandler.Logout)
	}

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware(middleware.AdminAuth{
		Token:             a.cfg.AdminToken,
		Session:           a.cfg.AdminSession,
		LocalStorageToken: a.cfg.AdminLocalStorageToken,
		UserID:            a.cfg.DefaultAuthorID,
		JWT:               a.jwtService,
	}))
	protected.Use(rateLimit)
	{
		protected.GET("/rankings", rankingHandler.ListRankings)
		protected.POST("/rankings", rankingHandler.CreateRanking)
		protected.GET("/rankings/:id", rankingHandler.GetRanking)
		protected.PUT("/rankings/:id", rankingHandler.UpdateRanking)
		protected.DELETE("/rankings/:id", rankingHandler.DeleteRanking)
		protected.POST("/rankings/:id/cover", rankingHandler.UploadCover)

		protected.GET("/rankings/:id/items", itemHandler.ListItems)
		protected.POST("/rankings/:id/items", itemHandler.AddItem)
		protected.PUT("/rankings/:id/items/:itemId", itemHandler.UpdateItem)
		protected.DELETE("/rankings/:id/items/:itemId", itemHandler.RemoveItem)
		protected.POST("/rankings/:id/reorder", itemHandler.ReorderItems)
	}

	return r
}
