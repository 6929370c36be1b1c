package handler

import (
	"github.com/gin-gonic/gin"

	"resource-hub-go/internal/middleware"
	"resource-hub-go/internal/service"
)

// Services groups what the HTTP layer depends on.
type Services struct {
	Users      service.UserService
	Resources  service.ResourceService
	Categories service.CategoryService
	Search     service.SearchService
}

// RouterOptions tunes the HTTP engine.
type RouterOptions struct {
	AllowedOrigins     []string
	MaxMultipartMemory int64
	// Limiter guards the write endpoints. Nil disables rate limiting.
	Limiter middleware.Limiter
}

// NewRouter 创建 Gin 引擎并注册所有路由。
func NewRouter(svc Services, opts RouterOptions) *gin.Engine {
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	if opts.MaxMultipartMemory > 0 {
		r.MaxMultipartMemory = opts.MaxMultipartMemory
	}
	r.Use(middleware.RequestID(), middleware.RequestLogger(), gin.Recovery(), middleware.CORS(opts.AllowedOrigins))

	limiter := opts.Limiter

	r.GET("/health", Health)

	userHandler := NewUserHandler(svc.Users)
	users := r.Group("/users")
	{
		users.POST("", middleware.RateLimit(limiter, "users"), userHandler.Register)
		users.GET("", userHandler.List)
	}

	resourceHandler := NewResourceHandler(svc.Resources)
	searchHandler := NewSearchHandler(svc.Search)
	resources := r.Group("/resources")
	{
		resources.POST("/upload", middleware.RateLimit(limiter, "upload"), resourceHandler.Upload)
		resources.GET("", resourceHandler.List)
		resources.GET("/search", searchHandler.Search)
		resources.GET("/:id/view", resourceHandler.View)
		resources.GET("/:id/download", resourceHandler.Download)
	}

	categoryHandler := NewCategoryHandler(svc.Categories)
	categories := r.Group("/categories")
	{
		categories.POST("", categoryHandler.Create)
		categories.GET("", categoryHandler.List)
	}

	return r
}
