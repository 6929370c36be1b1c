// Package main 是应用程序的入口点。
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"resource-hub-go/internal/config"
	"resource-hub-go/internal/handler"
	"resource-hub-go/internal/middleware"
	"resource-hub-go/internal/pipeline"
	"resource-hub-go/internal/repository"
	"resource-hub-go/internal/service"
	"resource-hub-go/pkg/database"
	"resource-hub-go/pkg/es"
	"resource-hub-go/pkg/events"
	"resource-hub-go/pkg/kafka"
	"resource-hub-go/pkg/log"
	"resource-hub-go/pkg/ratelimit"
	"resource-hub-go/pkg/storage"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	// 0. 加载 .env（不存在时忽略），已有的环境变量优先
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "读取 .env 失败: %v\n", err)
		os.Exit(1)
	}

	// 1. 初始化配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志记录器
	if err := log.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. 初始化数据库
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect database", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("关闭数据库连接失败", err)
		}
	}()
	if cfg.Database.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			log.Fatal("auto migrate failed", err)
		}
		log.Info("数据库表结构已同步")
	}

	// 4. 初始化文件存储
	store, err := newFileStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("初始化文件存储失败", err)
	}

	// 5. 初始化 Redis 与限流器（可选）
	var limiter middleware.Limiter
	if cfg.RateLimit.Enabled {
		rdb, err := database.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("failed to connect to redis", err)
		}
		defer closeRedis(rdb)
		fw, err := ratelimit.NewFixedWindowLimiter(rdb, cfg.RateLimit.Prefix, cfg.RateLimit.Limit, cfg.RateLimit.Window)
		if err != nil {
			log.Fatal("初始化限流器失败", err)
		}
		limiter = fw
		log.Infow("rate limiting enabled", "limit", cfg.RateLimit.Limit, "window", cfg.RateLimit.Window.String())
	}

	// 6. 初始化 Repository
	txr := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	logRepo := repository.NewLogRepository(db)

	// 7. 初始化搜索索引与事件管道（可选）
	var searcher service.ResourceSearcher
	var processor *pipeline.Processor
	if cfg.Elasticsearch.Enabled {
		esClient, err := es.NewClient(cfg.Elasticsearch)
		if err != nil {
			log.Fatal("es 初始化失败", err)
		}
		if err := esClient.EnsureIndex(ctx); err != nil {
			log.Fatal("es 索引初始化失败", err)
		}
		searcher = esClient
		processor = pipeline.NewProcessor(resourceRepo, esClient)
	}

	var publisher events.Publisher = events.Discard
	var consumers sync.WaitGroup
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error("关闭 Kafka 生产者失败", err)
			}
		}()
		publisher = producer

		// 8. 启动后台 Kafka 消费者
		if processor != nil {
			consumers.Add(1)
			go func() {
				defer consumers.Done()
				if err := kafka.StartConsumer(ctx, cfg.Kafka, processor); err != nil {
					log.Error("Kafka 消费者异常退出", err)
				}
			}()
		}
	} else if processor != nil {
		publisher = processor
	}

	// 9. 初始化 Service (依赖注入)
	roles := service.RolePolicy{Allowed: cfg.Users.AllowedRoles, Default: cfg.Users.DefaultRole}
	services := handler.Services{
		Users:      service.NewUserService(txr, userRepo, logRepo, roles, publisher),
		Resources:  service.NewResourceService(txr, resourceRepo, categoryRepo, logRepo, store, publisher),
		Categories: service.NewCategoryService(txr, categoryRepo, logRepo, publisher),
		Search:     service.NewSearchService(searcher, resourceRepo),
	}

	// 10. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := handler.NewRouter(services, handler.RouterOptions{
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		MaxMultipartMemory: cfg.Server.MaxMultipartMemory,
		Limiter:            limiter,
	})

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP 服务监听失败: %s", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	<-ctx.Done()
	stop()
	log.Info("接收到停机信号，正在关闭服务...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP 服务器关闭失败", err)
	}
	// 消费者随 ctx 取消而退出
	consumers.Wait()
	log.Info("服务已优雅关闭")
}

func newFileStore(ctx context.Context, cfg config.StorageConfig) (storage.FileStore, error) {
	switch cfg.Driver {
	case "minio":
		return storage.NewMinioStore(ctx, cfg.MinIO)
	default:
		s, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		log.Infow("local file store ready", "dir", s.Dir())
		return s, nil
	}
}

func closeRedis(rdb *redis.Client) {
	if err := rdb.Close(); err != nil {
		log.Error("关闭 Redis 连接失败", err)
	}
}
