package main

import (
	"context"
	"fmt"
	"time"

	"wallet-ledger/internal/handler"
	"wallet-ledger/internal/model"
	"wallet-ledger/internal/server"
	"wallet-ledger/internal/service"
	"wallet-ledger/internal/service/mq"
	"wallet-ledger/internal/store"

	"wallet-ledger/pkg/cache"
	"wallet-ledger/pkg/config"
	"wallet-ledger/pkg/database"
	"wallet-ledger/pkg/logger"
	"wallet-ledger/pkg/validator"

	"go.uber.org/zap"
)

func main() {
	// 0. 初始化 Config
	config.Init()

	// 1. 初始化 Logger
	logger.Init(config.Global.App.Env)
	defer logger.Sync()
	validator.Init()

	// 2. 构造 DSN 并连接数据库
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		config.Global.DB.Host,
		config.Global.DB.User,
		config.Global.DB.Password,
		config.Global.DB.Name,
		config.Global.DB.Port,
	)

	db, err := database.ConnectPostgres(dsn, config.Global.App.Env)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 3. 连接 Redis
	rdb, err := database.ConnectRedis(config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB)
	if err != nil {
		logger.Fatal("Redis 连接失败", zap.Error(err))
	}

	// 4. 执行数据库迁移 (Auto Migrate) - 开发环境专用
	if config.Global.App.Env == "development" {
		logger.Info("开发环境: 尝试自动迁移 Schema (GORM AutoMigrate)...")
		if err := db.AutoMigrate(model.AllModels()...); err != nil {
			logger.Fatal("数据库自动迁移失败", zap.Error(err))
		}
		logger.Info("数据库自动迁移完成 (Dev Mode)")
	} else {
		logger.Info("生产环境: 跳过 AutoMigrate，请使用 migrate 工具管理 Schema")
	}

	// 5. 初始化缓存层
	var c cache.Cache
	if config.Global.Ledger.CacheBackend == "memory" {
		logger.Info("使用进程内缓存...")
		c = cache.NewMemoryCache(5*time.Minute, 10*time.Minute)
	} else {
		logger.Info("使用 Redis 缓存...")
		c = cache.NewRedisCache(rdb)
	}

	// 6. 初始化存储与业务服务
	st := store.NewGormStore(db)
	topic := config.Global.Ledger.NotificationsTopic
	cacheTTL := time.Duration(config.Global.Ledger.CacheTTLSeconds) * time.Second

	depositService := service.NewDepositService(st)
	walletService := service.NewWalletService(st, c, cacheTTL)
	resolutionService := service.NewResolutionService(st, c, topic)

	// 7. 初始化消息队列
	mqType := config.Global.Redis.MQType
	var producer mq.Producer
	var consumer mq.Consumer

	if mqType == "kafka" {
		logger.Info("使用 Kafka 作为消息队列...")
		kafkaBrokers := config.Global.Kafka.Brokers
		producer = mq.NewKafkaProducer(kafkaBrokers, topic)
		consumer = mq.NewKafkaConsumer(kafkaBrokers, config.Global.Ledger.EmitterGroup)
	} else {
		logger.Info("使用 Redis Streams 作为消息队列...")
		producer = mq.NewRedisProducer(rdb)
		consumer = mq.NewRedisConsumer(rdb, config.Global.Ledger.EmitterGroup, "emitter-0")
	}

	// 8. 启动消息中继服务 (Outbox -> MQ)
	relayInterval := time.Duration(config.Global.Ledger.RelayIntervalMS) * time.Millisecond
	relayService := service.NewRelayService(st, producer, relayInterval)
	go relayService.Start(context.Background())

	// 9. 启动通知投递服务
	emitter := service.NewEmitterService(st, consumer, topic)
	go func() {
		if err := emitter.Start(context.Background()); err != nil {
			logger.Error("Emitter 启动失败", zap.Error(err))
		}
	}()

	// 10. HTTP Router
	r := server.NewHTTPRouter(server.RouterDeps{
		Deposit:        handler.NewDepositHandler(depositService),
		Wallet:         handler.NewWalletHandler(walletService),
		Admin:          handler.NewAdminHandler(resolutionService, depositService),
		AdminTokenHash: config.Global.Admin.TokenHash,
	})

	// 11. 启动应用 (阻塞)
	app := server.New(server.Config{
		HttpPort: config.Global.App.HttpPort,
	}, r)
	app.Run()

	// 12. 退出后资源清理
	logger.Info("正在关闭数据库连接...")
	producer.Close()
	consumer.Close()
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	rdb.Close()
	logger.Info("系统已退出")
}
