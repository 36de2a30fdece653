package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"time"

	"custody-core/internal/chain"
	"custody-core/internal/custody"
	"custody-core/internal/gas"
	"custody-core/internal/model"
	"custody-core/internal/mq"
	"custody-core/internal/recovery"
	"custody-core/internal/risk"
	"custody-core/internal/server"
	"custody-core/internal/signer"
	"custody-core/internal/simulation"
	"custody-core/internal/wallet"
	"custody-core/pkg/amount"
	"custody-core/pkg/cache"
	"custody-core/pkg/config"
	"custody-core/pkg/database"
	"custody-core/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 0. 初始化 Config
	config.Init()

	// 1. 初始化 Logger
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	// 2. 审计库 (可选)
	var db *gorm.DB
	if config.Global.DB.Enabled {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Shanghai",
			config.Global.DB.Host,
			config.Global.DB.User,
			config.Global.DB.Password,
			config.Global.DB.Name,
			config.Global.DB.Port,
		)

		var err error
		db, err = database.ConnectPostgres(dsn)
		if err != nil {
			logger.Fatal("数据库连接失败", zap.Error(err))
		}

		if config.Global.App.Env == "development" {
			logger.Info("开发环境: 尝试自动迁移 Schema (GORM AutoMigrate)...")
			if err := db.AutoMigrate(model.AllModels()...); err != nil {
				logger.Fatal("数据库自动迁移失败", zap.Error(err))
			}
			logger.Info("数据库自动迁移完成 (Dev Mode)")
		} else {
			logger.Info("生产环境: 跳过 AutoMigrate，请使用 migrate 工具管理 Schema")
		}
	}

	// 3. 密钥托管
	// 服务端没有交互界面，解锁口令经环境变量注入后走同一个闸口契约
	var gate custody.AuthGate
	switch config.Global.Custody.GateType {
	case "none":
		logger.Warn("授权闸口已禁用 (gate_type=none)，仅限开发环境")
		gate = custody.OpenGate{}
	default:
		gate = custody.NewPasscodeGate(config.Global.Custody.Passcode,
			func(ctx context.Context, keyID string) (string, error) {
				return os.Getenv("CUSTODY_UNLOCK_CODE"), nil
			})
	}

	keyStore, err := custody.NewFileKeyStore(
		config.Global.Custody.KeyDir,
		config.Global.Custody.Passphrase,
		gate,
	)
	if err != nil {
		logger.Fatal("初始化密钥存储失败", zap.Error(err))
	}

	// 4. 链 Provider
	chainCfg := config.Global.Chain("ETH")
	if chainCfg == nil {
		logger.Fatal("缺少 ETH 链配置")
	}
	provider, err := chain.NewEthProvider(*chainCfg)
	if err != nil {
		logger.Fatal("连接 RPC 节点失败", zap.String("rpc_url", chainCfg.RpcUrl), zap.Error(err))
	}
	defer provider.Close()

	// 5. 费用路由 / 模拟引擎 / 风险分析
	ttl := time.Duration(config.Global.Gas.EstimateTTLSeconds) * time.Second
	gasCache := cache.NewMemoryCache(ttl, 2*ttl)
	gasRouter := gas.NewRouter(config.Global.Chain, gasCache, ttl)

	simEngine := simulation.NewEngine(provider, config.Global.Chain)

	var threshold *big.Int
	if v, err := amount.ParseBig(config.Global.Risk.HighValueThreshold); err == nil {
		threshold = v
	} else {
		logger.Fatal("风险阈值配置无效", zap.String("value", config.Global.Risk.HighValueThreshold))
	}
	analyzer := risk.NewAnalyzer(threshold)

	// 6. 事件总线 (可选)
	producer, err := mq.NewProducer(config.Global.MQ)
	if err != nil {
		logger.Fatal("初始化事件总线失败", zap.Error(err))
	}
	if producer != nil {
		defer producer.Close()
	}

	// 7. 编排层
	svc := wallet.NewService(wallet.Deps{
		Provider:  provider,
		Gas:       gasRouter,
		Simulator: simEngine,
		Risk:      analyzer,
		Breach:    risk.LogSink{},
		Signer:    signer.NewEthSigner(keyStore),
		Recovery:  recovery.NewXORStrategy(),
		Chains:    config.Global.Chain,
		Producer:  producer,
		DB:        db,
		Topic:     config.Global.MQ.Topic,
	})

	// 8. HTTP Router + 启动
	r := server.NewHTTPRouter(svc)
	app := server.New(server.Config{HttpPort: config.Global.App.HttpPort}, r)
	app.Run()

	// 9. 退出后资源清理
	if db != nil {
		logger.Info("正在关闭数据库连接...")
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	logger.Info("系统已退出")
}
