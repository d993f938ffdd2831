package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	cartapp "github.com/wyfcoding/artsfoundation/internal/cart/application"
	cartdomain "github.com/wyfcoding/artsfoundation/internal/cart/domain"
	cartmemory "github.com/wyfcoding/artsfoundation/internal/cart/infrastructure/memory"
	cartmysql "github.com/wyfcoding/artsfoundation/internal/cart/infrastructure/persistence/mysql"
	carthttp "github.com/wyfcoding/artsfoundation/internal/cart/interfaces/http"
	catalogapp "github.com/wyfcoding/artsfoundation/internal/catalog/application"
	catalogmemory "github.com/wyfcoding/artsfoundation/internal/catalog/infrastructure/memory"
	cataloghttp "github.com/wyfcoding/artsfoundation/internal/catalog/interfaces/http"
	checkoutapp "github.com/wyfcoding/artsfoundation/internal/checkout/application"
	checkoutdomain "github.com/wyfcoding/artsfoundation/internal/checkout/domain"
	checkoutmemory "github.com/wyfcoding/artsfoundation/internal/checkout/infrastructure/memory"
	"github.com/wyfcoding/artsfoundation/internal/checkout/infrastructure/redisstore"
	checkouthttp "github.com/wyfcoding/artsfoundation/internal/checkout/interfaces/http"
	newsletterapp "github.com/wyfcoding/artsfoundation/internal/newsletter/application"
	newsletterdomain "github.com/wyfcoding/artsfoundation/internal/newsletter/domain"
	newslettermemory "github.com/wyfcoding/artsfoundation/internal/newsletter/infrastructure/memory"
	newslettermysql "github.com/wyfcoding/artsfoundation/internal/newsletter/infrastructure/persistence/mysql"
	newsletterhttp "github.com/wyfcoding/artsfoundation/internal/newsletter/interfaces/http"
	orderapp "github.com/wyfcoding/artsfoundation/internal/order/application"
	orderdomain "github.com/wyfcoding/artsfoundation/internal/order/domain"
	ordermysql "github.com/wyfcoding/artsfoundation/internal/order/infrastructure/persistence/mysql"
	paymentapp "github.com/wyfcoding/artsfoundation/internal/payment/application"
	"github.com/wyfcoding/artsfoundation/internal/payment/infrastructure/messaging"
	stripegw "github.com/wyfcoding/artsfoundation/internal/payment/infrastructure/stripe"
	registrationapp "github.com/wyfcoding/artsfoundation/internal/registration/application"
	registrationdomain "github.com/wyfcoding/artsfoundation/internal/registration/domain"
	registrationmemory "github.com/wyfcoding/artsfoundation/internal/registration/infrastructure/memory"
	registrationmysql "github.com/wyfcoding/artsfoundation/internal/registration/infrastructure/persistence/mysql"
	registrationhttp "github.com/wyfcoding/artsfoundation/internal/registration/interfaces/http"
	"github.com/wyfcoding/artsfoundation/pkg/cache"
	"github.com/wyfcoding/artsfoundation/pkg/config"
	"github.com/wyfcoding/artsfoundation/pkg/db"
	"github.com/wyfcoding/artsfoundation/pkg/logger"
	"github.com/wyfcoding/artsfoundation/pkg/metrics"
	"github.com/wyfcoding/artsfoundation/pkg/middleware"
	"github.com/wyfcoding/artsfoundation/pkg/mq"
	"github.com/wyfcoding/artsfoundation/pkg/ratelimit"
)

func main() {
	configPath := flag.String("config", "configs/server/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger.Info(ctx, "starting service", "service", cfg.ServiceName, "environment", cfg.Environment)

	m := metrics.New(cfg.ServiceName)
	if cfg.Metrics.Enabled {
		m.ExposeHTTP(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// 数据库可选：未配置 DSN 时订单持久化关闭，购物车与 RSVP 退化为内存实现
	var database *db.DB
	if cfg.Database.DSN != "" {
		database, err = db.Init(db.Config{
			Driver:             cfg.Database.Driver,
			DSN:                cfg.Database.DSN,
			MaxOpenConns:       cfg.Database.MaxOpenConns,
			MaxIdleConns:       cfg.Database.MaxIdleConns,
			ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
			LogEnabled:         cfg.Database.LogEnabled,
			SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to init database", "error", err)
		}
		defer database.Close()

		if cfg.Environment == "dev" {
			if err := database.AutoMigrate(
				&cartdomain.Cart{},
				&cartdomain.CartItem{},
				&orderdomain.Order{},
				&registrationdomain.RSVP{},
				&newsletterdomain.Subscription{},
			); err != nil {
				logger.Fatal(ctx, "failed to migrate database", "error", err)
			}
		}
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.New(cache.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxPoolSize:  cfg.Redis.MaxPoolSize,
			ConnTimeout:  cfg.Redis.ConnTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to init redis", "error", err)
		}
		defer redisCache.Close()
	}

	// Kafka 未配置时事件发布为 noop，不影响结账主链路
	publisher := messaging.NewNoopPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := mq.NewProducer(mq.Config{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to init kafka producer", "error", err)
		}
		defer producer.Close()
		publisher = messaging.NewKafkaPublisher(producer)
	}

	// 目录
	catalogRepo := catalogmemory.NewCatalogRepository()
	catalogService := catalogapp.NewCatalogQueryService(catalogRepo)

	// 购物车
	var cartRepo cartdomain.CartRepository
	if database != nil {
		cartRepo = cartmysql.NewCartRepository(database.DB)
	} else {
		cartRepo = cartmemory.NewCartRepository()
	}
	cartService := cartapp.NewCartService(cartRepo, catalogRepo)

	// 支付
	gateway := stripegw.NewGateway(cfg.Stripe.SecretKey)
	minimum := decimal.NewFromFloat(cfg.Payment.MinimumAmount)
	intentService := paymentapp.NewIntentService(gateway, publisher, cfg.Payment.Currency, minimum)

	// 订单（可选）
	var orderService *orderapp.OrderService
	if database != nil {
		orderService = orderapp.NewOrderService(ordermysql.NewOrderRepository(database.DB))
	}

	// 结账会话存储：Redis 优先，多实例共享；否则进程内存
	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	var sessionStore checkoutdomain.SessionStore
	if redisCache != nil {
		sessionStore = redisstore.NewSessionStore(redisCache, sessionTTL)
	} else {
		memStore := checkoutmemory.NewSessionStore(sessionTTL)
		defer memStore.Close()
		sessionStore = memStore
	}

	confirmTimeout := time.Duration(cfg.Payment.ConfirmTimeout) * time.Second
	checkoutService := checkoutapp.NewCheckoutService(
		intentService, sessionStore, catalogRepo, cartService, orderService, m, confirmTimeout,
	)

	// RSVP 与订阅
	var rsvpRepo registrationdomain.Repository
	var subRepo newsletterdomain.Repository
	if database != nil {
		rsvpRepo = registrationmysql.NewRSVPRepository(database.DB)
		subRepo = newslettermysql.NewSubscriptionRepository(database.DB)
	} else {
		rsvpRepo = registrationmemory.NewRSVPRepository()
		subRepo = newslettermemory.NewSubscriptionRepository()
	}
	rsvpService := registrationapp.NewRSVPService(rsvpRepo, catalogRepo, m)
	newsletterService := newsletterapp.NewNewsletterService(subRepo, m)

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(),
	)
	if redisCache != nil {
		limiter := ratelimit.NewRedisRateLimiter(redisCache.Client())
		engine.Use(ratelimit.PerClientIP(limiter, ratelimit.Limit{Rate: 100, Period: time.Minute, Burst: 20}))
	} else {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(200, 100)))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})

	api := engine.Group("/api")
	cataloghttp.NewCatalogHandler(catalogService).RegisterRoutes(api)
	carthttp.NewCartHandler(cartService).RegisterRoutes(api)
	checkouthttp.NewCheckoutHandler(checkoutService, cfg.Stripe.PublishableKey, cfg.Payment.Currency).RegisterRoutes(api)
	registrationhttp.NewRSVPHandler(rsvpService).RegisterRoutes(api)
	newsletterhttp.NewNewsletterHandler(newsletterService).RegisterRoutes(api)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(ctx, "HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-quit:
			logger.Info(ctx, "shutdown signal received", "signal", sig.String())
		case <-gctx.Done():
			return gctx.Err()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal(ctx, "server exited with error", "error", err)
	}
	logger.Info(ctx, "server stopped")
}
