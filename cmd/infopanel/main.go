package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	announcementApp "github.com/davicafu/infopanel/internal/announcement/application"
	announcementHttp "github.com/davicafu/infopanel/internal/announcement/infra/inbound/http"
	announcementRepo "github.com/davicafu/infopanel/internal/announcement/infra/outbound/db/sqlite"
	config "github.com/davicafu/infopanel/internal/config"
	countdownApp "github.com/davicafu/infopanel/internal/countdown/application"
	countdownHttp "github.com/davicafu/infopanel/internal/countdown/infra/inbound/http"
	countdownRepo "github.com/davicafu/infopanel/internal/countdown/infra/outbound/db/sqlite"
	moduleApp "github.com/davicafu/infopanel/internal/module/application"
	moduleHttp "github.com/davicafu/infopanel/internal/module/infra/inbound/http"
	moduleRepo "github.com/davicafu/infopanel/internal/module/infra/outbound/db/sqlite"
	infraEvents "github.com/davicafu/infopanel/internal/shared/infra/events"
	sharedGrpc "github.com/davicafu/infopanel/internal/shared/infra/inbound/grpc"
	sharedHttp "github.com/davicafu/infopanel/internal/shared/infra/inbound/http"
	sharedSQLite "github.com/davicafu/infopanel/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/infopanel/internal/shared/infra/platform/health"
	"github.com/davicafu/infopanel/pkg/logger"
)

// ---------------- Main ----------------
func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.LogLevel)
	log := logger.Logger()
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---------------- DB ----------------
	db, err := sharedSQLite.Open(cfg.SQLitePath)
	if err != nil {
		log.Fatal("failed to open SQLite", zap.Error(err))
	}
	defer db.Close()

	announcements := announcementRepo.NewAnnouncementRepoSQLite(db)
	countdowns := countdownRepo.NewCountdownRepoSQLite(db)
	modules := moduleRepo.NewModuleRepoSQLite(db)
	for name, initSchema := range map[string]func(context.Context) error{
		"announcements": announcements.InitSchema,
		"countdowns":    countdowns.InitSchema,
		"modules":       modules.InitSchema,
	} {
		if err := initSchema(ctx); err != nil {
			log.Fatal("failed to initialize SQLite schema", zap.String("table", name), zap.Error(err))
		}
	}

	// ---------------- Events ---------------
	store, err := openEventStore(ctx, cfg, db, log)
	if err != nil {
		log.Fatal("failed to open event store", zap.String("driver", cfg.EventStore), zap.Error(err))
	}
	defer store.Close()

	broadcast := openBroadcaster(ctx, cfg, log)
	defer broadcast.Close()

	publisher := infraEvents.NewPublisher(store.Store, broadcast.Broadcaster, cfg.BroadcastChannel, log)

	// ---------------- Cache ----------------
	moduleCache := openCache(ctx, cfg, log)
	defer moduleCache.Close()

	// --------------- Servicios --------------
	announcementService := announcementApp.NewAnnouncementService(announcements, publisher, log)
	countdownService := countdownApp.NewCountdownService(countdowns, publisher, log)
	moduleService := moduleApp.NewModuleService(modules, moduleCache.Cache, cfg.CacheTTL, publisher, log)

	if err := moduleService.SeedDefaults(ctx); err != nil {
		log.Fatal("failed to seed modules", zap.Error(err))
	}

	// ---------------- HTTP ----------------
	router := gin.Default()
	announcementHttp.RegisterAnnouncementRoutes(router, announcementHttp.NewAnnouncementHandler(announcementService))
	countdownHttp.RegisterCountdownRoutes(router, countdownHttp.NewCountdownHandler(countdownService))
	moduleHttp.RegisterModuleRoutes(router, moduleHttp.NewModuleHandler(moduleService))
	checks := health.Checks{"sqlite": db.PingContext}
	if broadcast.Check != nil {
		checks["broadcast"] = broadcast.Check
	}
	sharedHttp.RegisterSharedRoutes(router, sharedHttp.NewEventsHandler(store.History, log), checks)

	// ---------------- gRPC ----------------
	if cfg.GRPCPort != "" {
		hs := sharedGrpc.NewHealthServer(checks, cfg.HealthInterval, log)
		go func() {
			if err := sharedGrpc.Serve(ctx, ":"+cfg.GRPCPort, hs, log); err != nil {
				log.Error("gRPC server stopped", zap.Error(err))
			}
		}()
	}

	log.Info("🚀 Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
		zap.String("event_store", cfg.EventStore),
		zap.String("broadcast", broadcast.Driver),
		zap.String("channel", cfg.BroadcastChannel),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
