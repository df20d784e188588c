package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/halu23489/genba/internal/config"
	"github.com/halu23489/genba/internal/handler"
	"github.com/halu23489/genba/internal/logging"
	"github.com/halu23489/genba/internal/masterdata"
	"github.com/halu23489/genba/internal/repository"
	"github.com/halu23489/genba/internal/service"
	"github.com/halu23489/genba/internal/storage"
	"github.com/halu23489/genba/pkg/session"
)

// stores は STORE_DRIVER で選ばれた保存先
type stores struct {
	db         repository.DB
	projects   repository.ProjectRepository
	cycleTimes  repository.CycleTimeRepository
	workMasters repository.WorkMasterRepository
	close       func()
}

func openStores(ctx context.Context, cfg config.StoreConfig) (*stores, error) {
	switch cfg.Driver {
	case config.StoreRedis:
		client, err := repository.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return &stores{
			db:          repository.RedisPinger{Client: client},
			projects:    repository.NewRedisProjectRepository(client, repository.DefaultRedisTTL),
			cycleTimes:  repository.NewRedisCycleTimeRepository(client, repository.DefaultRedisTTL),
			workMasters: repository.NewRedisWorkMasterRepository(client, repository.DefaultRedisTTL),
			close:       func() { _ = client.Close() },
		}, nil
	case config.StorePostgres:
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		projects := repository.NewPgProjectRepository(pool)
		return &stores{
			db:          projects,
			projects:    projects,
			cycleTimes:  repository.NewPgCycleTimeRepository(pool),
			workMasters: repository.NewPgWorkMasterRepository(pool),
			close:       pool.Close,
		}, nil
	default:
		projects := repository.NewMemoryProjectRepository()
		return &stores{
			db:          projects,
			projects:    projects,
			cycleTimes:  repository.NewMemoryCycleTimeRepository(),
			workMasters: repository.NewMemoryWorkMasterRepository(),
			close:       func() {},
		}, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid config", "error", err)
	}
	logging.Setup(cfg.App.LogLevel)

	rates, err := masterdata.Load(cfg.App.MasterDataFile)
	if err != nil {
		logging.Fatal("failed to load master data", "path", cfg.App.MasterDataFile, "error", err)
	}

	st, err := openStores(context.Background(), cfg.Store)
	if err != nil {
		logging.Fatal("failed to connect to store", "driver", cfg.Store.Driver, "error", err)
	}
	defer st.close()
	slog.Info("store ready", "driver", cfg.Store.Driver)

	uploads := storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.URLPrefix)

	projectService := service.NewProjectService(st.projects)
	recordService := service.NewDailyRecordService(st.projects, rates)
	cycleTimeService := service.NewCycleTimeService(st.projects, st.cycleTimes)
	workMasterService := service.NewWorkMasterService(st.projects, st.workMasters)

	h := handler.New(st.db, cfg.Server.FrontendURL)
	machineHandler := handler.NewMachineHandler(rates)
	projectHandler := handler.NewProjectHandler(projectService)
	designHandler := handler.NewDesignHandler(uploads, projectService)
	recordHandler := handler.NewDailyRecordHandler(recordService)
	cycleTimeHandler := handler.NewCycleTimeHandler(cycleTimeService)
	workMasterHandler := handler.NewWorkMasterHandler(workMasterService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/machines", machineHandler.List)

	// 現場設定
	mux.HandleFunc("GET /api/project", projectHandler.Get)
	mux.HandleFunc("PUT /api/project", projectHandler.Update)
	mux.HandleFunc("POST /api/project/design", designHandler.Upload)

	// 日報
	mux.HandleFunc("GET /api/daily-records", recordHandler.List)
	mux.HandleFunc("POST /api/daily-records", recordHandler.Create)

	// サイクルタイム計測
	mux.HandleFunc("GET /api/cycle-times", cycleTimeHandler.List)
	mux.HandleFunc("POST /api/cycle-times", cycleTimeHandler.Create)
	mux.HandleFunc("DELETE /api/cycle-times", cycleTimeHandler.Clear)

	// 歩掛マスター
	mux.HandleFunc("GET /api/workmaster", workMasterHandler.Get)
	mux.HandleFunc("PUT /api/workmaster/basic", workMasterHandler.UpdateBasic)
	mux.HandleFunc("PUT /api/workmaster/detail", workMasterHandler.UpdateDetail)

	// アップロードした図面の配信
	mux.Handle("GET "+uploads.URLPrefix()+"/", http.StripPrefix(uploads.URLPrefix(), http.FileServer(http.Dir(uploads.BaseDir()))))

	sessionMW := session.Middleware(session.SecretBytes(cfg.Server.SessionSecret), cfg.Server.CookieSecure)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      h.CORS(handler.SecurityHeaders(sessionMW(handler.RequestLogger(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
