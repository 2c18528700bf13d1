// Package bootstrap wires configuration, storage, the render engine,
// and the HTTP router into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/config"
	"resume-studio/internal/exports"
	"resume-studio/internal/resumes"
	"resume-studio/internal/server"
	"resume-studio/internal/shared/storage/db"
	"resume-studio/resume/export"
	"resume-studio/resume/render"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	ResumesRepo    resumes.Repo
	ResumesService *resumes.Service
	Rasterizer     *render.Rasterizer
	Engine         *render.Engine
	Stash          *export.DraftStash
	Orchestrator   *export.Orchestrator
	ResumeHandler  *resumes.Handler
	ExportHandler  *exports.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo resumes.Repo
	if sqlDB != nil {
		repo = &resumes.PGRepo{DB: sqlDB}
	} else {
		repo = resumes.NewMemoryRepo()
	}

	resumeSvc := resumes.NewService(repo)

	raster := render.NewRasterizer()
	if cfg.ChromePath != "" {
		raster.BrowserPath = cfg.ChromePath
	}
	if cfg.ExportTimeout > 0 {
		raster.Timeout = cfg.ExportTimeout
	}
	if cfg.PDFScale > 0 {
		raster.Scale = cfg.PDFScale
	}

	engine := render.NewEngine(raster)
	stash := export.NewDraftStash(cfg.DraftTTL)
	orch := exports.NewOrchestrator(resumeSvc, engine, stash)

	app := &App{
		Config:         cfg,
		DB:             sqlDB,
		ResumesRepo:    repo,
		ResumesService: resumeSvc,
		Rasterizer:     raster,
		Engine:         engine,
		Stash:          stash,
		Orchestrator:   orch,
		ResumeHandler:  resumes.NewHandler(resumeSvc),
		ExportHandler:  exports.NewHandler(resumeSvc, orch, stash),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		ResumeHandler: app.ResumeHandler,
		ExportHandler: app.ExportHandler,
	})

	return app, nil
}

// Close releases long-lived resources.
func (a *App) Close() {
	if a.Rasterizer != nil {
		if err := a.Rasterizer.Close(); err != nil {
			log.Printf("bootstrap: close rasterizer: %v", err)
		}
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database unavailable, falling back to memory: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch env {
	case "dev", "local", "":
		return true
	}
	return false
}
