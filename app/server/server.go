package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"ragbot/app/agent"
	"ragbot/app/api"
	"ragbot/app/middleware"
	"ragbot/internal"
	"ragbot/loader/service"
	"ragbot/model"
	"ragbot/store"
	"ragbot/types"

	"github.com/gofiber/fiber/v2"
)

var config = fiber.Config{
	ErrorHandler: api.ErrorHandler,
}

type Server struct {
	cfg    types.Config
	logger *slog.Logger
	app    *fiber.App
	pool   *store.PostgresStore
	cancel context.CancelFunc
}

func NewServer(cfg types.Config) *Server {
	return &Server{
		cfg:    cfg,
		logger: slog.Default(),
	}
}

func (s *Server) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.app != nil {
		if err := s.app.Shutdown(); err != nil {
			s.logger.Error("error to shut down server", "error", err.Error())
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
	s.logger.Info("server stopped")
}

func (s *Server) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	port, _ := strconv.Atoi(os.Getenv("PG_PORT"))
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", os.Getenv("PG_HOST"), port, os.Getenv("PG_USER"), os.Getenv("PG_PASS"), os.Getenv("PG_DB_NAME"))
	pool, err := store.NewPostgresStore(ctx, connStr)
	if err != nil {
		log.Fatal("error to connect to Postgres database", err)
		return
	}
	s.pool = pool

	if err := pool.Init(ctx); err != nil {
		log.Fatal("error to create tables", err)
		return
	}

	var (
		embedder = model.NewOllamaEmbedder()
		llm      = model.NewOllamaLLM()
		scorer   = model.NewCrossEncoder()
		bot      = agent.New(s.cfg, llm, embedder, pool, scorer)
		loader   = internal.NewPDFLoader(s.cfg, embedder, internal.NewDoclingClient())
		ingest   = service.New(s.cfg, pool, loader)
	)

	// Background ingestion of PDFs dropped into the source directory.
	if s.cfg.SourceDir != "" {
		go ingest.Run(ctx)
	}

	var (
		app           = fiber.New(config)
		checkHandler  = api.NewCheckHandler()
		chatHandler   = api.NewChatHandler(bot)
		updateHandler = api.NewUpdateHandler(ingest, s.cfg.DocPath)
		uploadHandler = api.NewUploadHandler(s.cfg.SourceDir)
		check         = app.Group("/check")
		apiGroup      = app.Group("/api")
	)
	s.app = app

	app.Use(middleware.RequestLogger())

	check.Get("/healthy", checkHandler.HandleHealthy)
	apiGroup.Post("/chat", chatHandler.HandleChat)
	apiGroup.Post("/update", updateHandler.HandleUpdate)
	apiGroup.Post("/upload", uploadHandler.HandlePDF)

	if err := app.Listen(s.cfg.ServerAddr); err != nil {
		s.logger.Error("error to start server", "error", err.Error())
		return
	}
}
