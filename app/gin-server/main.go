package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/jobportal/config"
	"github.com/yoockh/jobportal/internal/api/handlers"
	"github.com/yoockh/jobportal/internal/api/middleware"
	"github.com/yoockh/jobportal/internal/api/routes"
	"github.com/yoockh/jobportal/internal/auth"
	"github.com/yoockh/jobportal/internal/cache"
	"github.com/yoockh/jobportal/internal/clock"
	"github.com/yoockh/jobportal/internal/logger"
	"github.com/yoockh/jobportal/internal/notify"
	"github.com/yoockh/jobportal/internal/providers/llm"
	mongorepo "github.com/yoockh/jobportal/internal/repositories/mongo"
	pgrepo "github.com/yoockh/jobportal/internal/repositories/postgres"
	"github.com/yoockh/jobportal/internal/services"
	"github.com/yoockh/jobportal/internal/storage"
	"github.com/yoockh/jobportal/internal/workers"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.IsProduction())

	// Init MongoDB
	if err := config.InitMongo(cfg.MongoURI, cfg.MongoForceTLS12); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(cfg.MongoDB); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	log.Info("MongoDB connected")

	// Init PostgreSQL
	if err := config.InitPostgres(cfg.PostgresURI); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.MigratePostgres(); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	log.Info("PostgreSQL connected")

	// Init Redis
	if err := config.InitRedis(cfg.RedisAddr); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	log.Info("Redis connected")

	ctx := context.Background()

	gcs, err := storage.NewGCSStore(ctx, cfg.GCSBucket)
	if err != nil {
		log.Fatalf("GCS init error: %v", err)
	}
	defer gcs.Close()

	var provider llm.Provider
	switch cfg.LLMProvider {
	case "openai":
		provider, err = llm.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	default:
		provider, err = llm.NewVertexGemini(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.GeminiModel)
	}
	if err != nil {
		log.Fatalf("LLM init error: %v", err)
	}
	defer provider.Close()
	log.WithField("provider", cfg.LLMProvider).Info("LLM provider ready")

	// replaced and orphaned uploads are removed in the background
	files := workers.NewDeferredDeleteStore(gcs, config.RedisClient, workers.DefaultCleanupStream)
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	cleanup := &workers.FileCleanupPool{Redis: config.RedisClient, Store: gcs, NumWorkers: 2, Logger: log}
	if err := cleanup.Start(workerCtx); err != nil {
		log.Fatalf("file cleanup worker error: %v", err)
	}

	db := config.MongoClient.Database(cfg.MongoDB)
	users := mongorepo.NewUserRepo(db)
	seekers := mongorepo.NewJobSeekerRepo(db)
	employers := mongorepo.NewEmployerRepo(db)
	jobs := mongorepo.NewJobRepo(db)
	applicants := mongorepo.NewApplicantRepo(db)
	bookmarks := mongorepo.NewBookmarkRepo(db)
	analyses := pgrepo.NewAnalysisRepo(config.PostgresDB)

	redisCache := cache.NewRedisCache(config.RedisClient)
	notifier := notify.NewRedisNotifier(config.RedisClient)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	clk := clock.Real()

	authSvc := services.NewAuthService(users, seekers, employers, files, tokens, log)
	seekerSvc := services.NewJobSeekerService(seekers, files, log)
	employerSvc := services.NewEmployerService(employers, jobs, files, redisCache, cfg.CacheTTL, log)
	jobSvc := services.NewJobService(jobs, employers, bookmarks, redisCache, cfg.CacheTTL, log)
	appSvc := services.NewApplicationService(applicants, jobs, seekers, employers, files, notifier, log)
	bookmarkSvc := services.NewBookmarkService(bookmarks, jobs, seekers)
	creditSvc := services.NewCreditService(seekers, clk)
	aiSvc := services.NewAIService(seekers, jobs, creditSvc, provider, files, analyses, clk, log)

	cookie := handlers.SessionCookie{TTL: tokens.TTL(), Secure: cfg.CookieSecure}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	r.MaxMultipartMemory = 8 << 20

	routes.RegisterRoutes(r, routes.Deps{
		Tokens:       tokens,
		Auth:         handlers.NewAuthHandler(authSvc, cookie),
		JobSeeker:    handlers.NewJobSeekerHandler(authSvc, seekerSvc, cookie),
		Employer:     handlers.NewEmployerHandler(authSvc, employerSvc, cookie),
		Job:          handlers.NewJobHandler(jobSvc),
		Application:  handlers.NewApplicationHandler(appSvc),
		Bookmark:     handlers.NewBookmarkHandler(bookmarkSvc),
		AI:           handlers.NewAIHandler(aiSvc),
		Notification: handlers.NewNotificationHandler(seekerSvc, notifier, nil),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	stopWorkers()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	if err := config.MongoClient.Disconnect(shutdownCtx); err != nil {
		log.WithError(err).Warn("MongoDB disconnect failed")
	}
	_ = config.RedisClient.Close()
	log.Info("server exited")
}
