package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studyspot/studyspot/config"
	"github.com/studyspot/studyspot/internal/database"
	"github.com/studyspot/studyspot/internal/service"
	"github.com/studyspot/studyspot/internal/transport"
	"github.com/studyspot/studyspot/internal/worker"

	"github.com/studyspot/studyspot/pkg/queue"
	"github.com/studyspot/studyspot/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize state storage
	redisClient := redis.NewRedisClient(&cfg.Redis)
	defer redisClient.Close()

	var stateStore database.StateStore
	if store, err := database.NewRedisStateStore(redisClient, cfg.Booking.StatePrefix); err != nil {
		logrus.Errorf("Redis state store unavailable: %v. Falling back to in-memory state", err)
		stateStore = database.NewMemoryStateStore()
	} else {
		logrus.Info("Redis state store initialized")
		stateStore = store
	}

	// Initialize repositories
	bookingRepo, err := database.NewBookingRepository(ctx, stateStore)
	if err != nil {
		logrus.Fatalf("Failed to initialize booking repository: %v", err)
	}
	sessionRepo, err := database.NewSessionRepository(ctx, stateStore)
	if err != nil {
		logrus.Fatalf("Failed to initialize session repository: %v", err)
	}
	draftRepo, err := database.NewDraftRepository(ctx, stateStore)
	if err != nil {
		logrus.Fatalf("Failed to initialize draft repository: %v", err)
	}

	// Load space catalog
	spaces, err := config.LoadCatalog(&cfg.Catalog)
	if err != nil {
		logrus.Fatalf("Failed to load space catalog: %v", err)
	}
	logrus.Infof("Space catalog loaded: %d spaces", len(spaces))

	// Initialize queue if enabled
	var redisQueue queue.Queue
	var taskPublisher service.TaskPublisher

	if cfg.Queue.Enabled {
		queueConfig := &queue.RedisQueueConfig{
			MainQueue:    cfg.Queue.MainQueue,
			DelayedQueue: cfg.Queue.DelayedQueue,
			MaxRetries:   cfg.Queue.MaxRetries,
			BaseDelay:    cfg.Queue.BaseDelay,
		}

		retryManager := queue.NewRetryManager(cfg.Queue.MaxRetries, cfg.Queue.BaseDelay)

		q, err := queue.NewRedisQueue(redisClient, queueConfig, retryManager)
		if err != nil {
			logrus.Errorf("Failed to initialize Redis queue: %v. Continuing without queue...", err)
		} else {
			logrus.Info("Redis queue initialized")
			redisQueue = q
		}
	}
	// Создаем адаптер для очереди: при выключенной очереди публикация
	// превращается в no-op, сервисы об этом не знают
	taskPublisher = service.NewQueueAdapter(redisQueue)

	// Initialize services
	toastService := service.NewToastService(cfg.Notification.DismissAfter, taskPublisher)
	spaceService := service.NewSpaceService(spaces)
	authService := service.NewAuthService(sessionRepo, toastService)
	bookingService := service.NewBookingService(bookingRepo, draftRepo, spaceService, toastService, taskPublisher)

	// Initialize task handler if queue is available
	if redisQueue != nil {
		taskHandler := queue.NewTaskHandler(toastService, redisQueue)

		// Start queue consumer
		go func() {
			if err := redisQueue.Subscribe(ctx, taskHandler.HandleTask); err != nil {
				logrus.Errorf("Queue subscriber error: %v", err)
			}
		}()
		logrus.Info("Queue subscriber started")
	}

	// Initialize toast janitor
	toastJanitor := worker.NewToastJanitor(toastService, cfg.Worker.SweepInterval)
	go toastJanitor.Start(ctx)
	logrus.Info("Toast janitor started")

	// Initialize handlers
	spaceHandler := transport.NewSpaceHandler(spaceService, bookingService)
	bookingHandler := transport.NewBookingHandler(bookingService)
	authHandler := transport.NewAuthHandler(authService)
	toastHandler := transport.NewToastHandler(toastService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(spaceHandler, bookingHandler, authHandler, toastHandler, authService)); err != nil {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if redisQueue != nil {
		if err := redisQueue.Close(); err != nil {
			logrus.Errorf("error occured on queue shutting down: %s", err.Error())
		}
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
