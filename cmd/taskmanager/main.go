package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/application/task"
	"github.com/juliezimmer/task-manager-api/internal/application/user"
	"github.com/juliezimmer/task-manager-api/internal/config"
	infraauth "github.com/juliezimmer/task-manager-api/internal/infrastructure/auth"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/email"
	httprouter "github.com/juliezimmer/task-manager-api/internal/infrastructure/http"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/http/handlers"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/http/middleware"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/images"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/lockout"
	mongostore "github.com/juliezimmer/task-manager-api/internal/infrastructure/persistence/mongo"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/queue"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	client, err := mongostore.Connect(ctx, cfg.Mongo.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	db := client.Database(cfg.Mongo.Database)
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	userRepo := mongostore.NewUserRepository(db)
	taskRepo := mongostore.NewTaskRepository(db)

	var notify ports.NotificationEnqueuer
	var worker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		enq := queue.NewNotificationEnqueuer(asynqOpt, log)
		defer enq.Close()
		notify = enq
		mailer := email.NewLogMailer(cfg.Email.From, log)
		worker = queue.NewWorker(asynqOpt, mailer, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Warn().Err(err).Msg("notification worker stopped")
			}
		}()
	} else {
		notify = queue.NewNoopEnqueuer()
	}

	hasher := security.NewBcryptHasher(cfg.Bcrypt.Cost)
	issuer := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Issuer)
	lockoutStore := lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSeconds)
	normalizer := images.NewNormalizer(cfg.Avatar.Size)

	signUpUC := user.NewSignUp(userRepo, hasher, issuer, notify, cfg.Session.MaxPerUser)
	loginUC := user.NewLogin(userRepo, hasher, issuer, lockoutStore, cfg.Session.MaxPerUser)
	logoutUC := user.NewLogout(userRepo)
	logoutAllUC := user.NewLogoutAll(userRepo)
	updateProfileUC := user.NewUpdateProfile(userRepo, hasher)
	deleteAccountUC := user.NewDeleteAccount(userRepo, taskRepo, notify)
	setAvatarUC := user.NewSetAvatar(userRepo, normalizer)
	clearAvatarUC := user.NewClearAvatar(userRepo)
	getAvatarUC := user.NewGetAvatar(userRepo)
	taskSvc := task.NewService(taskRepo)

	usersHandler := handlers.NewUsersHandler(signUpUC, loginUC, logoutUC, logoutAllUC, updateProfileUC, deleteAccountUC, log)
	avatarHandler := handlers.NewAvatarHandler(setAvatarUC, clearAvatarUC, getAvatarUC, cfg.Avatar.MaxBytes, log)
	tasksHandler := handlers.NewTasksHandler(taskSvc, log)
	healthHandler := handlers.NewHealthHandler(client, redisClient)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	authenticate := middleware.NewAuthenticator(issuer, userRepo).Handler

	router := httprouter.NewRouter(httprouter.RouterConfig{
		UsersHandler:  usersHandler,
		AvatarHandler: avatarHandler,
		TasksHandler:  tasksHandler,
		HealthHandler: healthHandler,
		Authenticate:  authenticate,
		Log:           log,
		Secure:        secureMiddleware,
		IPRateLimit:   ipLimit,
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if worker != nil {
		worker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
