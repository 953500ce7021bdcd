package wire

import (
	"Newsroom/internal/api"
	"Newsroom/internal/api/config"
	"Newsroom/internal/api/handler"
	"Newsroom/internal/api/middleware"
	"Newsroom/internal/job"
	"Newsroom/internal/pkg/audit"
	"Newsroom/internal/pkg/cron"
	"Newsroom/internal/pkg/es"
	"Newsroom/internal/pkg/kafka"
	"Newsroom/internal/pkg/logger"
	"Newsroom/internal/pkg/mail"
	"Newsroom/internal/pkg/minio"
	"Newsroom/internal/pkg/mongo"
	"Newsroom/internal/pkg/security"
	"Newsroom/internal/pkg/storage"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/repository"
	"Newsroom/internal/service"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer holds the top level components of the API process.
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager // nil without kafka
	CronMgr      *cron.Manager
	Producer     *kafka.Producer  // nil without kafka
	LocalQueue   *mail.LocalQueue // nil with kafka
}

// Close flushes in-flight email work.
func (a *ApplicationContainer) Close() {
	if a.LocalQueue != nil {
		a.LocalQueue.Wait()
	}
	if a.Producer != nil {
		if err := a.Producer.Close(); err != nil {
			log.Error("Failed to close kafka producer", "err", err)
		}
	}
}

func BuildApplication(ctx context.Context, db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	userRepo := repository.NewUserRepo(db)
	permissionRepo := repository.NewPermissionRepo(db)

	logEntryRepo, err := buildLogStore(ctx, db, cfg)
	if err != nil {
		return nil, err
	}
	logger.AttachEntryStore(logEntryRepo, cfg.Log.PersistLevel)

	store, err := buildStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	postIndex, err := buildPostIndex(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// email delivery: kafka when configured, otherwise in process
	renderer, err := mail.NewRenderer(mail.RendererConfig{
		FrontendURL:   cfg.FrontendURL,
		OTPTTLSeconds: cfg.Auth.OTPTTLSeconds,
		SupportEmail:  cfg.Email.From,
	})
	if err != nil {
		return nil, err
	}
	retries := mail.NewRedisRetryStore()
	worker := mail.NewWorker(renderer, mail.NewSMTPSender(cfg.Email), retries)

	app := &ApplicationContainer{DB: db}
	var queue mail.Queue
	if cfg.Kafka.Enabled {
		if app.Producer, err = kafka.NewProducer(cfg); err != nil {
			return nil, err
		}
		if app.KafkaManager, err = kafka.NewConsumerManager(cfg, worker); err != nil {
			app.Close()
			return nil, err
		}
		queue = app.Producer
	} else {
		app.LocalQueue = mail.NewLocalQueue(worker)
		queue = app.LocalQueue
	}

	auditLogger := audit.NewLogger(audit.NewSlogSink(nil))
	slugs := util.NewSlugGenerator(cfg.Slug.Transliterate)
	tokens := security.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.JWTExpireHours)*time.Hour)

	emailService := service.NewEmailService(queue)
	postService := service.NewPostService(postRepo, postIndex)
	postAdminService := service.NewPostAdminService(postRepo, categoryRepo, auditLogger, slugs, postIndex)
	categoryService := service.NewCategoryService(categoryRepo)
	categoryAdminService := service.NewCategoryAdminService(categoryRepo, auditLogger)
	permissionService := service.NewPermissionService(permissionRepo, userRepo)
	userAdminService := service.NewUserAdminService(userRepo, permissionService, emailService, auditLogger,
		time.Duration(cfg.Auth.InviteTTLHours)*time.Hour)
	authService := service.NewAuthService(userRepo, emailService, tokens, cfg.Auth.OTPEnabled,
		time.Duration(cfg.Auth.OTPTTLSeconds)*time.Second)
	accountService := service.NewAccountService(userRepo, emailService, time.Duration(cfg.Auth.CodeTTLSeconds)*time.Second)
	mediaService := service.NewMediaService(store, cfg.Storage.Location, cfg.Storage.ThumbWidth, cfg.Storage.MaxUploadMB)
	logEntryService := service.NewLogEntryService(logEntryRepo)
	metaService := service.NewMetaService()

	paginator := handler.Paginator{PageSize: cfg.Pagination.PageSize, MaxPageSize: cfg.Pagination.MaxPageSize}
	handlers := &api.HandlersGroup{
		PostHandler:          handler.NewPostHandler(postService, store, paginator),
		CategoryHandler:      handler.NewCategoryHandler(categoryService),
		AdminPostHandler:     handler.NewAdminPostHandler(postAdminService, store, paginator),
		AdminCategoryHandler: handler.NewAdminCategoryHandler(categoryAdminService, paginator),
		AdminUserHandler:     handler.NewAdminUserHandler(userAdminService, permissionService, paginator),
		AdminLogHandler:      handler.NewAdminLogHandler(logEntryService, paginator),
		AdminMetaHandler:     handler.NewAdminMetaHandler(metaService),
		MediaHandler:         handler.NewMediaHandler(mediaService),
		AuthHandler:          handler.NewAuthHandler(authService, permissionService),
		AccountHandler:       handler.NewAccountHandler(accountService),
		AuthService:          authService,
		PermissionService:    permissionService,
		RateLimiter:          middleware.NewIPRateLimiter(cfg.Auth.LoginRatePerMin),
	}
	app.Router = api.SetupRouter(handlers, cfg)

	app.CronMgr = cron.NewCronManager()
	app.CronMgr.Add("email-retry", cfg.Cron.EmailRetry, job.NewEmailRetryJob(retries, queue))
	app.CronMgr.Add("log-retention", cfg.Cron.LogRetention, job.NewLogRetentionJob(logEntryService, cfg.Log.RetentionDays))
	if postIndex != nil {
		searchIndexService := service.NewSearchIndexService(postRepo, postIndex)
		app.CronMgr.Add("search-reindex", cfg.Cron.Reindex, job.NewSearchReindexJob(searchIndexService))
	}

	return app, nil
}

func buildLogStore(ctx context.Context, db *gorm.DB, cfg *config.Config) (repository.LogEntryRepo, error) {
	switch cfg.LogStore.Driver {
	case "", "database":
		return repository.NewLogEntryRepo(db), nil
	case "mongo":
		mongoDB, err := mongo.InitMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if err = mongo.EnsureIndexes(ctx, mongoDB); err != nil {
			return nil, err
		}
		return mongo.NewLogEntryRepo(mongoDB), nil
	default:
		return nil, fmt.Errorf("unknown log store driver %q", cfg.LogStore.Driver)
	}
}

func buildStorage(ctx context.Context, cfg *config.Config) (storage.ObjectStorage, error) {
	if !cfg.Storage.UseS3 {
		return storage.NewLocalStorage(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL), nil
	}
	client, err := minio.NewClient(ctx, cfg.MinIO)
	if err != nil {
		return nil, err
	}
	return minio.NewStore(client, cfg.MinIO), nil
}

// buildPostIndex returns a nil interface when search runs on the database.
func buildPostIndex(ctx context.Context, cfg *config.Config) (es.PostIndex, error) {
	if !cfg.Elastic.Enabled {
		return nil, nil
	}
	client, err := es.NewClient(ctx, cfg.Elastic)
	if err != nil {
		return nil, err
	}
	postIndex := es.NewPostIndex(client, cfg.Elastic.PostIndex)
	if err = postIndex.EnsureIndex(ctx); err != nil {
		return nil, err
	}
	return postIndex, nil
}
