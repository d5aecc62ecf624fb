package main

import (
	"context"
	"log"

	"github.com/minhvu/folio/adapters/event"
	httpAdapter "github.com/minhvu/folio/adapters/http"
	"github.com/minhvu/folio/adapters/media_storage"
	"github.com/minhvu/folio/adapters/persistence"
	authUC "github.com/minhvu/folio/internal/application/usecase/auth"
	postUC "github.com/minhvu/folio/internal/application/usecase/post"
	profileUC "github.com/minhvu/folio/internal/application/usecase/profile"
	projectUC "github.com/minhvu/folio/internal/application/usecase/project"
	"github.com/minhvu/folio/internal/cms"
	"github.com/minhvu/folio/internal/config"
	"github.com/minhvu/folio/internal/domain/post"
	"github.com/minhvu/folio/internal/domain/project"
	"github.com/minhvu/folio/pkg/auth"
	"github.com/minhvu/folio/pkg/logger"
	"github.com/minhvu/folio/pkg/tracing"
)

// workspaceLoader adapts the repositories to the console's bulk-fetch
// contract.
type workspaceLoader struct {
	projectRepo project.Repository
	postRepo    post.Repository
}

func (l *workspaceLoader) AllProjects(ctx context.Context) ([]*project.Project, error) {
	return l.projectRepo.ListAll(ctx)
}

func (l *workspaceLoader) AllPosts(ctx context.Context) ([]*post.BlogPost, error) {
	return l.postRepo.ListAll(ctx)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "folio-api")
		if err != nil {
			appLogger.Fatal("Cannot init tracing", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				appLogger.Error("Failed to shut down tracer provider", err)
			}
		}()
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepository(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	projectRepo := persistence.NewPostgresProjectRepo(dbPool, appLogger)
	postRepo := persistence.NewPostgresPostRepo(dbPool, appLogger)
	sessionStore := persistence.NewRedisSessionStore(redisClient)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	publisher := event.NewKafkaContentPublisher(kafkaClient, appLogger)

	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Use cases
	signInUseCase := authUC.NewSignInUseCase(userRepo, jwtSvc, appLogger)
	signOutUseCase := authUC.NewSignOutUseCase(jwtSvc, sessionStore, appLogger)
	sessionUseCase := authUC.NewCurrentSessionUseCase(jwtSvc, sessionStore, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo)
	projectUseCase := projectUC.NewProjectUseCase(projectRepo, appLogger)
	uploadImageUseCase := projectUC.NewUploadProjectImageUseCase(projectRepo, uploader, appLogger)
	createPostUseCase := postUC.NewCreatePostUseCase(postRepo, publisher, appLogger)
	updatePostUseCase := postUC.NewUpdatePostUseCase(postRepo, publisher, appLogger)
	deletePostUseCase := postUC.NewDeletePostUseCase(postRepo, publisher, appLogger)
	listPostsUseCase := postUC.NewListPostsUseCase(postRepo)
	rssUseCase := postUC.NewRSSUseCase(postRepo, cfg, appLogger)

	// Admin console
	console := cms.NewConsole(&workspaceLoader{projectRepo: projectRepo, postRepo: postRepo}, appLogger)

	// HTTP handlers
	handlers := httpAdapter.Handlers{
		Auth:    httpAdapter.NewAuthHandler(signInUseCase, signOutUseCase, sessionUseCase, console.Gate, appLogger),
		Profile: httpAdapter.NewProfileHandler(profileUseCase),
		Project: httpAdapter.NewProjectHandler(projectUseCase, uploadImageUseCase, console),
		Post:    httpAdapter.NewPostHandler(createPostUseCase, updatePostUseCase, deletePostUseCase, console),
		Public:  httpAdapter.NewPublicHandler(profileUseCase, projectUseCase, listPostsUseCase, appLogger),
		RSS:     httpAdapter.NewRSSHandler(rssUseCase, appLogger),
	}

	authMiddleware := httpAdapter.AuthMiddleware(sessionUseCase, console.Gate, appLogger)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	router := httpAdapter.NewRouter(handlers, authMiddleware, errorMiddleware)

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
