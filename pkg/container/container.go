package container

import (
	"context"
	"fmt"
	"time"

	"blog-backend/internal/config"
	authordomain "blog-backend/internal/domains/author"
	authorhandler "blog-backend/internal/domains/author/handler"
	authorrepo "blog-backend/internal/domains/author/repository"
	authorservice "blog-backend/internal/domains/author/service"
	categorydomain "blog-backend/internal/domains/category"
	categoryhandler "blog-backend/internal/domains/category/handler"
	categoryrepo "blog-backend/internal/domains/category/repository"
	categoryservice "blog-backend/internal/domains/category/service"
	mediadomain "blog-backend/internal/domains/media"
	mediahandler "blog-backend/internal/domains/media/handler"
	mediaservice "blog-backend/internal/domains/media/service"
	postdomain "blog-backend/internal/domains/post"
	posthandler "blog-backend/internal/domains/post/handler"
	postrepo "blog-backend/internal/domains/post/repository"
	postservice "blog-backend/internal/domains/post/service"
	userdomain "blog-backend/internal/domains/user"
	userhandler "blog-backend/internal/domains/user/handler"
	userrepo "blog-backend/internal/domains/user/repository"
	userservice "blog-backend/internal/domains/user/service"
	infracache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/infrastructure/queue"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

// Container wires configuration, infrastructure, repositories, services and
// handlers together for the API process.
type Container struct {
	Config *config.Config

	DB          *database.PostgresDB
	Cache       cache.Cache
	Storage     *storage.MinIOStorage
	QueueClient *queue.Client
	JWTManager  *jwt.Manager

	UserService     userdomain.Service
	AuthorService   authordomain.Service
	PostService     postdomain.Service
	CategoryService categorydomain.Service
	MediaService    mediadomain.Service

	UserHandler     *userhandler.Handler
	AuthorHandler   *authorhandler.Handler
	PostHandler     *posthandler.Handler
	CategoryHandler *categoryhandler.Handler
	MediaHandler    *mediahandler.Handler
}

// New builds the full dependency graph. Fails fast when any piece of
// infrastructure is unreachable.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	c.DB = database.NewPostgresDB(cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	c.Cache = infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("connect minio: %w", err)
	}
	c.Storage = minioStorage

	c.QueueClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	userRepository := userrepo.NewPostgresRepository(c.DB.Pool)
	authorRepository := authorrepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	postRepository := postrepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	categoryRepository := categoryrepo.NewPostgresRepository(c.DB.Pool, c.Cache)

	c.UserService = userservice.NewUserService(userRepository, authorRepository, c.JWTManager)
	c.AuthorService = authorservice.NewAuthorService(authorRepository, postRepository)
	c.PostService = postservice.NewPostService(postRepository, c.QueueClient)
	c.CategoryService = categoryservice.NewCategoryService(categoryRepository)
	c.MediaService = mediaservice.NewMediaService(c.Storage)

	c.UserHandler = userhandler.NewHandler(c.UserService)
	c.AuthorHandler = authorhandler.NewHandler(c.AuthorService, c.PostService)
	c.PostHandler = posthandler.NewHandler(c.PostService)
	c.CategoryHandler = categoryhandler.NewHandler(c.CategoryService)
	c.MediaHandler = mediahandler.NewHandler(c.MediaService)

	logger.Info("Container initialized", map[string]interface{}{
		"env": cfg.App.Environment,
	})
	return c, nil
}

// Cleanup releases held connections. Safe to call once on shutdown.
func (c *Container) Cleanup() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Error("Failed to close queue client", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("Container cleaned up", nil)
}
