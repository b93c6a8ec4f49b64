// Package tagd 提供标签服务器的主入口和初始化逻辑
package tagd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jimmicro/grace"
	"github.com/jimyag/tagd/internal/tagd/api"
	"github.com/jimyag/tagd/internal/tagd/config"
	"github.com/jimyag/tagd/internal/tagd/repository"
	"github.com/jimyag/tagd/internal/tagd/service"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg  *config.Config
	api  *api.API
	repo *repository.Repository
}

func New(cfg *config.Config) (*Server, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger

	// 1. 打开数据库
	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	logger.Info().Str("db_path", cfg.DBPath).Msg("Repository opened")

	// 2. 创建仓库
	tagRepo := repository.NewTagRepository(repo.DB())
	stemRepo := repository.NewStemRepository(repo.DB())
	authorRepo := repository.NewAuthorRepository(repo.DB())

	// 3. 登记实体类型
	entityTypes := service.NewEntityTypes(cfg.EntityTypes...)
	logger.Info().Strs("entity_types", entityTypes.Names()).Msg("Entity types registered")

	// 4. 创建服务
	authorService := service.NewAuthorService(authorRepo)
	tagService := service.NewTagService(tagRepo, stemRepo, authorService, entityTypes)

	// 5. 创建默认标签同步器（未配置时 API 会返回配置错误）
	syncCfg := service.SyncConfig{}
	if cfg.DefaultTags.Author != "" {
		syncCfg.Author = cfg.DefaultTags.Author
	}
	if cfg.DefaultTags.Language != "" {
		syncCfg.Language = cfg.DefaultTags.Language
	}
	syncer := service.NewDefaultTagsSyncer(tagService, syncCfg)

	// 6. 创建 API
	apiInstance, err := api.New(cfg.Address, tagService, authorService, syncer)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("create api: %w", err)
	}

	server := &Server{
		cfg:  cfg,
		api:  apiInstance,
		repo: repo,
	}
	return server, nil
}

func (s *Server) Run(ctx context.Context) error {
	// 使用 grace.Shepherd 管理服务生命周期
	services := []grace.Grace{
		s.api,
	}

	shepherd := grace.NewShepherd(
		services,
		grace.WithTimeout(30*time.Second),
		grace.WithLogger(&zerologLogger{}),
	)

	shepherd.Start(ctx)
	return s.repo.Close()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.api.Shutdown(ctx); err != nil {
		return err
	}
	return s.repo.Close()
}

// Name 实现 grace.Grace 接口
func (s *Server) Name() string {
	return "Tagd Server"
}

// zerologLogger 实现 grace.Logger 接口
type zerologLogger struct{}

func (l *zerologLogger) Info(msg string, args ...interface{}) {
	logger := zerolog.DefaultContextLogger.Info()
	if len(args) > 0 {
		logger.Msgf(msg, args...)
	} else {
		logger.Msg(msg)
	}
}

func (l *zerologLogger) Error(msg string, args ...interface{}) {
	logger := zerolog.DefaultContextLogger.Error()
	if len(args) > 0 {
		logger.Msgf(msg, args...)
	} else {
		logger.Msg(msg)
	}
}
