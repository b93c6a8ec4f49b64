// Package api 提供 HTTP API 服务
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/tagd/internal/tagd/service"
)

type API struct {
	engine *gin.Engine
	server *http.Server

	tag         *Tag
	stem        *Stem
	author      *Author
	defaultTags *DefaultTags
}

func New(addr string, tagService *service.TagService, authorService *service.AuthorService, syncer *service.DefaultTagsSyncer) (*API, error) {
	engine := gin.Default()
	api := &API{
		engine:      engine,
		tag:         NewTag(tagService),
		stem:        NewStem(tagService),
		author:      NewAuthor(authorService),
		defaultTags: NewDefaultTags(syncer, tagService),
	}

	engine.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	group := engine.Group("/api")
	api.tag.RegisterRoutes(group)
	api.stem.RegisterRoutes(group)
	api.author.RegisterRoutes(group)
	api.defaultTags.RegisterRoutes(group)

	api.server = &http.Server{
		Addr:    addr,
		Handler: engine,
	}
	return api, nil
}

func (a *API) Run(ctx context.Context) error {
	err := a.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (a *API) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
