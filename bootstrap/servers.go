package bootstrap

import (
	"news-indexer/config"
	"news-indexer/logger"
	"news-indexer/rest"
	"news-indexer/summarizer"
	"news-indexer/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// newEchoServer creates the REST HTTP server.
func newEchoServer(
	cfg *config.Config,
	listUsecase *usecase.ListArticlesUsecase,
	getUsecase *usecase.GetArticleUsecase,
	ready func() bool,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	sum := summarizer.NewClient(cfg.Summarizer.BaseURL, cfg.Summarizer.APIKey, cfg.Summarizer.Model)
	handler := rest.NewHandler(listUsecase, getUsecase, sum, ready, logger.Logger)
	handler.Register(e)

	e.Server.ReadHeaderTimeout = cfg.HTTP.ReadHeaderTimeout

	return e
}
