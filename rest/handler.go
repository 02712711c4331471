package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"news-indexer/domain"
	"news-indexer/summarizer"
	"news-indexer/usecase"
)

// Handler exposes the query surface over HTTP.
type Handler struct {
	list       *usecase.ListArticlesUsecase
	get        *usecase.GetArticleUsecase
	summarizer *summarizer.Client
	ready      func() bool
	log        *slog.Logger
}

func NewHandler(
	list *usecase.ListArticlesUsecase,
	get *usecase.GetArticleUsecase,
	sum *summarizer.Client,
	ready func() bool,
	log *slog.Logger,
) *Handler {
	return &Handler{list: list, get: get, summarizer: sum, ready: ready, log: log}
}

func (h *Handler) Register(e *echo.Echo) {
	v1 := e.Group("/v1")
	v1.GET("/health", h.Health)
	v1.GET("/articles", h.ListArticles)
	v1.GET("/articles/:id", h.GetArticle)
	v1.POST("/articles/:id/summarize", h.SummarizeArticle)
}

func (h *Handler) Health(c echo.Context) error {
	if h.ready != nil && !h.ready() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "starting"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListArticles(c echo.Context) error {
	page, err := intParam(c, "page", 1)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("page must be a number"))
	}
	size, err := intParam(c, "size", domain.DefaultPageSize)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("size must be a number"))
	}

	params := domain.SearchParams{
		Search:    c.QueryParam("search"),
		Tag:       c.QueryParam("tag"),
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
		Sort:      c.QueryParam("sort"),
		Page:      page,
		Size:      size,
	}

	result, err := h.list.Execute(c.Request().Context(), params)
	if err != nil {
		return h.httpError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"articles": result.Articles,
		"total":    result.Total,
		"page":     result.Page,
		"size":     result.Size,
		"pages":    result.Pages,
	})
}

func (h *Handler) GetArticle(c echo.Context) error {
	result, err := h.get.Execute(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"article":    result.Article,
		"display_id": result.DisplayID,
	})
}

func (h *Handler) SummarizeArticle(c echo.Context) error {
	if h.summarizer == nil || !h.summarizer.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, errorBody("summarization is not configured"))
	}

	result, err := h.get.Execute(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.httpError(c, err)
	}

	doc := domain.DecodeStoredDocument(result.Article)
	content := doc.Content.String()
	if content == "" {
		return c.JSON(http.StatusUnprocessableEntity, errorBody("article has no content to summarize"))
	}

	summary, err := h.summarizer.Summarize(c.Request().Context(), content)
	if err != nil {
		h.log.Error("summarization failed", "id", c.Param("id"), "err", err)
		return c.JSON(http.StatusBadGateway, errorBody("summarization failed"))
	}

	return c.JSON(http.StatusOK, map[string]string{"summary": summary})
}

// httpError maps domain errors to status codes without leaking internals.
func (h *Handler) httpError(c echo.Context, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, errorBody(ve.Error()))
	}
	var nfe *domain.NotFoundError
	if errors.As(err, &nfe) {
		return c.JSON(http.StatusNotFound, errorBody("article not found"))
	}
	var sue *domain.StoreUnavailableError
	if errors.As(err, &sue) {
		h.log.Error("store operation failed", "op", sue.Op, "err", sue.Err)
		return c.JSON(http.StatusBadGateway, errorBody("document store unavailable"))
	}
	if errors.Is(err, context.Canceled) {
		return c.JSON(http.StatusRequestTimeout, errorBody("request canceled"))
	}

	h.log.Error("request failed", "path", c.Path(), "err", err)
	return c.JSON(http.StatusInternalServerError, errorBody("internal error"))
}

func intParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
