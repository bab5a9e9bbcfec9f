package steps

import (
	"context"
	"net/http"

	"github.com/Ramsey-B/fern/pkg/steps"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/Ramsey-B/fern/pkg/utils"
	"github.com/labstack/echo/v4"
)

// Service trains, bakes and reports stored steps.
type Service interface {
	Prep(ctx context.Context, doc steps.Document, rows []map[string]any, outcomes []string) (steps.Document, error)
	Bake(ctx context.Context, id string, rows []map[string]any) ([]map[string]any, error)
	Get(ctx context.Context, id string) (steps.Document, error)
	Tidy(ctx context.Context, id string) ([]map[string]any, error)
	Delete(ctx context.Context, id string) error
}

type PrepRequest struct {
	Step     steps.Document   `json:"step" validate:"required"`
	Rows     []map[string]any `json:"rows" validate:"required"`
	Outcomes []string         `json:"outcomes"`
}

type BakeRequest struct {
	Rows []map[string]any `json:"rows" validate:"required"`
}

type RowsResponse struct {
	Rows []map[string]any `json:"rows"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/steps")
	g.POST("/prep", h.Prep)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/bake", h.Bake)
	g.GET("/:id/tidy", h.Tidy)
}

func (h *Handler) Prep(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "steps.Prep")
	defer span.End()

	req, err := utils.BindJSONRows[PrepRequest](c)
	if err != nil {
		return err
	}

	doc, err := h.service.Prep(ctx, req.Step, req.Rows, req.Outcomes)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, doc)
}

func (h *Handler) Bake(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "steps.Bake")
	defer span.End()

	req, err := utils.BindJSONRows[BakeRequest](c)
	if err != nil {
		return err
	}

	rows, err := h.service.Bake(ctx, c.Param("id"), req.Rows)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RowsResponse{Rows: rows})
}

func (h *Handler) Get(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "steps.Get")
	defer span.End()

	doc, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, doc)
}

func (h *Handler) Tidy(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "steps.Tidy")
	defer span.End()

	rows, err := h.service.Tidy(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RowsResponse{Rows: rows})
}

func (h *Handler) Delete(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "steps.Delete")
	defer span.End()

	if err := h.service.Delete(ctx, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
