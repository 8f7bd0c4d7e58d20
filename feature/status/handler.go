package status

import (
	"errors"
	"strconv"

	"zhi-theme/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the bootstrap status.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/status")
	group.Get("/", h.HandleStatus)
	group.Get("/history", h.HandleHistory)
	group.Post("/bootstrap", h.HandleBootstrap)
}

// HandleStatus returns the latest bootstrap result.
// @Summary Bootstrap Status
// @Description Returns the runtime, gate status and loader report of the latest bootstrap pass.
// @Tags status
// @Produce json
// @Success 200 {object} bootstrap.Result "Latest Result"
// @Failure 503 {object} map[string]string "No bootstrap pass yet"
// @Router /status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	res := h.service.Last()
	if res == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "pending"})
	}
	return c.JSON(res)
}

// HandleHistory lists recorded bootstrap runs.
// @Summary Bootstrap History
// @Description Lists recorded bootstrap runs, newest first, with their per-dependency outcomes.
// @Tags status
// @Produce json
// @Param limit query int false "Number of runs" default(10)
// @Success 200 {array} database.BootstrapRun "Recorded Runs"
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 404 {object} map[string]string "History disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /status/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be between 1 and 100"})
		}
		limit = n
	}

	runs, err := h.service.Recent(c.Context(), limit)
	if errors.Is(err, ErrHistoryDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("History query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}

// HandleBootstrap runs a new bootstrap pass.
// @Summary Run Bootstrap
// @Description Rediscovers the dependency list and loads it again. Passes never overlap.
// @Tags status
// @Produce json
// @Success 200 {object} bootstrap.Result "New Result"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /status/bootstrap [post]
func (h *Handler) HandleBootstrap(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering bootstrap pass")

	res, err := h.service.Rebootstrap(c.Context())
	if err != nil {
		l.Error("Bootstrap pass failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}
