package snapshot

import (
	"errors"

	"audience-sync/core/logger"
	"audience-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for snapshots.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the snapshot routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/snapshots")
	group.Get("/:kind", h.HandleList)
	group.Post("/:kind", h.HandleTake)
}

// HandleList lists the stored snapshots of a kind.
// @Summary List Snapshots
// @Description Snapshot object names for a resource kind, oldest first.
// @Tags snapshots
// @Produce json
// @Param kind path string true "Resource kind (list, member)"
// @Success 200 {array} string "Object names"
// @Failure 500 {object} map[string]string "Storage error"
// @Router /snapshots/{kind} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	names, err := h.service.Store().List(c.UserContext(), c.Params("kind"))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Snapshot listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(names)
}

// HandleTake snapshots a kind now.
// @Summary Take Snapshot
// @Description Reads every row of the kind and stores it in object storage.
// @Tags snapshots
// @Produce json
// @Param kind path string true "Resource kind (list, member)"
// @Success 201 {object} snapshot.Result "Snapshot"
// @Failure 400 {object} map[string]string "Unknown kind"
// @Failure 500 {object} map[string]string "Snapshot error"
// @Router /snapshots/{kind} [post]
func (h *Handler) HandleTake(c *fiber.Ctx) error {
	res, err := h.service.Take(c.UserContext(), c.Params("kind"))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Snapshot failed", zap.Error(err))
		code := fiber.StatusInternalServerError
		if errors.Is(err, reconcile.ErrConfiguration) {
			code = fiber.StatusBadRequest
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
