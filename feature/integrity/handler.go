package integrity

import (
	"errors"

	"audience-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/journal", h.HandleJournalCheck)
	group.Get("/remote", h.HandleRemoteCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the storage, journal and remote checks. Disabled checks report status "disabled".
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.UserContext()
	report := make(map[string]any)

	if missing, err := h.service.CheckStorage(ctx); err != nil {
		report["storage"] = failure(err)
	} else {
		report["storage"] = map[string]any{"status": "ok", "missing": missing}
	}

	if jr, err := h.service.CheckJournal(); err != nil {
		report["journal"] = failure(err)
	} else {
		report["journal"] = jr
	}

	if rr, err := h.service.CheckRemote(ctx); err != nil {
		report["remote"] = failure(err)
	} else {
		report["remote"] = rr
	}

	return c.JSON(report)
}

// HandleStorageCheck checks and optionally fixes the snapshot folders.
// @Summary Check Snapshot Storage
// @Description Checks that the bucket and the snapshot folders exist. Optionally creates missing folders.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create missing folders"
// @Success 200 {object} map[string]interface{} "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Check disabled"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.QueryBool("fix")

	missing, err := h.service.CheckStorage(c.UserContext())
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return h.fail(c, err)
	}

	if len(missing) > 0 {
		l.Warn("Missing snapshot folders detected", zap.Strings("missing", missing))

		if fix {
			if err := h.service.FixStorage(c.UserContext(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix storage",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleJournalCheck checks the journal table schema.
// @Summary Check Journal Schema
// @Description Compares the journal table columns with the outcome model.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.JournalReport "Journal Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Check disabled"
// @Router /integrity/journal [get]
func (h *Handler) HandleJournalCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckJournal()
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Journal check failed", zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(report)
}

// HandleRemoteCheck checks the Marketing API.
// @Summary Check Remote API
// @Description Lists the audiences and resolves the configured audience.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.RemoteReport "Remote Report"
// @Failure 503 {object} map[string]string "Check disabled"
// @Router /integrity/remote [get]
func (h *Handler) HandleRemoteCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckRemote(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	if !report.Reachable {
		logger.WithRayID(h.service.logger, c).Warn("Remote API unreachable", zap.String("error", report.Error))
	}
	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if errors.Is(err, ErrDisabled) {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func failure(err error) map[string]any {
	status := "error"
	if errors.Is(err, ErrDisabled) {
		status = "disabled"
	}
	return map[string]any{"status": status, "error": err.Error()}
}
