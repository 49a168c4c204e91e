package journal

import (
	"audience-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunResponse is the journal of one run.
type RunResponse struct {
	RunID    string       `json:"run_id"`
	Summary  []StateCount `json:"summary"`
	Outcomes []Outcome    `json:"outcomes"`
}

// Handler handles HTTP requests for journaled runs.
type Handler struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(db *gorm.DB, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{db: db, logger: logger}
}

// RegisterRoutes registers the journal routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/journal/:run", h.HandleGetRun)
}

// HandleGetRun returns the outcomes of a run.
// @Summary Get Run Journal
// @Description Per-state counts and the journaled outcomes of one apply run.
// @Tags journal
// @Produce json
// @Param run path string true "Run id"
// @Success 200 {object} journal.RunResponse "Run journal"
// @Failure 404 {object} map[string]string "Unknown run"
// @Failure 500 {object} map[string]string "Database error"
// @Router /journal/{run} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	runID := c.Params("run")

	outcomes, err := Outcomes(c.UserContext(), h.db, runID)
	if err != nil {
		l.Error("Journal lookup failed", zap.String("run_id", runID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(outcomes) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown run " + runID})
	}

	summary, err := Summary(c.UserContext(), h.db, runID)
	if err != nil {
		l.Error("Journal summary failed", zap.String("run_id", runID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(RunResponse{RunID: runID, Summary: summary, Outcomes: outcomes})
}
