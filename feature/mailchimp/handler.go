package mailchimp

import (
	"errors"
	"strings"

	"audience-sync/core/logger"
	"audience-sync/core/reconcile"
	"audience-sync/core/table"
	"audience-sync/core/transport"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RowsResponse is the body returned by read endpoints.
type RowsResponse struct {
	Count int          `json:"count"`
	Rows  []*table.Row `json:"rows"`
}

// FetchRequest is the body of POST /mailchimp/members/fetch.
type FetchRequest struct {
	KeySet
	Columns []string `json:"columns"`
}

// ApplyRequest is the body of POST /mailchimp/members/apply.
type ApplyRequest struct {
	reconcile.Batches
	FailOnError bool `json:"fail_on_error"`
}

// Handler handles HTTP requests for the connector.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the connector routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/mailchimp")
	group.Get("/lists", h.HandleGetLists)
	group.Get("/schema/:kind", h.HandleGetSchema)
	group.Get("/members", h.HandleGetMembers)
	group.Post("/members/fetch", h.HandleFetchMembers)
	group.Post("/members/apply", h.HandleApplyMembers)
}

// HandleGetLists returns the audiences of the account.
// @Summary List Audiences
// @Description List the audiences visible to the API key. refresh=true bypasses the cache.
// @Tags mailchimp
// @Produce json
// @Param refresh query bool false "Drop the cached directory first"
// @Success 200 {array} mailchimp.ListSummary "Audiences"
// @Failure 502 {object} map[string]string "Remote API error"
// @Router /mailchimp/lists [get]
func (h *Handler) HandleGetLists(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	if c.QueryBool("refresh") {
		h.service.RefreshLists()
	}

	lists, err := h.service.Lists(c.UserContext())
	if err != nil {
		l.Error("List directory failed", zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(lists)
}

// HandleGetSchema returns the default logical schema for a resource kind.
// @Summary Get Schema
// @Description Default logical columns for the list or member kind.
// @Tags mailchimp
// @Produce json
// @Param kind path string true "Resource kind (list, member)"
// @Success 200 {array} schema.Column "Columns"
// @Failure 400 {object} map[string]string "Unknown kind"
// @Router /mailchimp/schema/{kind} [get]
func (h *Handler) HandleGetSchema(c *fiber.Ctx) error {
	cols, err := h.service.Schema(c.Params("kind"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cols)
}

// HandleGetMembers scans the members of the configured audience.
// @Summary Read Members
// @Description Full paginated member scan.
// @Tags mailchimp
// @Produce json
// @Param columns query string false "Comma separated logical columns"
// @Param limit query int false "Stop after this many rows"
// @Success 200 {object} mailchimp.RowsResponse "Rows"
// @Failure 502 {object} map[string]string "Remote API error"
// @Router /mailchimp/members [get]
func (h *Handler) HandleGetMembers(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	store := table.NewMemoryStore()
	store.Limit = c.QueryInt("limit", 0)

	if _, err := h.service.Read(c.UserContext(), KindMember, store, splitColumns(c.Query("columns"))); err != nil {
		l.Error("Member scan failed", zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(RowsResponse{Count: store.Len(), Rows: store.Rows()})
}

// HandleFetchMembers reads members by id or email.
// @Summary Fetch Members
// @Description Keyed member fetch. Unknown keys are omitted.
// @Tags mailchimp
// @Accept json
// @Produce json
// @Param request body mailchimp.FetchRequest true "Keys"
// @Success 200 {object} mailchimp.RowsResponse "Rows"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 502 {object} map[string]string "Remote API error"
// @Router /mailchimp/members/fetch [post]
func (h *Handler) HandleFetchMembers(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req FetchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Column == "" {
		req.Column = "id"
	}

	store := table.NewMemoryStore()
	if _, err := h.service.FetchMembers(c.UserContext(), store, req.KeySet, req.Columns); err != nil {
		l.Error("Member fetch failed", zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(RowsResponse{Count: store.Len(), Rows: store.Rows()})
}

// HandleApplyMembers applies a change set to the configured audience.
// @Summary Apply Change Set
// @Description Runs add, update and delete batches and returns per-item outcomes.
// @Tags mailchimp
// @Accept json
// @Produce json
// @Param request body mailchimp.ApplyRequest true "Change set"
// @Success 200 {object} reconcile.Report "Report"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 502 {object} map[string]string "Remote API error"
// @Router /mailchimp/members/apply [post]
func (h *Handler) HandleApplyMembers(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	status := reconcile.NewLogStatus(l)
	report, err := h.service.Apply(c.UserContext(), KindMember, req.Batches, status, reconcile.Options{FailOnError: req.FailOnError})
	if err != nil {
		l.Error("Apply failed", zap.Error(err))
		if report != nil {
			return c.Status(h.status(err)).JSON(fiber.Map{"error": err.Error(), "report": report})
		}
		return h.fail(c, err)
	}
	return c.JSON(report)
}

func (h *Handler) status(err error) int {
	var terr *transport.Error
	switch {
	case errors.Is(err, reconcile.ErrConfiguration):
		return fiber.StatusBadRequest
	case errors.As(err, &terr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	return c.Status(h.status(err)).JSON(fiber.Map{"error": err.Error()})
}

func splitColumns(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
