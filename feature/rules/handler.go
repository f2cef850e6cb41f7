package rules

import (
	"bytes"

	"rule-sync/core/logger"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for rule reconciliation.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the rules routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/rules")
	group.Post("/detect-changes", h.HandleDetectChanges)
	group.Post("/export-toml", h.HandleExportTOML)
	group.Post("/compute-hash", h.HandleComputeHash)
	group.Post("/revert-rule", h.HandleRevertRule)
	group.Post("/revert-exception-items", h.HandleRevertExceptionItems)
	group.Post("/parse-rule-content", h.HandleParseRuleContent)
}

// decode parses the request body. A plain BodyParser would lose integer
// precision on rule content; UseNumber keeps numeric literals intact so
// fingerprints stay stable.
func (h *Handler) decode(c *fiber.Ctx, out any) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return h.validate.Struct(out)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// HandleDetectChanges runs one reconciliation pass.
// @Summary Detect Rule Changes
// @Description Compares the live rule population against the supplied baseline snapshots and returns the classified change set. Export failures are reported inside the result, not as HTTP errors.
// @Tags rules
// @Accept json
// @Produce json
// @Param request body DetectChangesRequest true "Connection and baseline"
// @Success 200 {object} reconcile.Report "Change Report"
// @Failure 400 {object} map[string]string "Invalid Request"
// @Router /rules/detect-changes [post]
func (h *Handler) HandleDetectChanges(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req DetectChangesRequest
	if err := h.decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	l.Info("Detecting rule changes",
		zap.Int("baseline_rules", len(req.BaselineSnapshots)),
		zap.String("space", req.Space))

	report := h.service.DetectChanges(c.Context(), req)

	l.Info("Detection finished",
		zap.Int("changes", len(report.Changes)),
		zap.Int("errors", len(report.Errors)))
	return c.JSON(report)
}

// HandleExportTOML renders a rule as TOML.
// @Summary Export Rule as TOML
// @Description Serializes one rule into the TOML document layout and returns it together with the rule fingerprint.
// @Tags rules
// @Accept json
// @Produce json
// @Param request body ExportTOMLRequest true "Rule to export"
// @Success 200 {object} ExportTOMLResponse "TOML document and hash"
// @Failure 400 {object} map[string]string "Invalid Request"
// @Router /rules/export-toml [post]
func (h *Handler) HandleExportTOML(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ExportTOMLRequest
	if err := h.decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	doc, hash, err := h.service.ExportTOML(req.Rule)
	if err != nil {
		l.Error("TOML export failed", zap.Error(err))
		return badRequest(c, err)
	}
	return c.JSON(ExportTOMLResponse{TOMLContent: doc, RuleHash: hash})
}

// HandleComputeHash fingerprints a rule.
// @Summary Compute Rule Hash
// @Description Computes the stable content fingerprint of one rule. Volatile audit fields never affect the result.
// @Tags rules
// @Accept json
// @Produce json
// @Param request body ComputeHashRequest true "Rule to fingerprint"
// @Success 200 {object} ComputeHashResponse "Fingerprint"
// @Failure 400 {object} map[string]string "Invalid Request"
// @Router /rules/compute-hash [post]
func (h *Handler) HandleComputeHash(c *fiber.Ctx) error {
	var req ComputeHashRequest
	if err := h.decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(ComputeHashResponse{RuleHash: h.service.ComputeHash(req.Rule)})
}

// HandleRevertRule restores a rule to a previous state.
// @Summary Revert Rule
// @Description Restores a rule to the supplied content. A rule that no longer exists is recreated. Remote rejections are reported in the result body.
// @Tags rules
// @Accept json
// @Produce json
// @Param request body RevertRuleRequest true "Connection and target state"
// @Success 200 {object} reconcile.RevertResult "Revert outcome"
// @Failure 400 {object} map[string]string "Invalid Request"
// @Router /rules/revert-rule [post]
func (h *Handler) HandleRevertRule(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req RevertRuleRequest
	if err := h.decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	result := h.service.RevertRule(c.Context(), req)
	if !result.Success {
		l.Warn("Rule revert reported failure", zap.String("message", result.Message))
	}
	return c.JSON(result)
}

// HandleRevertExceptionItems restores an exception-item collection.
// @Summary Revert Exception Items
// @Description Plans and applies the create/update/delete calls that restore an exception-item collection to its previous state, with partial-success reporting.
// @Tags rules
// @Accept json
// @Produce json
// @Param request body RevertExceptionItemsRequest true "Previous and current item collections"
// @Success 200 {object} reconcile.ItemRevertResult "Revert outcome"
// @Failure 400 {object} map[string]string "Invalid Request"
// @Router /rules/revert-exception-items [post]
func (h *Handler) HandleRevertExceptionItems(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req RevertExceptionItemsRequest
	if err := h.decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	result := h.service.RevertExceptionItems(c.Context(), req)
	if len(result.Errors) > 0 {
		l.Warn("Exception item revert had failures", zap.Strings("errors", result.Errors))
	}
	return c.JSON(result)
}

// HandleParseRuleContent decodes a rule document.
// @Summary Parse Rule Content
// @Description Decodes a JSON or TOML rule document into the normalized rule mapping. A TOML [rule] table is unwrapped.
// @Tags rules
// @Accept json
// @Produce json
// @Param request body ParseRuleContentRequest true "Document and format hint"
// @Success 200 {object} ParseRuleContentResponse "Normalized rule"
// @Failure 400 {object} map[string]string "Invalid Request or Unparseable Document"
// @Router /rules/parse-rule-content [post]
func (h *Handler) HandleParseRuleContent(c *fiber.Ctx) error {
	var req ParseRuleContentRequest
	if err := h.decode(c, &req); err != nil {
		return badRequest(c, err)
	}

	parsed, err := h.service.ParseRuleContent(req.Content, req.Format, req.Filename)
	if err != nil {
		return badRequest(c, err)
	}
	return c.JSON(ParseRuleContentResponse{Rule: parsed})
}
