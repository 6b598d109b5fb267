package inventory

import (
	"bufio"
	"context"
	"errors"

	"stock-reconciler/core/logger"
	"stock-reconciler/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Get("/spot/stream", h.HandleSpotStream)
	group.Post("/spot/stream", h.HandleSpotStream)
	group.Get("/full/stream", h.HandleFullStream)
	group.Post("/spot", h.HandleSpotReport)
	group.Post("/classify", h.HandleClassify)
}

// SpotRequestBody lists the keys of a spot run.
type SpotRequestBody struct {
	SKUs []string `json:"skus"`
}

// ClassifyRequestBody is a snapshot to classify.
type ClassifyRequestBody struct {
	Mode     reconcile.Mode          `json:"mode"`
	Snapshot reconcile.StockSnapshot `json:"snapshot"`
}

// HandleSpotStream streams a spot reconciliation.
// @Summary Stream Spot Reconciliation
// @Description Compares catalog and primary warehouse stock for the given SKUs and streams progress, results and errors as server-sent events.
// @Tags inventory
// @Accept json
// @Produce text/event-stream
// @Param skus query string false "Comma separated SKUs (GET)"
// @Param body body SpotRequestBody false "SKUs (POST)"
// @Success 200 {string} string "Event stream"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /inventory/spot/stream [get]
// @Router /inventory/spot/stream [post]
func (h *Handler) HandleSpotStream(c *fiber.Ctx) error {
	keys, err := spotKeys(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	req, err := h.service.SpotRequest(keys)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	logger.WithRayID(h.service.logger, c).Info("Starting spot stream", zap.Int("keys", len(req.Keys)))
	return h.openStream(c, req)
}

// HandleFullStream streams a full reconciliation.
// @Summary Stream Full Reconciliation
// @Description Analyses every feed-unsellable item against the catalog and both warehouses and streams the results as server-sent events.
// @Tags inventory
// @Produce text/event-stream
// @Param import query string false "Stored secondary warehouse import to use"
// @Success 200 {string} string "Event stream"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /inventory/full/stream [get]
func (h *Handler) HandleFullStream(c *fiber.Ctx) error {
	req, err := h.service.FullRequest(c.UserContext(), c.Query("import"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	logger.WithRayID(h.service.logger, c).Info("Starting full stream", zap.String("secondary", req.Secondary.Name()))
	return h.openStream(c, req)
}

// HandleSpotReport runs a spot reconciliation and returns the whole report.
// @Summary Spot Reconciliation Report
// @Description Runs a spot reconciliation to completion and returns results and errors as one document.
// @Tags inventory
// @Accept json
// @Produce json
// @Param body body SpotRequestBody true "SKUs"
// @Success 200 {object} RunResponse "Report"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 502 {object} map[string]string "Upstream failure"
// @Router /inventory/spot [post]
func (h *Handler) HandleSpotReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body SpotRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	req, err := h.service.SpotRequest(body.SKUs)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resp, err := h.service.Collect(c.UserContext(), req)
	if err != nil {
		l.Error("Spot reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resp)
}

// HandleClassify classifies a caller-supplied snapshot.
// @Summary Classify Snapshot
// @Description Applies the decision matrix and severity overlay to a snapshot without contacting any source.
// @Tags inventory
// @Accept json
// @Produce json
// @Param body body ClassifyRequestBody true "Snapshot"
// @Success 200 {object} reconcile.AnalysisResult "Result"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /inventory/classify [post]
func (h *Handler) HandleClassify(c *fiber.Ctx) error {
	var body ClassifyRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.Classify(body.Snapshot, body.Mode)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// openStream switches the response to an event stream. The run outlives the
// handler, so it gets its own context; a failed write cancels it.
func (h *Handler) openStream(c *fiber.Ctx, req reconcile.Request) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		h.service.Stream(context.Background(), req, w)
	}))
	return nil
}

func spotKeys(c *fiber.Ctx) ([]string, error) {
	if c.Method() == fiber.MethodPost {
		var body SpotRequestBody
		if err := c.BodyParser(&body); err != nil {
			return nil, errors.New("invalid request body")
		}
		return body.SKUs, nil
	}
	return reconcile.SplitKeys(c.Query("skus")), nil
}
