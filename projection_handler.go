package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// runProjection validates raw and projects it. On success the caller's chart
// and table are replaced and the normalized inputs are saved; a failed save
// is logged but does not fail the projection.
func (h *Handler) runProjection(ctx context.Context, clientID string, raw rawProfile) (projectionResult, error) {
	p, err := validateProfile(raw)
	if err != nil {
		return projectionResult{}, err
	}

	res, err := h.projector.project(p)
	if err != nil {
		log.Printf("[runProjection] %v", err)
		return projectionResult{}, err
	}

	h.charts.render(clientID, res)
	h.tables.render(clientID, res)

	if err := h.store.saveInputs(ctx, clientID, p.inputFields()); err != nil {
		log.Printf("[runProjection] Save inputs error: %v", err)
	}
	return res, nil
}

// writeProjectionError translates a runProjection error into a response.
// Validation failures carry every violation, not just the first.
func writeProjectionError(c *gin.Context, err error) {
	var verrs validationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": verrs.Error(), "violations": verrs})
	case errors.Is(err, ErrNonConvergence):
		apiError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		apiError(c, http.StatusInternalServerError, "failed to compute projection")
	}
}

// createProjection validates the submitted profile and returns its projection.
// POST /api/projection. Body: rawProfile fields as strings or numbers.
// 400 on validation failure, 422 when the projection does not converge.
func (h *Handler) createProjection(c *gin.Context) {
	clientID := c.GetString("client_id")

	var body rawProfile
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.runProjection(c, clientID, body)
	if err != nil {
		writeProjectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// getProjectionInputs returns the client's last accepted inputs keyed by field
// name, used to pre-fill the form. GET /api/projection/inputs.
// Returns an empty object (not null) when nothing has been saved.
func (h *Handler) getProjectionInputs(c *gin.Context) {
	clientID := c.GetString("client_id")

	inputs, err := h.store.loadInputs(c, clientID)
	if err != nil {
		log.Printf("[getProjectionInputs] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to load saved inputs")
		return
	}
	if inputs == nil {
		inputs = map[string]string{}
	}

	c.JSON(http.StatusOK, inputs)
}

// getProjectionChart returns the client's current chart config.
// GET /api/projection/chart. 404 until a projection has been rendered.
func (h *Handler) getProjectionChart(c *gin.Context) {
	cfg, ok := h.charts.current(c.GetString("client_id"))
	if !ok {
		apiError(c, http.StatusNotFound, "no projection rendered yet")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// getProjectionTable returns the client's current table rows.
// GET /api/projection/table. 404 until a projection has been rendered.
func (h *Handler) getProjectionTable(c *gin.Context) {
	rows, ok := h.tables.current(c.GetString("client_id"))
	if !ok {
		apiError(c, http.StatusNotFound, "no projection rendered yet")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// getActivityLevels returns the selectable activity factors in form order.
// GET /api/activity-levels (public, no client id needed).
func (h *Handler) getActivityLevels(c *gin.Context) {
	c.JSON(http.StatusOK, activityLevels)
}
