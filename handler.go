package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler holds shared dependencies (input store, projector, renderers) for
// all route handlers.
type Handler struct {
	store     inputStore
	projector projector
	charts    *chartRenderer
	tables    *tableRenderer
}

// newHandler wires a Handler around store using cfg's week cap and client
// limits.
func newHandler(store inputStore, cfg Config) *Handler {
	return &Handler{
		store:     store,
		projector: projector{maxWeeks: cfg.MaxWeeks},
		charts:    newChartRenderer(cfg.MaxClients, cfg.ClientTTL),
		tables:    newTableRenderer(cfg.MaxClients, cfg.ClientTTL),
	}
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryMany runs a query and scans all rows into []T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryMany[T any](pool *pgxpool.Pool, ctx context.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	router.GET("/api/activity-levels", h.getActivityLevels)

	// Client-scoped routes: the anonymous client id keys stored inputs and renderings.
	api := router.Group("/api", clientIDMiddleware())
	api.POST("/projection", h.createProjection)
	api.GET("/projection/inputs", h.getProjectionInputs)
	api.GET("/projection/chart", h.getProjectionChart)
	api.GET("/projection/table", h.getProjectionTable)
	api.POST("/mcp", h.callTool)
}
