package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const chartLabel = "Weight Timeline Chart"

// renderSlots is a per-client replace-or-create handle: each client owns at
// most one live rendering and a new render replaces it outright. At most
// maxClients renderings are held; the least recently used is evicted first
// and any rendering older than ttl is dropped.
type renderSlots[T any] struct {
	lru *expirable.LRU[string, T]
}

func newRenderSlots[T any](maxClients int, ttl time.Duration) renderSlots[T] {
	return renderSlots[T]{lru: expirable.NewLRU[string, T](maxClients, nil, ttl)}
}

func (s renderSlots[T]) replace(key string, v T) {
	s.lru.Add(key, v)
}

func (s renderSlots[T]) current(key string) (T, bool) {
	return s.lru.Get(key)
}

/* ─── Chart ──────────────────────────────────────────────────────────── */

// chartRenderer plots (week, weight) as a single labelled line series.
type chartRenderer struct {
	slots renderSlots[chartConfig]
}

func newChartRenderer(maxClients int, ttl time.Duration) *chartRenderer {
	return &chartRenderer{slots: newRenderSlots[chartConfig](maxClients, ttl)}
}

// render builds the chart for res and replaces the client's previous chart.
// Goal stats are not plotted.
func (r *chartRenderer) render(clientID string, res projectionResult) chartConfig {
	labels := make([]string, len(res.Records))
	data := make([]float64, len(res.Records))
	for i, rec := range res.Records {
		labels[i] = "Week " + strconv.Itoa(rec.Week)
		data[i] = rec.WeightLBS
	}
	cfg := chartConfig{
		Type: "line",
		Data: chartData{
			Labels: labels,
			Datasets: []chartDataset{
				{Label: chartLabel, Data: data, BorderWidth: 5},
			},
		},
	}
	r.slots.replace(clientID, cfg)
	return cfg
}

func (r *chartRenderer) current(clientID string) (chartConfig, bool) {
	return r.slots.current(clientID)
}

/* ─── Table ──────────────────────────────────────────────────────────── */

// tableRenderer lays records out as (week, weight, calories) rows.
type tableRenderer struct {
	slots renderSlots[[]tableRow]
}

func newTableRenderer(maxClients int, ttl time.Duration) *tableRenderer {
	return &tableRenderer{slots: newRenderSlots[[]tableRow](maxClients, ttl)}
}

// render replaces the client's table content with rows for res.
func (r *tableRenderer) render(clientID string, res projectionResult) []tableRow {
	rows := make([]tableRow, len(res.Records))
	for i, rec := range res.Records {
		rows[i] = tableRow{
			Week:                rec.Week,
			Weight:              fmt.Sprintf("%.2f", rec.WeightLBS),
			RecommendedCalories: rec.RecommendedCalories,
		}
	}
	r.slots.replace(clientID, rows)
	return rows
}

func (r *tableRenderer) current(clientID string) ([]tableRow, bool) {
	return r.slots.current(clientID)
}
