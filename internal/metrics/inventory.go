// Package metrics exposes inventory state to Prometheus.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"pantry/internal/freshness"
	"pantry/internal/model"
)

// RecordSource is anything that can list the current collection.
type RecordSource interface {
	All(ctx context.Context) []model.Record
}

var classes = []freshness.Class{
	freshness.Safe,
	freshness.Near,
	freshness.Expired,
	freshness.Consumed,
	freshness.Unknown,
}

// InventoryCollector reports the number of records per freshness class,
// classified at scrape time.
type InventoryCollector struct {
	src  RecordSource
	now  func() time.Time
	desc *prometheus.Desc
}

func NewInventoryCollector(src RecordSource, now func() time.Time) *InventoryCollector {
	if now == nil {
		now = time.Now
	}
	return &InventoryCollector{
		src: src,
		now: now,
		desc: prometheus.NewDesc(
			"pantry_items",
			"Number of tracked items by freshness class.",
			[]string{"class"}, nil,
		),
	}
}

func (c *InventoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *InventoryCollector) Collect(ch chan<- prometheus.Metric) {
	today := c.now()
	counts := make(map[freshness.Class]int, len(classes))
	for _, r := range c.src.All(context.Background()) {
		counts[freshness.Classify(r, today)]++
	}
	for _, class := range classes {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(counts[class]), string(class))
	}
}
