package metrics

import (
	"context"
	"strings"
	"testing"
	"time"

	"pantry/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type records []model.Record

func (r records) All(context.Context) []model.Record { return r }

func TestInventoryCollector(t *testing.T) {
	today := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	src := records{
		{Name: "Milk", ExpiryDate: "2024-06-03"},
		{Name: "Cheese", ExpiryDate: "2024-06-08"},
		{Name: "Yogurt", ExpiryDate: "2024-05-30"},
		{Name: "Rice", ExpiryDate: "2025-01-01"},
		{Name: "Salt"},
		{Name: "Bread", ExpiryDate: "2024-05-30", Consumed: true},
	}

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewInventoryCollector(src, func() time.Time { return today })))

	want := `
# HELP pantry_items Number of tracked items by freshness class.
# TYPE pantry_items gauge
pantry_items{class="consumed"} 1
pantry_items{class="expired"} 1
pantry_items{class="near"} 2
pantry_items{class="safe"} 1
pantry_items{class="unknown"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "pantry_items"))
}
