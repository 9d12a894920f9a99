package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry/internal/model"
)

func TestWriteCSV(t *testing.T) {
	records := []model.Record{
		{Name: "Milk", Qty: 2, Category: "Dairy", PurchaseDate: "2026-01-01", ExpiryDate: "2026-01-09"},
		{Name: `12" Pizza, frozen`, Qty: 1, Category: "Other", Consumed: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	want := strings.Join([]string{
		`"name","qty","category","purchaseDate","expiryDate","consumed"`,
		`"Milk","2","Dairy","2026-01-01","2026-01-09","false"`,
		`"12"" Pizza, frozen","1","Other","","","true"`,
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_ReadableByEncodingCSV(t *testing.T) {
	records := []model.Record{{Name: `a "quoted", name`, Qty: 3, Category: "x"}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, `a "quoted", name`, rows[1][0])
}

func TestWriteCSV_HeaderOnlyForEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, `"name","qty","category","purchaseDate","expiryDate","consumed"`, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSV_WriterError(t *testing.T) {
	err := WriteCSV(failingWriter{}, []model.Record{{Name: "x", Qty: 1}})
	assert.EqualError(t, err, "disk full")
}
