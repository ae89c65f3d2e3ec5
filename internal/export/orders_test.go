package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/imrishuroy/go-cod-storefront/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestWriteOrders(t *testing.T) {
	list := []orders.Order{
		{
			OrderID:      "o1",
			CustomerName: "Sara",
			Phone:        "0555123456",
			Wilaya:       "Oran",
			HomeDelivery: true,
			ProductName:  "Dress",
			Quantity:     2,
			UnitPrice:    3000,
			ShippingCost: 520,
			TotalPrice:   6520,
			Status:       orders.StatusPending,
			CreatedAt:    time.Date(2025, 1, 2, 23, 30, 0, 0, time.UTC),
		},
	}
	loc := time.FixedZone("CET", 3600)

	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, list, loc))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	sheet := f.Sheets[0]
	require.Equal(t, 2, sheet.MaxRow)

	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].String())
	row := sheet.Rows[1]
	assert.Equal(t, "o1", row.Cells[0].String())
	assert.Equal(t, "2025-01-03 00:30:00", row.Cells[1].String())
	assert.Equal(t, "yes", row.Cells[8].String())
	assert.Equal(t, "6520", row.Cells[15].String())
}

func TestWriteOrders_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, nil, nil))
	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, f.Sheets[0].MaxRow)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "orders-20250102-0930.xlsx", FileName(time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)))
}
