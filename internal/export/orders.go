// Package export renders the order inbox as a spreadsheet.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/imrishuroy/go-cod-storefront/internal/orders"
	"github.com/tealeg/xlsx"
)

// ContentType is the MIME type of the generated file.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var orderHeaders = []string{
	"ID", "Date", "Status", "Customer", "Phone", "Wilaya", "Commune", "Address",
	"Home delivery", "Product", "Size", "Color", "Quantity", "Unit price",
	"Shipping", "Total",
}

// WriteOrders writes one sheet with a header row and one row per order.
// Dates are rendered in loc.
func WriteOrders(w io.Writer, list []orders.Order, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range orderHeaders {
		header.AddCell().SetValue(h)
	}

	for _, o := range list {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.OrderID)
		row.AddCell().SetValue(o.CreatedAt.In(loc).Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(o.Status)
		row.AddCell().SetValue(o.CustomerName)
		row.AddCell().SetValue(o.Phone)
		row.AddCell().SetValue(o.Wilaya)
		row.AddCell().SetValue(o.Commune)
		row.AddCell().SetValue(o.Address)
		row.AddCell().SetValue(yesNo(o.HomeDelivery))
		row.AddCell().SetValue(o.ProductName)
		row.AddCell().SetValue(o.Size)
		row.AddCell().SetValue(o.Color)
		row.AddCell().SetValue(o.Quantity)
		row.AddCell().SetValue(o.UnitPrice)
		row.AddCell().SetValue(o.ShippingCost)
		row.AddCell().SetValue(o.TotalPrice)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// FileName is the download name for an export taken at now.
func FileName(now time.Time) string {
	return "orders-" + now.Format("20060102-1504") + ".xlsx"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
