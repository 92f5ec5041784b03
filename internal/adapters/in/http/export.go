package http

import (
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet       = "Orders"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportTimeLayout  = "2006-01-02 15:04:05"
	exportFileNameFmt = "vendor-orders-%s.xlsx"
)

var exportHeader = []any{
	"Order ID", "Created At", "Status", "Payment Status", "Expected Delivery",
	"Item ID", "Product", "Quantity", "Line Total",
}

// ExportVendorOrders handles GET /api/v1/vendor/orders/export. It walks every
// page of ListVendorOrders and writes one row per order item.
func (s *Server) ExportVendorOrders(c echo.Context) error {
	params, err := bindListParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	orders, err := s.allVendorOrders(c, params.status())
	if err != nil {
		return s.fail(c, err)
	}

	book, err := buildOrdersWorkbook(orders)
	if err != nil {
		return s.fail(c, err)
	}
	defer func() { _ = book.Close() }()

	filename := fmt.Sprintf(exportFileNameFmt, time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().WriteHeader(http.StatusOK)
	_, err = book.WriteTo(c.Response())
	return err
}

func (s *Server) allVendorOrders(c echo.Context, status string) ([]queries.VendorOrderView, error) {
	ctx := c.Request().Context()
	var orders []queries.VendorOrderView
	for offset := 0; ; offset += queries.MaxPageLimit {
		query, err := queries.NewListVendorOrdersQuery(actorFrom(c), status, queries.MaxPageLimit, offset)
		if err != nil {
			return nil, err
		}
		page, err := s.handlers.ListVendorOrders.Handle(ctx, query)
		if err != nil {
			return nil, err
		}
		orders = append(orders, page.Orders...)
		if len(page.Orders) < queries.MaxPageLimit {
			return orders, nil
		}
	}
}

func buildOrdersWorkbook(orders []queries.VendorOrderView) (*excelize.File, error) {
	book := excelize.NewFile()
	if err := book.SetSheetName(book.GetSheetName(0), exportSheet); err != nil {
		_ = book.Close()
		return nil, err
	}
	if err := book.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		_ = book.Close()
		return nil, err
	}

	row := 2
	for _, o := range orders {
		expected := ""
		if o.ExpectedDeliveryDate != nil {
			expected = o.ExpectedDeliveryDate.UTC().Format(exportTimeLayout)
		}
		for _, item := range o.Items {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				_ = book.Close()
				return nil, err
			}
			values := []any{
				o.ID.String(),
				o.CreatedAt.UTC().Format(exportTimeLayout),
				o.Status.String(),
				o.PaymentStatus.String(),
				expected,
				item.ID.String(),
				item.ProductName,
				item.Quantity,
				item.TotalPrice.Amount().InexactFloat64(),
			}
			if err = book.SetSheetRow(exportSheet, cell, &values); err != nil {
				_ = book.Close()
				return nil, err
			}
			row++
		}
	}
	return book, nil
}
