// Package pdf renders printable receipts for finalized orders.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	orderdomain "github.com/thirdpole/pos/internal/order/domain"
	"go.uber.org/fx"
)

type ReceiptRenderer interface {
	GenerateReceipt(ctx context.Context, order orderdomain.FinalizedOrder) (io.Reader, error)
}

type PDFProvider struct{}

func NewPDFProvider() ReceiptRenderer {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateReceipt(ctx context.Context, order orderdomain.FinalizedOrder) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	// Header: restaurant identity from the settings snapshot captured at
	// finalize time, not the current configuration.
	m.AddRow(30,
		col.New(8).Add(
			text.New(order.SettingsSnapshot.RestaurantName, props.Text{
				Size:  18,
				Style: fontstyle.Bold,
			}),
			text.New(order.SettingsSnapshot.Address, props.Text{Top: 10, Size: 9}),
		),
		text.NewCol(4, "Receipt", props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	m.AddRow(16,
		col.New(12).Add(
			text.New("Order: #"+order.ID, props.Text{Top: 0, Size: 9}),
			text.New("Date: "+order.Date.Format("2006-01-02 15:04"), props.Text{Top: 4, Size: 9}),
			text.New("Table: "+order.TableName, props.Text{Top: 8, Size: 9}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range order.Lines {
		m.AddRow(12,
			text.NewCol(6, line.Name, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", line.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.UnitPrice.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.UnitPrice.MulQty(line.Quantity).String(), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, order.Subtotal.String(), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, fmt.Sprintf("Tax (%g%%)", order.SettingsSnapshot.TaxRatePercent), props.Text{Size: 9}),
		text.NewCol(2, order.Tax.String(), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, order.Total.String(), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

// Module wires the receipt renderer.
var Module = fx.Module("providers.pdf",
	fx.Provide(NewPDFProvider),
)
