package main

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Apurer/sales-order-api/internal/domains/sales/orderview"
)

// render prints today's metrics followed by the filtered orders as a table.
func render(w io.Writer, view *orderview.View, lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	p.Fprintf(w, "Today: %d orders (%d pending, %d completed, %d cancelled)\n",
		view.Metrics.Total, view.Metrics.Pending, view.Metrics.Completed, view.Metrics.Cancelled)
	p.Fprintf(w, "Showing %d of %d orders\n\n", len(view.Orders), view.Total)

	table := tablewriter.NewWriter(w)
	table.Header("Invoice", "Date", "Customer", "Phone", "Store", "Status", "Total")
	for _, row := range view.Orders {
		if err := table.Append(reportRow(p, row)); err != nil {
			return err
		}
	}
	return table.Render()
}

func reportRow(p *message.Printer, row orderview.EnrichedOrder) []string {
	customer, phone, store := "-", "-", "-"
	if row.Customer != nil {
		customer = row.Customer.FullName()
		phone = row.Customer.Phone
	}
	if row.Store != nil {
		store = row.Store.Name
	}
	date := "-"
	if !row.Order.OrderDate.IsZero() {
		date = row.Order.OrderDate.Format("02 Jan 2006")
	}
	return []string{
		row.Order.InvoiceNumber,
		date,
		customer,
		phone,
		store,
		row.Order.Status.Label(),
		formatAmount(p, row.Order.TotalAmount),
	}
}

// formatAmount renders two decimals with the locale's grouping and decimal separators.
func formatAmount(p *message.Printer, amount decimal.Decimal) string {
	return p.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}
