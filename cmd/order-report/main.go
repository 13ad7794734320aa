package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/Apurer/sales-order-api/internal/app/api"
	salesapp "github.com/Apurer/sales-order-api/internal/domains/sales/application"
	"github.com/Apurer/sales-order-api/internal/domains/sales/orderview"
	platformobservability "github.com/Apurer/sales-order-api/internal/platform/observability"
)

func main() {
	var (
		query  = flag.String("q", "", "search invoice number, store, customer name or phone")
		status = flag.String("status", "ALL", "ALL, DRAFT, PENDING, COMPLETED or CANCELLED")
		start  = flag.String("start", "", "earliest order date, YYYY-MM-DD (inclusive)")
		end    = flag.String("end", "", "latest order date, YYYY-MM-DD (inclusive)")
		lang   = flag.String("lang", "en", "BCP 47 tag used to format counts and amounts")
	)
	flag.Parse()

	criteria, err := parseCriteria(*query, *status, *start, *end, time.Local)
	if err != nil {
		log.Fatalf("invalid filter: %v", err)
	}
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	settings := platformobservability.SettingsFromEnv("sales-order-report")
	settings.LogFormat = "text"
	settings.LogOutput = os.Stderr
	logger := platformobservability.NewLogger(settings)
	repos, cleanup := api.BuildRepositories(ctx, cfg, logger)
	defer cleanup()

	service := salesapp.NewService(repos.Orders, repos.Catalog, salesapp.WithInvoicePrefix(cfg.InvoicePrefix))
	view, err := service.OrderView(ctx, criteria)
	if err != nil {
		log.Fatalf("failed to build order view: %v", err)
	}
	if err := render(os.Stdout, view, *lang); err != nil {
		log.Fatalf("failed to render report: %v", err)
	}
}

func parseCriteria(query, status, start, end string, loc *time.Location) (orderview.Criteria, error) {
	filter, err := orderview.ParseStatusFilter(status)
	if err != nil {
		return orderview.Criteria{}, err
	}
	criteria := orderview.Criteria{Query: query, Status: filter}
	if start != "" {
		day, err := time.ParseInLocation(time.DateOnly, start, loc)
		if err != nil {
			return orderview.Criteria{}, err
		}
		criteria.Start = orderview.StartOfDay(day)
	}
	if end != "" {
		day, err := time.ParseInLocation(time.DateOnly, end, loc)
		if err != nil {
			return orderview.Criteria{}, err
		}
		criteria.End = orderview.EndOfDay(day)
	}
	return criteria, nil
}
