// Package orderview derives the enriched, filtered and summarized order listing shown on the
// sales order screen. Every function here is pure: inputs are never mutated and the clock is
// passed in explicitly, so a view can be recomputed or memoized from the same inputs.
package orderview

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
)

// StatusFilter selects orders by status. StatusAll disables the status criterion.
type StatusFilter string

// StatusAll is the sentinel that matches every status.
const StatusAll StatusFilter = "ALL"

// ParseStatusFilter accepts ALL (or an empty value) and any known status, case-insensitively.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" || raw == string(StatusAll) {
		return StatusAll, nil
	}
	status, err := domain.ParseStatus(raw)
	if err != nil {
		return "", err
	}
	return StatusFilter(status), nil
}

// EnrichedOrder is an order joined with its customer and store. Customer and Store are nil when
// the reference does not resolve.
type EnrichedOrder struct {
	Order    *domain.Order
	Customer *domain.Customer
	Store    *domain.Store
}

// Criteria is the set of user-controlled filter parameters. Zero Start/End mean unbounded and
// an empty Status behaves like StatusAll.
type Criteria struct {
	Query  string
	Status StatusFilter
	Start  time.Time
	End    time.Time
}

// Metrics summarizes the orders dated on the current calendar day.
type Metrics struct {
	Total     int
	Pending   int
	Completed int
	Cancelled int
}

// Snapshot is one consistent read of the four collections backing the screen.
type Snapshot struct {
	Orders    []*domain.Order
	Customers []domain.Customer
	Stores    []domain.Store
}

// View is the derived listing: filtered rows, today's metrics and the unfiltered row count.
type View struct {
	Orders  []EnrichedOrder
	Metrics Metrics
	Total   int
}

// Build enriches the snapshot, applies the criteria and computes today's metrics relative to now.
// Metrics are taken over every order, independent of the criteria.
func Build(snapshot Snapshot, criteria Criteria, now time.Time) View {
	enriched := NewIndex(snapshot.Customers, snapshot.Stores).Enrich(snapshot.Orders)
	return View{
		Orders:  Filter(enriched, criteria),
		Metrics: TodayMetrics(enriched, now),
		Total:   len(enriched),
	}
}

// Filter returns the orders passing every criterion, preserving input order.
func Filter(orders []EnrichedOrder, criteria Criteria) []EnrichedOrder {
	m := newMatcher(criteria)
	result := make([]EnrichedOrder, 0, len(orders))
	for _, order := range orders {
		if m.matches(order) {
			result = append(result, order)
		}
	}
	return result
}

// Matches reports whether a single order passes the criteria.
func (c Criteria) Matches(order EnrichedOrder) bool {
	return newMatcher(c).matches(order)
}

// TodayMetrics counts orders sharing now's calendar day in now's location.
func TodayMetrics(orders []EnrichedOrder, now time.Time) Metrics {
	var metrics Metrics
	for _, order := range orders {
		if order.Order == nil || !sameDay(order.Order.OrderDate, now) {
			continue
		}
		metrics.Total++
		switch order.Order.Status {
		case domain.StatusPending:
			metrics.Pending++
		case domain.StatusCompleted:
			metrics.Completed++
		case domain.StatusCancelled:
			metrics.Cancelled++
		}
	}
	return metrics
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// matcher carries the folded query. cases.Caser is stateful, so each matcher owns one.
type matcher struct {
	fold   cases.Caser
	query  string
	status StatusFilter
	start  time.Time
	end    time.Time
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{fold: cases.Fold(), status: c.Status, start: c.Start, end: c.End}
	if m.status == "" {
		m.status = StatusAll
	}
	m.query = m.fold.String(c.Query)
	return m
}

func (m *matcher) matches(order EnrichedOrder) bool {
	if order.Order == nil {
		return false
	}
	return m.matchesText(order) && m.matchesStatus(order.Order) && m.matchesDates(order.Order)
}

func (m *matcher) matchesText(order EnrichedOrder) bool {
	if m.query == "" {
		return true
	}
	if m.contains(order.Order.InvoiceNumber) {
		return true
	}
	if order.Store != nil && m.contains(order.Store.Name) {
		return true
	}
	if order.Customer != nil && (m.contains(order.Customer.FullName()) || m.contains(order.Customer.Phone)) {
		return true
	}
	return false
}

func (m *matcher) contains(field string) bool {
	return strings.Contains(m.fold.String(field), m.query)
}

func (m *matcher) matchesStatus(order *domain.Order) bool {
	return m.status == StatusAll || StatusFilter(order.Status) == m.status
}

// matchesDates treats both bounds as inclusive. An order without a date never satisfies a bound.
func (m *matcher) matchesDates(order *domain.Order) bool {
	if m.start.IsZero() && m.end.IsZero() {
		return true
	}
	if order.OrderDate.IsZero() {
		return false
	}
	if !m.start.IsZero() && order.OrderDate.Before(m.start) {
		return false
	}
	if !m.end.IsZero() && order.OrderDate.After(m.end) {
		return false
	}
	return true
}
