package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewOrder_DerivesTotalFromItems(t *testing.T) {
	items := []LineItem{
		{ItemID: "item-1", Quantity: 2, UnitPrice: decimal.RequireFromString("12.50")},
		{ItemID: "item-2", Quantity: 1, UnitPrice: decimal.RequireFromString("5")},
	}
	order, err := NewOrder("o-1", "SO-1", time.Now(), "c-1", "s-1", items, decimal.NewFromInt(999))
	require.NoError(t, err)
	require.Equal(t, StatusDraft, order.Status)
	require.True(t, decimal.RequireFromString("30").Equal(order.TotalAmount))
}

func TestNewOrder_RequiresReferences(t *testing.T) {
	_, err := NewOrder("o-1", "SO-1", time.Now(), "", "s-1", nil, decimal.Zero)
	require.ErrorIs(t, err, ErrMissingCustomer)

	_, err = NewOrder("o-1", "SO-1", time.Now(), "c-1", " ", nil, decimal.Zero)
	require.ErrorIs(t, err, ErrMissingStore)

	_, err = NewOrder("o-1", "SO-1", time.Time{}, "c-1", "s-1", nil, decimal.Zero)
	require.ErrorIs(t, err, ErrMissingOrderDate)
}

func TestNewOrder_RejectsBadAmounts(t *testing.T) {
	_, err := NewOrder("o-1", "SO-1", time.Now(), "c-1", "s-1", nil, decimal.NewFromInt(-1))
	require.ErrorIs(t, err, ErrNegativeTotal)

	_, err = NewOrder("o-1", "SO-1", time.Now(), "c-1", "s-1",
		[]LineItem{{ItemID: "i", Quantity: 0, UnitPrice: decimal.NewFromInt(1)}}, decimal.Zero)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewOrder("o-1", "SO-1", time.Now(), "c-1", "s-1",
		[]LineItem{{ItemID: "i", Quantity: 1, UnitPrice: decimal.NewFromInt(-3)}}, decimal.Zero)
	require.ErrorIs(t, err, ErrNegativePrice)
}

func TestMarkStatus(t *testing.T) {
	order := &Order{Status: StatusDraft}
	require.NoError(t, order.MarkStatus(StatusCompleted))
	require.Equal(t, StatusCompleted, order.Status)
	require.NoError(t, order.MarkStatus(StatusCancelled))
	require.Equal(t, StatusCancelled, order.Status)

	require.ErrorIs(t, order.MarkStatus(StatusPending), ErrStatusTransition)
	require.ErrorIs(t, order.MarkStatus("SHIPPED"), ErrInvalidStatus)
	require.Equal(t, StatusCancelled, order.Status)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" pending ")
	require.NoError(t, err)
	require.Equal(t, StatusPending, status)

	_, err = ParseStatus("ALL")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestClone_DetachesItems(t *testing.T) {
	order := &Order{Items: []LineItem{{ItemID: "a", Quantity: 1}}}
	clone := order.Clone()
	clone.Items[0].Quantity = 5
	require.Equal(t, int32(1), order.Items[0].Quantity)
}

func TestValidate_ReportsLineItemBeforeTotal(t *testing.T) {
	order := &Order{
		CustomerID:  "c-1",
		StoreID:     "s-1",
		OrderDate:   time.Now(),
		Status:      StatusDraft,
		TotalAmount: decimal.NewFromInt(-6),
		Items:       []LineItem{{ItemID: "i", Quantity: 2, UnitPrice: decimal.NewFromInt(-3)}},
	}
	require.ErrorIs(t, order.Validate(), ErrNegativePrice)

	order.Items = nil
	require.ErrorIs(t, order.Validate(), ErrNegativeTotal)
}
