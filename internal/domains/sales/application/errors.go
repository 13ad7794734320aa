package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid sales order input")
	// ErrUnknownReference signals a customer, store or item id that does not exist.
	ErrUnknownReference = errors.New("unknown reference")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingCustomer) ||
		errors.Is(err, domain.ErrMissingStore) ||
		errors.Is(err, domain.ErrMissingOrderDate) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrNegativeTotal) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrMissingItem) ||
		errors.Is(err, domain.ErrStatusTransition) ||
		errors.Is(err, ErrUnknownReference) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
