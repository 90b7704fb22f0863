package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// LineItem is one product position on an order.
// It is an immutable value object owned by the Order aggregate.
type LineItem struct {
	productName string
	quantity    int
	unitPrice   int64
}

// NewLineItem creates a line item. Quantity must be positive and the unit
// price non-negative (prices are stored in minor currency units).
func NewLineItem(productName string, quantity int, unitPrice int64) (LineItem, error) {
	if productName == "" {
		return LineItem{}, errs.NewValueIsRequiredError("productName")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPrice))
	}

	return LineItem{
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
	}, nil
}

// ProductName returns the product name.
func (i LineItem) ProductName() string {
	return i.productName
}

// Quantity returns the ordered quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit in minor currency units.
func (i LineItem) UnitPrice() int64 {
	return i.unitPrice
}

// Total returns quantity times unit price.
func (i LineItem) Total() int64 {
	return int64(i.quantity) * i.unitPrice
}
