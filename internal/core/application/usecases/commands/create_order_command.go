package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new order in the initial "new" status.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	number        string
	customerName  string
	customerPhone string
	address       string
	items         []order.LineItem
	totalAmount   int64
	depositAmount int64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates an order registration request. Amount and
// item validation is deferred to the order constructor inside the handler;
// the command checks only what it needs to be well-formed.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	number string,
	customerName, customerPhone, address string,
	items []order.LineItem,
	totalAmount, depositAmount int64,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if number == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("number")
	}

	return CreateOrderCommand{
		orderID:       orderID,
		number:        number,
		customerName:  customerName,
		customerPhone: customerPhone,
		address:       address,
		items:         items,
		totalAmount:   totalAmount,
		depositAmount: depositAmount,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the new order's identifier.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number returns the human-readable order number.
func (c CreateOrderCommand) Number() string {
	return c.number
}

// CustomerName returns the customer's name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the customer's phone number.
func (c CreateOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// Address returns the delivery address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// Items returns the order's line items.
func (c CreateOrderCommand) Items() []order.LineItem {
	return c.items
}

// TotalAmount returns the order total in minor currency units.
func (c CreateOrderCommand) TotalAmount() int64 {
	return c.totalAmount
}

// DepositAmount returns the amount already paid.
func (c CreateOrderCommand) DepositAmount() int64 {
	return c.depositAmount
}
