package usecase

import (
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError reports every violated field, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func validatePlaceOrder(customerEmail, productName string, quantity int, totalPrice decimal.Decimal) error {
	fields := map[string]string{}

	if strings.TrimSpace(customerEmail) == "" {
		fields["customer_email"] = "Customer email is required"
	} else if _, err := mail.ParseAddress(customerEmail); err != nil {
		fields["customer_email"] = "Must be a valid email"
	}

	if strings.TrimSpace(productName) == "" {
		fields["product_name"] = "Product name is required"
	}

	if quantity < 1 {
		fields["quantity"] = "Quantity must be at least 1"
	}

	if !totalPrice.IsPositive() {
		fields["total_price"] = "Total price must be positive"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
