package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrUnauthenticated   = errors.New("sale requires an authenticated cashier")
	ErrNotFound          = errors.New("record not found")
)

// Step names used to tag store failures during SubmitSale / MarkPaid.
const (
	StepCreateSale         = "create_sale"
	StepCreateSaleItems    = "create_sale_items"
	StepUpdateStock        = "update_stock"
	StepCreateInstallments = "create_installments"
	StepUpdateInstallment  = "update_installment"
)

// StoreError wraps a repository failure with the name of the step that
// produced it. Effects committed by earlier steps stay committed.
type StoreError struct {
	Step string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("checkout step %s: %v", e.Step, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
