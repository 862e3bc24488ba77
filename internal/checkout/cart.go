package checkout

import (
	"boutique-pos/internal/models"

	"github.com/shopspring/decimal"
)

// Payment methods accepted at the counter.
const (
	PaymentCash        = "cash"
	PaymentCard        = "card"
	PaymentPix         = "pix"
	PaymentInstallment = "installment"
)

// Sale and installment statuses.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
)

// CartLine is one product selection in an in-progress sale. Stock holds
// the product's stock quantity as it was when the line was built; all
// quantity checks run against that snapshot, not the live store.
type CartLine struct {
	ProductID uint
	UnitPrice decimal.Decimal
	Quantity  int
	Stock     int
}

// Cart is the pre-commit selection for one sale. It is a plain value:
// operations return a new Cart and leave the input untouched, so the
// caller owns the state and threads it through calls.
type Cart struct {
	Lines []CartLine
}

func (c Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// Subtotal is the sum of unit price times quantity over all lines.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

func cloneLines(c Cart) []CartLine {
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return lines
}

// AddToCart merges the product into the cart. If the product is already
// present its quantity is incremented instead of a second line being
// appended. Fails with ErrInsufficientStock when the proposed quantity
// exceeds the product's stock; the input cart is returned unchanged.
func AddToCart(cart Cart, product models.Product, quantity int) (Cart, error) {
	for i, line := range cart.Lines {
		if line.ProductID != product.ID {
			continue
		}
		proposed := line.Quantity + quantity
		if proposed > product.StockQuantity {
			return cart, ErrInsufficientStock
		}
		lines := cloneLines(cart)
		lines[i].Quantity = proposed
		lines[i].Stock = product.StockQuantity
		return Cart{Lines: lines}, nil
	}

	if quantity > product.StockQuantity {
		return cart, ErrInsufficientStock
	}
	lines := cloneLines(cart)
	lines = append(lines, CartLine{
		ProductID: product.ID,
		UnitPrice: product.Price,
		Quantity:  quantity,
		Stock:     product.StockQuantity,
	})
	return Cart{Lines: lines}, nil
}

// UpdateQuantity replaces a line's quantity in place. A quantity of zero
// or less removes the line entirely (not an error). Exceeding the line's
// stock snapshot fails with ErrInsufficientStock and leaves the cart
// unchanged. Unknown product ids are a no-op.
func UpdateQuantity(cart Cart, productID uint, newQuantity int) (Cart, error) {
	for i, line := range cart.Lines {
		if line.ProductID != productID {
			continue
		}
		if newQuantity <= 0 {
			lines := cloneLines(cart)
			lines = append(lines[:i], lines[i+1:]...)
			return Cart{Lines: lines}, nil
		}
		if newQuantity > line.Stock {
			return cart, ErrInsufficientStock
		}
		lines := cloneLines(cart)
		lines[i].Quantity = newQuantity
		return Cart{Lines: lines}, nil
	}
	return cart, nil
}

// ComputeTotal applies the discount to the cart subtotal, flooring at
// zero. A discount larger than the subtotal is not rejected; it simply
// zeroes the total.
func ComputeTotal(cart Cart, discount decimal.Decimal) decimal.Decimal {
	total := cart.Subtotal().Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
