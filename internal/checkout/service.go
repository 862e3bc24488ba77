package checkout

import (
	"context"
	"time"

	"boutique-pos/internal/models"

	"github.com/shopspring/decimal"
)

// SaleRequest is the snapshot of a cart handed over for finalization.
type SaleRequest struct {
	CustomerID       *uint
	CashierID        uint
	Lines            []CartLine
	Discount         decimal.Decimal
	PaymentMethod    string
	InstallmentCount int
}

// SaleResult is what the counter gets back after a completed checkout.
type SaleResult struct {
	SaleID       uint
	TotalAmount  decimal.Decimal
	Installments []models.Installment
}

// Service owns sale finalization: total computation, persistence
// ordering across sale/items/stock/installments, and the installment
// schedule. Repositories are injected so the flow stays independent of
// any particular store.
type Service struct {
	products ProductStore
	sales    SaleStore
}

func NewService(products ProductStore, sales SaleStore) *Service {
	return &Service{products: products, sales: sales}
}

// SubmitSale finalizes a sale in four sequential steps: the sale header,
// one item per cart line, one stock write per product, and the
// installment schedule when the sale is paid in installments. Each step
// waits on the previous one (items need the sale id). There is no
// compensating rollback: a failure surfaces as a step-tagged StoreError
// and whatever earlier steps persisted stays persisted.
func (s *Service) SubmitSale(ctx context.Context, req SaleRequest) (*SaleResult, error) {
	if len(req.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if req.CashierID == 0 {
		return nil, ErrUnauthenticated
	}

	// Single-payment sales always record a count of 1, whatever the
	// caller sent.
	count := req.InstallmentCount
	if req.PaymentMethod != PaymentInstallment || count < 1 {
		count = 1
	}

	total := ComputeTotal(Cart{Lines: req.Lines}, req.Discount)
	saleDate := time.Now()

	sale := &models.Sale{
		CustomerID:       req.CustomerID,
		CashierID:        req.CashierID,
		TotalAmount:      total,
		Discount:         req.Discount,
		PaymentMethod:    req.PaymentMethod,
		InstallmentCount: count,
		Status:           StatusCompleted,
		SaleDate:         saleDate,
	}
	if err := s.sales.CreateSale(ctx, sale); err != nil {
		return nil, &StoreError{Step: StepCreateSale, Err: err}
	}

	items := make([]models.SaleItem, 0, len(req.Lines))
	for _, line := range req.Lines {
		items = append(items, models.SaleItem{
			SaleID:    sale.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			// Unit price comes from the cart line, not a re-read of the
			// product, so a mid-cart price change never touches an
			// in-progress sale.
			UnitPrice: line.UnitPrice,
			LineTotal: line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	if err := s.sales.CreateSaleItems(ctx, items); err != nil {
		return nil, &StoreError{Step: StepCreateSaleItems, Err: err}
	}

	// One independent write per distinct product, issued in line order.
	// The new quantity is computed from the stock snapshot the cart was
	// built against.
	for _, line := range req.Lines {
		if err := s.products.UpdateStock(ctx, line.ProductID, line.Stock-line.Quantity); err != nil {
			return nil, &StoreError{Step: StepUpdateStock, Err: err}
		}
	}

	var schedule []models.Installment
	if req.PaymentMethod == PaymentInstallment && count > 1 {
		schedule = GenerateSchedule(total, count, saleDate)
		for i := range schedule {
			schedule[i].SaleID = sale.ID
		}
		if err := s.sales.CreateInstallments(ctx, schedule); err != nil {
			return nil, &StoreError{Step: StepCreateInstallments, Err: err}
		}
	}

	return &SaleResult{
		SaleID:       sale.ID,
		TotalAmount:  total,
		Installments: schedule,
	}, nil
}

// MarkPaid records a payment against an installment. Marking an
// already-paid installment again is allowed and simply rewrites the same
// fields.
func (s *Service) MarkPaid(ctx context.Context, installmentID uint, paymentDate time.Time) (*models.Installment, error) {
	installment, err := s.sales.FindInstallment(ctx, installmentID)
	if err != nil {
		return nil, err
	}

	installment.Status = StatusPaid
	installment.PaymentDate = &paymentDate
	if err := s.sales.UpdateInstallment(ctx, installment); err != nil {
		return nil, &StoreError{Step: StepUpdateInstallment, Err: err}
	}
	return installment, nil
}
