package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"boutique-pos/internal/models"
)

// --- In-memory fakes for the store ports ---

type stockWrite struct {
	ProductID uint
	NewQty    int
}

type fakeProductStore struct {
	products    map[uint]*models.Product
	stockWrites []stockWrite
	failStock   bool
}

func (f *fakeProductStore) ListActive(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if p.StockQuantity > 0 {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) FindByCode(ctx context.Context, code string) (*models.Product, error) {
	for _, p := range f.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeProductStore) UpdateStock(ctx context.Context, productID uint, newQuantity int) error {
	if f.failStock {
		return errors.New("stock table unavailable")
	}
	f.stockWrites = append(f.stockWrites, stockWrite{ProductID: productID, NewQty: newQuantity})
	if p, ok := f.products[productID]; ok {
		p.StockQuantity = newQuantity
	}
	return nil
}

type fakeSaleStore struct {
	sales            []*models.Sale
	items            []models.SaleItem
	installments     []models.Installment
	nextSaleID       uint
	nextInstID       uint
	failItems        bool
	failInstallments bool
}

func (f *fakeSaleStore) CreateSale(ctx context.Context, sale *models.Sale) error {
	f.nextSaleID++
	sale.ID = f.nextSaleID
	cp := *sale
	f.sales = append(f.sales, &cp)
	return nil
}

func (f *fakeSaleStore) CreateSaleItems(ctx context.Context, items []models.SaleItem) error {
	if f.failItems {
		return errors.New("sale_items insert failed")
	}
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeSaleStore) CreateInstallments(ctx context.Context, rows []models.Installment) error {
	if f.failInstallments {
		return errors.New("installments insert failed")
	}
	for i := range rows {
		f.nextInstID++
		rows[i].ID = f.nextInstID
	}
	f.installments = append(f.installments, rows...)
	return nil
}

func (f *fakeSaleStore) FindInstallment(ctx context.Context, id uint) (*models.Installment, error) {
	for i := range f.installments {
		if f.installments[i].ID == id {
			cp := f.installments[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeSaleStore) UpdateInstallment(ctx context.Context, installment *models.Installment) error {
	for i := range f.installments {
		if f.installments[i].ID == installment.ID {
			f.installments[i] = *installment
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeSaleStore) ListInstallmentsBySale(ctx context.Context, saleID uint) ([]models.Installment, error) {
	var out []models.Installment
	for _, row := range f.installments {
		if row.SaleID == saleID {
			out = append(out, row)
		}
	}
	return out, nil
}

func newFixture() (*Service, *fakeProductStore, *fakeSaleStore) {
	products := &fakeProductStore{products: map[uint]*models.Product{
		1: {ID: 1, Code: "SHIRT-M-BLU", Price: dec("50.00"), StockQuantity: 10},
		2: {ID: 2, Code: "DRESS-S-RED", Price: dec("149.00"), StockQuantity: 3},
	}}
	sales := &fakeSaleStore{}
	return NewService(products, sales), products, sales
}

// --- SubmitSale ---

func TestSubmitSaleEndToEndInstallments(t *testing.T) {
	svc, products, sales := newFixture()

	req := SaleRequest{
		CashierID:        7,
		Lines:            []CartLine{{ProductID: 1, UnitPrice: dec("50.00"), Quantity: 2, Stock: 10}},
		Discount:         dec("0"),
		PaymentMethod:    PaymentInstallment,
		InstallmentCount: 4,
	}

	result, err := svc.SubmitSale(context.Background(), req)
	if err != nil {
		t.Fatalf("SubmitSale: %v", err)
	}

	if !result.TotalAmount.Equal(dec("100.00")) {
		t.Errorf("total = %s, want 100.00", result.TotalAmount)
	}

	if len(sales.items) != 1 {
		t.Fatalf("expected 1 sale item, got %d", len(sales.items))
	}
	item := sales.items[0]
	if item.SaleID != result.SaleID || !item.LineTotal.Equal(dec("100.00")) {
		t.Errorf("unexpected sale item: %+v", item)
	}

	if got := products.products[1].StockQuantity; got != 8 {
		t.Errorf("stock after sale = %d, want 8", got)
	}

	if len(result.Installments) != 4 {
		t.Fatalf("expected 4 installments, got %d", len(result.Installments))
	}
	saleDate := sales.sales[0].SaleDate
	for i, row := range result.Installments {
		if !row.Amount.Equal(dec("25.00")) {
			t.Errorf("installment %d: amount = %s, want 25.00", i+1, row.Amount)
		}
		if row.SaleID != result.SaleID {
			t.Errorf("installment %d: sale id = %d", i+1, row.SaleID)
		}
		want := saleDate.AddDate(0, i+1, 0)
		if !row.DueDate.Equal(want) {
			t.Errorf("installment %d: due = %s, want %s", i+1, row.DueDate, want)
		}
	}
}

func TestSubmitSaleEmptyCart(t *testing.T) {
	svc, _, _ := newFixture()
	_, err := svc.SubmitSale(context.Background(), SaleRequest{CashierID: 7})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSubmitSaleRequiresCashier(t *testing.T) {
	svc, _, _ := newFixture()
	req := SaleRequest{
		Lines:         []CartLine{{ProductID: 1, UnitPrice: dec("50.00"), Quantity: 1, Stock: 10}},
		PaymentMethod: PaymentCash,
	}
	_, err := svc.SubmitSale(context.Background(), req)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSubmitSaleForcesCountForSinglePayment(t *testing.T) {
	svc, _, sales := newFixture()

	req := SaleRequest{
		CashierID:        7,
		Lines:            []CartLine{{ProductID: 1, UnitPrice: dec("50.00"), Quantity: 1, Stock: 10}},
		PaymentMethod:    PaymentCard,
		InstallmentCount: 6, // caller noise, must be ignored
	}
	result, err := svc.SubmitSale(context.Background(), req)
	if err != nil {
		t.Fatalf("SubmitSale: %v", err)
	}

	if sales.sales[0].InstallmentCount != 1 {
		t.Errorf("installment count = %d, want 1", sales.sales[0].InstallmentCount)
	}
	if len(result.Installments) != 0 {
		t.Errorf("single-payment sale produced %d installments", len(result.Installments))
	}
}

func TestSubmitSaleInstallmentCountOneProducesNoRows(t *testing.T) {
	svc, _, sales := newFixture()

	req := SaleRequest{
		CashierID:        7,
		Lines:            []CartLine{{ProductID: 1, UnitPrice: dec("50.00"), Quantity: 1, Stock: 10}},
		PaymentMethod:    PaymentInstallment,
		InstallmentCount: 1,
	}
	result, err := svc.SubmitSale(context.Background(), req)
	if err != nil {
		t.Fatalf("SubmitSale: %v", err)
	}
	if len(result.Installments) != 0 || len(sales.installments) != 0 {
		t.Errorf("count=1 must not generate installment rows")
	}
}

func TestSubmitSaleDiscountClampsTotal(t *testing.T) {
	svc, _, sales := newFixture()

	req := SaleRequest{
		CashierID:     7,
		Lines:         []CartLine{{ProductID: 1, UnitPrice: dec("50.00"), Quantity: 1, Stock: 10}},
		Discount:      dec("80.00"),
		PaymentMethod: PaymentPix,
	}
	result, err := svc.SubmitSale(context.Background(), req)
	if err != nil {
		t.Fatalf("SubmitSale: %v", err)
	}
	if !result.TotalAmount.Equal(dec("0")) {
		t.Errorf("total = %s, want 0", result.TotalAmount)
	}
	if !sales.sales[0].TotalAmount.Equal(dec("0")) {
		t.Errorf("persisted total = %s, want 0", sales.sales[0].TotalAmount)
	}
}

func TestSubmitSaleTagsFailingStep(t *testing.T) {
	svc, _, sales := newFixture()
	sales.failItems = true

	req := SaleRequest{
		CashierID:     7,
		Lines:         []CartLine{{ProductID: 1, UnitPrice: dec("50.00"), Quantity: 1, Stock: 10}},
		PaymentMethod: PaymentCash,
	}
	_, err := svc.SubmitSale(context.Background(), req)

	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	if storeErr.Step != StepCreateSaleItems {
		t.Errorf("step = %s, want %s", storeErr.Step, StepCreateSaleItems)
	}
	// No compensation: the sale header created in step 1 stays committed.
	if len(sales.sales) != 1 {
		t.Errorf("sale header should remain persisted, have %d", len(sales.sales))
	}
}

func TestSubmitSaleStockFailureLeavesEarlierStepsCommitted(t *testing.T) {
	svc, products, sales := newFixture()
	products.failStock = true

	req := SaleRequest{
		CashierID:     7,
		Lines:         []CartLine{{ProductID: 1, UnitPrice: dec("50.00"), Quantity: 2, Stock: 10}},
		PaymentMethod: PaymentCash,
	}
	_, err := svc.SubmitSale(context.Background(), req)

	var storeErr *StoreError
	if !errors.As(err, &storeErr) || storeErr.Step != StepUpdateStock {
		t.Fatalf("expected StoreError at %s, got %v", StepUpdateStock, err)
	}
	if len(sales.sales) != 1 || len(sales.items) != 1 {
		t.Errorf("sale and items from earlier steps must remain committed")
	}
}

// --- MarkPaid ---

func TestMarkPaid(t *testing.T) {
	svc, _, sales := newFixture()
	sales.installments = []models.Installment{
		{ID: 1, SaleID: 1, InstallmentNumber: 1, Amount: dec("25.00"), Status: StatusPending,
			DueDate: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
	}
	sales.nextInstID = 1

	payDate := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	got, err := svc.MarkPaid(context.Background(), 1, payDate)
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if got.Status != StatusPaid || got.PaymentDate == nil || !got.PaymentDate.Equal(payDate) {
		t.Errorf("unexpected installment after MarkPaid: %+v", got)
	}
	if DeriveStatus(*got, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) != StatusPaid {
		t.Errorf("paid installment must derive as paid past its due date")
	}

	// Second call is allowed and rewrites the same fields.
	again, err := svc.MarkPaid(context.Background(), 1, payDate)
	if err != nil {
		t.Fatalf("second MarkPaid: %v", err)
	}
	if again.Status != StatusPaid {
		t.Errorf("second MarkPaid status = %s", again.Status)
	}
}

func TestMarkPaidNotFound(t *testing.T) {
	svc, _, _ := newFixture()
	_, err := svc.MarkPaid(context.Background(), 42, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
