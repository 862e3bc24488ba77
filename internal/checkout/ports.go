package checkout

import (
	"context"

	"boutique-pos/internal/models"
)

// ProductStore is the inventory surface the checkout flow needs.
type ProductStore interface {
	ListActive(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindByCode(ctx context.Context, code string) (*models.Product, error)
	UpdateStock(ctx context.Context, productID uint, newQuantity int) error
}

// SaleStore persists sales, their line items and installment schedules.
type SaleStore interface {
	CreateSale(ctx context.Context, sale *models.Sale) error
	CreateSaleItems(ctx context.Context, items []models.SaleItem) error
	CreateInstallments(ctx context.Context, rows []models.Installment) error
	FindInstallment(ctx context.Context, id uint) (*models.Installment, error)
	UpdateInstallment(ctx context.Context, installment *models.Installment) error
	ListInstallmentsBySale(ctx context.Context, saleID uint) ([]models.Installment, error)
}

// CustomerStore resolves the optional customer reference on a sale.
type CustomerStore interface {
	List(ctx context.Context) ([]models.Customer, error)
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	FindByTaxID(ctx context.Context, taxID string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
}
