package database

import (
	"context"
	"errors"

	"boutique-pos/internal/checkout"
	"boutique-pos/internal/models"

	"gorm.io/gorm"
)

// Gorm-backed implementations of the checkout store ports. Missing rows
// are reported as checkout.ErrNotFound so callers never see gorm errors.

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Where("stock_quantity > 0").Find(&products).Error
	return products, err
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checkout.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checkout.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) UpdateStock(ctx context.Context, productID uint, newQuantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", newQuantity).Error
}

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) CreateSale(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *SaleRepository) CreateSaleItems(ctx context.Context, items []models.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *SaleRepository) CreateInstallments(ctx context.Context, rows []models.Installment) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *SaleRepository) FindInstallment(ctx context.Context, id uint) (*models.Installment, error) {
	var installment models.Installment
	if err := r.db.WithContext(ctx).First(&installment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checkout.ErrNotFound
		}
		return nil, err
	}
	return &installment, nil
}

func (r *SaleRepository) UpdateInstallment(ctx context.Context, installment *models.Installment) error {
	return r.db.WithContext(ctx).Save(installment).Error
}

func (r *SaleRepository) ListInstallmentsBySale(ctx context.Context, saleID uint) ([]models.Installment, error) {
	var rows []models.Installment
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("installment_number").
		Find(&rows).Error
	return rows, err
}

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).Order("name").Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checkout.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) FindByTaxID(ctx context.Context, taxID string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("tax_id = ?", taxID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checkout.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}
