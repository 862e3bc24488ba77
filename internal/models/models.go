package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User - The cashier or admin operating the terminal
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'cashier'
	CreatedAt    time.Time `json:"created_at"`
}

// Product - The clothing inventory
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Code          string          `gorm:"uniqueIndex;size:40" json:"code"` // barcode / SKU
	Name          string          `json:"name"`
	Category      string          `json:"category"` // 'Shirts', 'Dresses', 'Shoes'...
	Size          string          `json:"size"`
	Color         string          `json:"color"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
}

// Customer - The store's client registry (installment sales need one)
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `gorm:"uniqueIndex;size:20" json:"tax_id"` // CPF
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Sale - The transaction header
type Sale struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	CustomerID       *uint           `json:"customer_id,omitempty"`
	CashierID        uint            `json:"cashier_id"` // Who processed it
	TotalAmount      decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_amount"`
	Discount         decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount"`
	PaymentMethod    string          `json:"payment_method"` // 'cash', 'card', 'pix', 'installment'
	InstallmentCount int             `json:"installment_count"`
	Status           string          `json:"status"` // 'completed', 'pending', 'cancelled'
	SaleDate         time.Time       `json:"sale_date"`
	CreatedAt        time.Time       `json:"created_at"`
	Items            []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem - One cart line frozen at sale time
type SaleItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SaleID    uint            `json:"sale_id"`
	ProductID uint            `json:"product_id"`
	Product   Product         `json:"product"` // Preload product details
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"` // Snapshot of price at time of sale
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2)" json:"line_total"`
}

// Installment - One scheduled partial payment of a sale.
// Stored status is only ever 'pending' or 'paid'; 'overdue' is derived
// from the due date at read time and never written.
type Installment struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	SaleID            uint            `json:"sale_id"`
	InstallmentNumber int             `json:"installment_number"` // 1..N
	Amount            decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	DueDate           time.Time       `json:"due_date"`
	PaymentDate       *time.Time      `json:"payment_date,omitempty"`
	Status            string          `json:"status"` // 'pending', 'paid'
}
