package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"boutique-pos/internal/checkout"
	"boutique-pos/internal/database"
	"boutique-pos/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func checkoutService() *checkout.Service {
	return checkout.NewService(
		database.NewProductRepository(database.DB),
		database.NewSaleRepository(database.DB),
	)
}

// CheckoutRequest defines what the PDV screen sends us
type CheckoutRequest struct {
	Items []struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	} `json:"items" binding:"required"`
	CustomerID       *uint           `json:"customer_id"`
	CustomerTaxID    string          `json:"customer_tax_id"`
	CustomerName     string          `json:"customer_name"`
	Discount         decimal.Decimal `json:"discount"`
	PaymentMethod    string          `json:"payment_method" binding:"required"`
	InstallmentCount int             `json:"installment_count"`
}

func validPaymentMethod(method string) bool {
	switch method {
	case checkout.PaymentCash, checkout.PaymentCard, checkout.PaymentPix, checkout.PaymentInstallment:
		return true
	}
	return false
}

func ProcessSale(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !validPaymentMethod(req.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
		return
	}
	if req.Discount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount cannot be negative"})
		return
	}

	// Set by AuthMiddleware; the sale records WHO sold it
	userID := c.MustGet("userID").(uint)

	ctx := c.Request.Context()
	products := database.NewProductRepository(database.DB)

	// Rebuild the cart server-side against a fresh stock snapshot so the
	// stock check cannot be bypassed by a stale client.
	cart := checkout.Cart{}
	for _, item := range req.Items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}

		product, err := products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, checkout.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product %d not found", item.ProductID)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
			return
		}

		cart, err = checkout.AddToCart(cart, *product, qty)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Insufficient stock for %s", product.Name)})
			return
		}
	}

	customerID, err := resolveCustomer(c, &req)
	if err != nil {
		return // resolveCustomer already wrote the response
	}

	result, err := checkoutService().SubmitSale(ctx, checkout.SaleRequest{
		CustomerID:       customerID,
		CashierID:        userID,
		Lines:            cart.Lines,
		Discount:         req.Discount,
		PaymentMethod:    req.PaymentMethod,
		InstallmentCount: req.InstallmentCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, checkout.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sale requires an authenticated cashier"})
		default:
			var storeErr *checkout.StoreError
			if errors.As(err, &storeErr) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Checkout failed at %s", storeErr.Step)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Sale successful!",
		"sale_id":      result.SaleID,
		"total":        result.TotalAmount,
		"installments": result.Installments,
	})
}

// resolveCustomer turns the optional customer fields of the request into
// a customer id: an explicit id wins; a tax id looks the customer up and
// registers them on the spot when unknown. Writes the HTTP response on
// failure.
func resolveCustomer(c *gin.Context, req *CheckoutRequest) (*uint, error) {
	if req.CustomerID != nil {
		return req.CustomerID, nil
	}
	if req.CustomerTaxID == "" {
		return nil, nil
	}

	ctx := c.Request.Context()
	customers := database.NewCustomerRepository(database.DB)

	customer, err := customers.FindByTaxID(ctx, req.CustomerTaxID)
	if errors.Is(err, checkout.ErrNotFound) {
		customer = &models.Customer{Name: req.CustomerName, TaxID: req.CustomerTaxID}
		if err := customers.Create(ctx, customer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register customer"})
			return nil, err
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up customer"})
		return nil, err
	}

	return &customer.ID, nil
}
