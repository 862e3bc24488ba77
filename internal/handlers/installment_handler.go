package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"boutique-pos/internal/checkout"
	"boutique-pos/internal/database"
	"boutique-pos/internal/models"

	"github.com/gin-gonic/gin"
)

// InstallmentView is an installment plus its read-time status. The
// stored row only ever says pending or paid; overdue is computed here
// against today's date, never persisted.
type InstallmentView struct {
	models.Installment
	DerivedStatus string `json:"derived_status"`
}

func toViews(rows []models.Installment) []InstallmentView {
	now := time.Now()
	views := make([]InstallmentView, 0, len(rows))
	for _, row := range rows {
		views = append(views, InstallmentView{
			Installment:   row,
			DerivedStatus: checkout.DeriveStatus(row, now),
		})
	}
	return views
}

// --- GET: Installment schedule of one sale (the "carnet" view) ---
func GetSaleInstallments(c *gin.Context) {
	saleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Sale ID"})
		return
	}

	repo := database.NewSaleRepository(database.DB)
	rows, err := repo.ListInstallmentsBySale(c.Request.Context(), uint(saleID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch installments"})
		return
	}

	c.JSON(http.StatusOK, toViews(rows))
}

// --- GET: Every unpaid installment across all sales ---
// The collections screen filters the overdue ones client-side using
// derived_status.
func GetOpenInstallments(c *gin.Context) {
	var rows []models.Installment
	err := database.DB.
		Where("status = ?", checkout.StatusPending).
		Order("due_date").
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch installments"})
		return
	}

	c.JSON(http.StatusOK, toViews(rows))
}

type PayInstallmentRequest struct {
	PaymentDate string `json:"payment_date"` // YYYY-MM-DD, defaults to today
}

// --- PUT: Record a payment against one installment ---
func PayInstallment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Installment ID"})
		return
	}

	var req PayInstallmentRequest
	// Body is optional; an empty one means "paid today"
	_ = c.ShouldBindJSON(&req)

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		paymentDate, err = time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment_date must be YYYY-MM-DD"})
			return
		}
	}

	installment, err := checkoutService().MarkPaid(c.Request.Context(), uint(id), paymentDate)
	if err != nil {
		if errors.Is(err, checkout.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Installment not found"})
			return
		}
		var storeErr *checkout.StoreError
		if errors.As(err, &storeErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Payment failed at %s", storeErr.Step)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Installment paid",
		"installment": installment,
	})
}
