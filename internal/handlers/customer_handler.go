package handlers

import (
	"errors"
	"net/http"

	"boutique-pos/internal/checkout"
	"boutique-pos/internal/database"
	"boutique-pos/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: List all customers ---
func GetCustomers(c *gin.Context) {
	repo := database.NewCustomerRepository(database.DB)

	customers, err := repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// --- GET: Find a customer by tax id (CPF) ---
func GetCustomerByTaxID(c *gin.Context) {
	taxID := c.Param("taxId")

	repo := database.NewCustomerRepository(database.DB)
	customer, err := repo.FindByTaxID(c.Request.Context(), taxID)
	if err != nil {
		if errors.Is(err, checkout.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// --- POST: Register a new customer ---
func AddCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if customer.Name == "" || customer.TaxID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and tax id are required"})
		return
	}

	repo := database.NewCustomerRepository(database.DB)
	if err := repo.Create(c.Request.Context(), &customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer likely already exists"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}
