package controllers

import (
	"errors"
	"net/http"

	"pjhweb-backend/models"
	"pjhweb-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Business *string `json:"business"`
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone"`
	Address1 *string `json:"address1"`
	Address2 *string `json:"address2"`
	City     *string `json:"city"`
	County   *string `json:"county"`
	Postcode *string `json:"postcode"`
	Notes    *string `json:"notes"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Business *string `json:"business"`
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Address1 *string `json:"address1"`
	Address2 *string `json:"address2"`
	City     *string `json:"city"`
	County   *string `json:"county"`
	Postcode *string `json:"postcode"`
	Notes    *string `json:"notes"`
}

type CustomerController struct {
	db *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{db: db}
}

// CreateCustomer creates a new customer
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	phone := utils.NullIfBlank(input.Phone)
	if phone != nil && !utils.ValidatePhone(*phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	customer := models.Customer{
		Business: utils.NullIfBlank(input.Business),
		Name:     input.Name,
		Email:    input.Email,
		Phone:    phone,
		Address1: input.Address1,
		Address2: input.Address2,
		City:     input.City,
		County:   input.County,
		Postcode: input.Postcode,
		Notes:    input.Notes,
	}

	if err := cc.db.WithContext(c.Request.Context()).Create(&customer).Error; err != nil {
		utils.LogError("Error creating customer", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Customer created", "customer": customer})
}

// GetCustomers lists every customer
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	customers := []models.Customer{}
	if err := cc.db.WithContext(c.Request.Context()).Order("id").Find(&customers).Error; err != nil {
		utils.LogError("Error fetching customers", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "customers": customers})
}

// GetCustomer retrieves a specific customer by ID
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	customer, ok := cc.findCustomer(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "customer": customer})
}

// UpdateCustomer applies the provided fields to an existing customer
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, ok := cc.findCustomer(c, id)
	if !ok {
		return
	}

	if input.Phone != nil {
		phone := utils.NullIfBlank(input.Phone)
		if phone != nil && !utils.ValidatePhone(*phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = phone
	}
	if input.Business != nil {
		customer.Business = utils.NullIfBlank(input.Business)
	}
	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Address1 != nil {
		customer.Address1 = input.Address1
	}
	if input.Address2 != nil {
		customer.Address2 = input.Address2
	}
	if input.City != nil {
		customer.City = input.City
	}
	if input.County != nil {
		customer.County = input.County
	}
	if input.Postcode != nil {
		customer.Postcode = input.Postcode
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}

	if err := cc.db.WithContext(c.Request.Context()).Save(customer).Error; err != nil {
		utils.LogError("Error updating customer", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customer updated", "customer": customer})
}

// DeleteCustomer removes a customer together with their quotes and orders
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	result := cc.db.WithContext(c.Request.Context()).Delete(&models.Customer{}, id)
	if result.Error != nil {
		utils.LogError("Error deleting customer", result.Error)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customer deleted"})
}

func (cc *CustomerController) findCustomer(c *gin.Context, id uint) (*models.Customer, bool) {
	var customer models.Customer
	if err := cc.db.WithContext(c.Request.Context()).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.LogError("Error fetching customer", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &customer, true
}
