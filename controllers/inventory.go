package controllers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/medimind/clinic-backend/db"
	"github.com/medimind/clinic-backend/models"
	"github.com/medimind/clinic-backend/utils"
	"gorm.io/gorm"
)

// CreateCategory creates a medicine category
func CreateCategory(c *fiber.Ctx) error {
	category := new(models.Category)
	if err := c.BodyParser(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if category.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Category name is required",
		})
	}
	if userID, ok := c.Locals("userID").(uint); ok {
		category.CreatedByID = userID
	}
	if err := db.DB.Create(category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create category",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// GetCategories returns all medicine categories
func GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := db.DB.Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch categories",
			Error:   err.Error(),
		})
	}
	return c.JSON(categories)
}

// CreateMedicine adds a medicine with an initial stock record
func CreateMedicine(c *fiber.Ctx) error {
	type CreateMedicineInput struct {
		ProductID   string  `json:"product_id" validate:"required"`
		Name        string  `json:"name" validate:"required"`
		Drug        string  `json:"drug"`
		CategoryID  uint    `json:"category_id" validate:"required"`
		Dosage      string  `json:"dosage"`
		UnitPrice   float64 `json:"unit_price" validate:"required,gt=0"`
		ExpiryDate  string  `json:"expiry_date"`
		SideEffects string  `json:"side_effects"`
		Quantity    uint    `json:"quantity"`
	}
	input := new(CreateMedicineInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid medicine payload",
			Error:   err.Error(),
		})
	}

	userID, _ := c.Locals("userID").(uint)
	medicine := models.Medicine{
		ProductID:   input.ProductID,
		Name:        input.Name,
		Drug:        input.Drug,
		CategoryID:  input.CategoryID,
		Dosage:      input.Dosage,
		UnitPrice:   input.UnitPrice,
		ExpiryDate:  input.ExpiryDate,
		SideEffects: input.SideEffects,
		CreatedByID: userID,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&medicine).Error; err != nil {
			return err
		}
		stock := models.MedicineStock{
			MedicineID:  medicine.ID,
			Quantity:    input.Quantity,
			UpdatedByID: userID,
		}
		return tx.Create(&stock).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create medicine",
			Error:   err.Error(),
		})
	}

	db.DB.Preload("Category").Preload("Stock").First(&medicine, medicine.ID)
	return c.Status(fiber.StatusCreated).JSON(medicine)
}

// GetAllMedicines returns medicines with pagination and optional search
func GetAllMedicines(c *fiber.Ctx) error {
	var medicines []models.Medicine

	// Get pagination parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	query := db.DB.Model(&models.Medicine{}).Preload("Category").Preload("Stock")
	if q := c.Query("q"); q != "" {
		searchQuery := fmt.Sprintf("%%%s%%", q)
		query = query.Where("name LIKE ? OR drug LIKE ? OR product_id LIKE ?",
			searchQuery, searchQuery, searchQuery)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var count int64
	query.Count(&count)

	if err := query.Limit(limit).Offset(offset).Order("id DESC").Find(&medicines).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch medicines",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"medicines": medicines,
		"total":     count,
		"page":      page,
		"limit":     limit,
		"pages":     (int(count) + limit - 1) / limit,
	})
}

// GetMedicine returns one medicine with its stock
func GetMedicine(c *fiber.Ctx) error {
	id := c.Params("id")
	var medicine models.Medicine
	if err := db.DB.Preload("Category").Preload("Stock").First(&medicine, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Medicine not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(medicine)
}

// UpdateStock sets the quantity and reorder level for a medicine
func UpdateStock(c *fiber.Ctx) error {
	id := c.Params("id")
	var medicine models.Medicine
	if err := db.DB.First(&medicine, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Medicine not found",
			Error:   err.Error(),
		})
	}

	type UpdateStockInput struct {
		Quantity     *uint `json:"quantity"`
		ReorderLevel *uint `json:"reorder_level"`
	}
	input := new(UpdateStockInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var stock models.MedicineStock
	if err := db.DB.Where("medicine_id = ?", medicine.ID).First(&stock).Error; err != nil {
		stock = models.MedicineStock{MedicineID: medicine.ID}
	}
	if input.Quantity != nil {
		stock.Quantity = *input.Quantity
	}
	if input.ReorderLevel != nil {
		stock.ReorderLevel = *input.ReorderLevel
	}
	if userID, ok := c.Locals("userID").(uint); ok {
		stock.UpdatedByID = userID
	}

	if err := db.DB.Save(&stock).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update stock",
			Error:   err.Error(),
		})
	}
	stock.IsLowStock = stock.Quantity < stock.ReorderLevel
	return c.JSON(stock)
}

// GetLowStockMedicines lists medicines at or below their reorder level
func GetLowStockMedicines(c *fiber.Ctx) error {
	var medicines []models.Medicine
	if err := db.DB.Preload("Category").Preload("Stock").
		Joins("JOIN medicine_stocks ON medicine_stocks.medicine_id = medicines.id").
		Where("medicine_stocks.quantity < medicine_stocks.reorder_level").
		Order("medicine_stocks.quantity").
		Find(&medicines).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch low stock medicines",
			Error:   err.Error(),
		})
	}
	return c.JSON(medicines)
}
