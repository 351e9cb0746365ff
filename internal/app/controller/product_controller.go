package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedefood/pedefood-backend/internal/app/service"
	apperrors "github.com/pedefood/pedefood-backend/internal/errors"
	"github.com/pedefood/pedefood-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	Available   *bool   `json:"available"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Available   *bool   `json:"available"`
}

// GetMenu lists the orderable products of a restaurant
// GET /api/v1/restaurants/:id/products
func (ctrl *ProductController) GetMenu(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	restaurantID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de restaurante inválido")
		return
	}

	// Owners managing the menu ask for everything
	if c.Query("all") == "true" {
		all, err := ctrl.productService.GetAllProducts(restaurantID)
		if err != nil {
			log.Error("Failed to fetch products", err, map[string]interface{}{
				"restaurant_id": restaurantID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get products")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"products": all,
			"count":    len(all),
		})
		return
	}

	menu, err := ctrl.productService.GetMenu(restaurantID)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			apperrors.NotFound(c, apperrors.RestaurantNotFound, "Restaurante não encontrado")
			return
		}
		log.Error("Failed to fetch menu", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": menu,
		"count":    len(menu),
	})
}

// GetProduct returns one product
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de produto inválido")
		return
	}

	product, err := ctrl.productService.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct adds a product to a restaurant's menu
// POST /api/v1/restaurants/:id/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	restaurantID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de restaurante inválido")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados do produto não são válidos")
		return
	}

	product, err := ctrl.productService.CreateProduct(userID, restaurantID, middleware.IsAdmin(c), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			apperrors.NotFound(c, apperrors.RestaurantNotFound, "Restaurante não encontrado")
		case errors.Is(err, service.ErrNotRestaurantOwner):
			apperrors.Forbidden(c, "Apenas o dono do restaurante pode gerenciar o cardápio")
		case errors.Is(err, service.ErrInvalidPrice):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "O preço deve ser maior que zero")
		default:
			log.Error("Failed to create product", err, map[string]interface{}{
				"restaurant_id": restaurantID,
				"user_id":       userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product")
		}
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id":    product.ID,
		"restaurant_id": restaurantID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Produto cadastrado com sucesso",
		"product": product,
	})
}

// UpdateProduct edits a product (owner or admin)
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de produto inválido")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados do produto não são válidos")
		return
	}

	product, err := ctrl.productService.UpdateProduct(userID, productID, middleware.IsAdmin(c), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
		case errors.Is(err, service.ErrNotRestaurantOwner):
			apperrors.Forbidden(c, "Apenas o dono do restaurante pode gerenciar o cardápio")
		default:
			log.Error("Failed to update product", err, map[string]interface{}{
				"product_id": productID,
				"user_id":    userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produto atualizado com sucesso",
		"product": product,
	})
}

// DeleteProduct removes a product (owner or admin)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de produto inválido")
		return
	}

	if err := ctrl.productService.DeleteProduct(userID, productID, middleware.IsAdmin(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
		case errors.Is(err, service.ErrNotRestaurantOwner):
			apperrors.Forbidden(c, "Apenas o dono do restaurante pode gerenciar o cardápio")
		default:
			log.Error("Failed to delete product", err, map[string]interface{}{
				"product_id": productID,
				"user_id":    userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete product")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produto removido com sucesso",
	})
}
