package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pedefood/pedefood-backend/internal/app/service"
	apperrors "github.com/pedefood/pedefood-backend/internal/errors"
	"github.com/pedefood/pedefood-backend/internal/middleware"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type AddressRequest struct {
	ZipCode    string `json:"zip_code"`
	Street     string `json:"street" binding:"required"`
	Number     string `json:"number" binding:"required"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required,len=2"`
	IsPrimary  bool   `json:"is_primary"`
}

func (r AddressRequest) toInput() service.CreateAddressInput {
	return service.CreateAddressInput{
		ZipCode:    r.ZipCode,
		Street:     r.Street,
		Number:     r.Number,
		Complement: r.Complement,
		District:   r.District,
		City:       r.City,
		State:      r.State,
		IsPrimary:  r.IsPrimary,
	}
}

// CreateAddress adds a delivery address
// POST /api/v1/addresses
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid address request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados do endereço não são válidos")
		return
	}

	address, err := ctrl.addressService.CreateAddress(userID, req.toInput())
	if err != nil {
		log.Error("Failed to create address", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create address")
		return
	}

	log.Info("Address created", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Endereço cadastrado com sucesso",
		"address": address,
	})
}

// GetAddresses lists the user's addresses, primary first
// GET /api/v1/addresses
func (ctrl *AddressController) GetAddresses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	addresses, err := ctrl.addressService.GetAddresses(userID)
	if err != nil {
		log.Error("Failed to fetch addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// GetPrimaryAddress returns the primary delivery address
// GET /api/v1/addresses/primary
func (ctrl *AddressController) GetPrimaryAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	address, err := ctrl.addressService.GetPrimaryAddress(userID)
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			// No primary address is a valid empty state for the client
			c.JSON(http.StatusOK, gin.H{
				"address": nil,
			})
			return
		}
		log.Error("Failed to fetch primary address", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get primary address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": address,
	})
}

// UpdateAddress edits an address
// PUT /api/v1/addresses/:id
func (ctrl *AddressController) UpdateAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	addressID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de endereço inválido")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados do endereço não são válidos")
		return
	}

	address, err := ctrl.addressService.UpdateAddress(userID, addressID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Endereço não encontrado")
			return
		}
		log.Error("Failed to update address", err, map[string]interface{}{
			"address_id": addressID,
			"user_id":    userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Endereço atualizado com sucesso",
		"address": address,
	})
}

// DeleteAddress removes an address
// DELETE /api/v1/addresses/:id
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	addressID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de endereço inválido")
		return
	}

	if err := ctrl.addressService.DeleteAddress(userID, addressID); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Endereço não encontrado")
			return
		}
		log.Error("Failed to delete address", err, map[string]interface{}{
			"address_id": addressID,
			"user_id":    userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Endereço removido com sucesso",
	})
}

// SetPrimaryAddress marks an address as the delivery default
// PUT /api/v1/addresses/:id/primary
func (ctrl *AddressController) SetPrimaryAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	addressID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de endereço inválido")
		return
	}

	if err := ctrl.addressService.SetPrimaryAddress(userID, addressID); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Endereço não encontrado")
			return
		}
		log.Error("Failed to set primary address", err, map[string]interface{}{
			"address_id": addressID,
			"user_id":    userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "set primary address")
		return
	}

	log.Info("Primary address changed", map[string]interface{}{
		"address_id": addressID,
		"user_id":    userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Endereço principal atualizado",
	})
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
