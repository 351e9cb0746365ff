package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedefood/pedefood-backend/internal/app/service"
	"github.com/pedefood/pedefood-backend/internal/middleware"
)

// VerificationController relays phone verification requests. The routes
// and payloads match what the mobile client already speaks, so they
// live under /api instead of the versioned group.
type VerificationController struct {
	verificationService service.VerificationService
}

func NewVerificationController(verificationService service.VerificationService) *VerificationController {
	return &VerificationController{
		verificationService: verificationService,
	}
}

type SendVerificationRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type VerifyCodeRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

// SendVerification starts a phone verification
// POST /api/send-verification
func (ctrl *VerificationController) SendVerification(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid send verification request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Número de telefone é obrigatório",
		})
		return
	}

	result, err := ctrl.verificationService.SendCode(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		log.Error("Failed to send verification code", err, map[string]interface{}{
			"phone": req.PhoneNumber,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erro ao enviar código de verificação",
		})
		return
	}

	log.Info("Verification code sent", map[string]interface{}{
		"phone": result.PhoneNumber,
		"sid":   result.SID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"sid":     result.SID,
		"message": "Código de verificação enviado",
	})
}

// VerifyCode checks a submitted verification code
// POST /api/verify-code
func (ctrl *VerificationController) VerifyCode(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid verify code request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Número de telefone e código são obrigatórios",
		})
		return
	}

	result, err := ctrl.verificationService.CheckCode(c.Request.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		log.Error("Failed to check verification code", err, map[string]interface{}{
			"phone": req.PhoneNumber,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erro ao verificar código",
		})
		return
	}

	log.Info("Verification code checked", map[string]interface{}{
		"phone": req.PhoneNumber,
		"valid": result.Valid,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"valid":   result.Valid,
		"status":  result.Status,
	})
}

// Health reports service liveness
// GET /api/health
func (ctrl *VerificationController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
