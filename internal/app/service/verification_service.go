package service

import (
	"context"
	"errors"

	"github.com/pedefood/pedefood-backend/internal/app/repository"
	"github.com/pedefood/pedefood-backend/pkg/logger"
	"github.com/pedefood/pedefood-backend/pkg/redis"
	"github.com/pedefood/pedefood-backend/pkg/sms"
	"github.com/pedefood/pedefood-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrVerificationSendFailed  = errors.New("failed to send verification code")
	ErrVerificationCheckFailed = errors.New("failed to check verification code")
)

// SendResult reports an initiated verification. SID is Twilio's
// verification SID, or "dev" when running without Twilio credentials.
type SendResult struct {
	SID         string
	PhoneNumber string
}

// CheckResult reports the outcome of a code check.
type CheckResult struct {
	Valid  bool
	Status string
}

type VerificationService interface {
	SendCode(ctx context.Context, phoneNumber string) (*SendResult, error)
	CheckCode(ctx context.Context, phoneNumber, code string) (*CheckResult, error)
}

type verificationService struct {
	twilio   *sms.Client
	userRepo repository.UserRepository
	// dev mode: codes stored in Redis instead of going through Twilio
	devMode bool
}

func NewVerificationService(twilio *sms.Client, userRepo repository.UserRepository, devMode bool) VerificationService {
	return &verificationService{
		twilio:   twilio,
		userRepo: userRepo,
		devMode:  devMode,
	}
}

// SendCode starts a phone verification. The number is normalized to
// E.164 first; bare national numbers get the Brazilian country code.
func (s *verificationService) SendCode(ctx context.Context, phoneNumber string) (*SendResult, error) {
	formatted := util.FormatPhoneNumber(phoneNumber)

	logger.Info("Sending verification code", map[string]interface{}{
		"phone":    formatted,
		"dev_mode": s.devMode,
	})

	if s.devMode {
		code, err := util.GenerateVerificationCode()
		if err != nil {
			return nil, err
		}
		if err := redis.StoreVerificationCode(ctx, formatted, code); err != nil {
			logger.Error("Failed to store verification code", err, map[string]interface{}{
				"phone": formatted,
			})
			return nil, ErrVerificationSendFailed
		}
		// Logged so the code can be read during local development
		logger.Info("[dev mode] verification code generated", map[string]interface{}{
			"phone": formatted,
			"code":  code,
		})
		return &SendResult{SID: "dev", PhoneNumber: formatted}, nil
	}

	verification, err := s.twilio.StartVerification(ctx, formatted)
	if err != nil {
		logger.Error("Twilio verification start failed", err, map[string]interface{}{
			"phone": formatted,
		})
		return nil, ErrVerificationSendFailed
	}

	logger.Info("Verification code sent", map[string]interface{}{
		"phone": formatted,
		"sid":   verification.SID,
	})
	return &SendResult{SID: verification.SID, PhoneNumber: formatted}, nil
}

// CheckCode verifies a submitted code. A matching code also marks the
// phone verified on the account carrying that number, when one exists.
func (s *verificationService) CheckCode(ctx context.Context, phoneNumber, code string) (*CheckResult, error) {
	formatted := util.FormatPhoneNumber(phoneNumber)

	logger.Info("Checking verification code", map[string]interface{}{
		"phone":    formatted,
		"dev_mode": s.devMode,
	})

	var result *CheckResult
	if s.devMode {
		valid, err := redis.CheckVerificationCode(ctx, formatted, code)
		if err != nil {
			logger.Error("Failed to check verification code", err, map[string]interface{}{
				"phone": formatted,
			})
			return nil, ErrVerificationCheckFailed
		}
		status := "pending"
		if valid {
			status = "approved"
		}
		result = &CheckResult{Valid: valid, Status: status}
	} else {
		check, err := s.twilio.CheckVerification(ctx, formatted, code)
		if err != nil {
			logger.Error("Twilio verification check failed", err, map[string]interface{}{
				"phone": formatted,
			})
			return nil, ErrVerificationCheckFailed
		}
		result = &CheckResult{Valid: check.Status == "approved", Status: check.Status}
	}

	if result.Valid {
		s.markPhoneVerified(formatted)
	}

	logger.Info("Verification code checked", map[string]interface{}{
		"phone": formatted,
		"valid": result.Valid,
	})
	return result, nil
}

func (s *verificationService) markPhoneVerified(phone string) {
	user, err := s.userRepo.FindByPhone(phone)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to look up user by phone", err, map[string]interface{}{
				"phone": phone,
			})
		}
		return
	}
	if user.PhoneVerified {
		return
	}

	user.PhoneVerified = true
	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to mark phone verified", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return
	}

	logger.Info("Phone marked as verified", map[string]interface{}{
		"user_id": user.ID,
	})
}
