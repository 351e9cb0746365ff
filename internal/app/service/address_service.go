package service

import (
	"errors"

	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/app/repository"
	"github.com/pedefood/pedefood-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

type CreateAddressInput struct {
	ZipCode    string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	IsPrimary  bool
}

type AddressService interface {
	CreateAddress(userID uint, input CreateAddressInput) (*model.Address, error)
	GetAddresses(userID uint) ([]model.Address, error)
	GetPrimaryAddress(userID uint) (*model.Address, error)
	UpdateAddress(userID, addressID uint, input CreateAddressInput) (*model.Address, error)
	DeleteAddress(userID, addressID uint) error
	SetPrimaryAddress(userID, addressID uint) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) CreateAddress(userID uint, input CreateAddressInput) (*model.Address, error) {
	logger.Info("Creating address", map[string]interface{}{
		"user_id": userID,
		"city":    input.City,
	})

	existing, err := s.addressRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	address := &model.Address{
		UserID:     userID,
		ZipCode:    input.ZipCode,
		Street:     input.Street,
		Number:     input.Number,
		Complement: input.Complement,
		District:   input.District,
		City:       input.City,
		State:      input.State,
		// The first address is always the primary one
		IsPrimary: len(existing) == 0,
	}

	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}

	// An explicit primary request demotes the current primary
	if input.IsPrimary && !address.IsPrimary {
		if err := s.addressRepo.SetPrimary(userID, address.ID); err != nil {
			return nil, err
		}
		address.IsPrimary = true
	}

	logger.Info("Address created", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    userID,
		"is_primary": address.IsPrimary,
	})
	return address, nil
}

func (s *addressService) GetAddresses(userID uint) ([]model.Address, error) {
	return s.addressRepo.FindByUserID(userID)
}

func (s *addressService) GetPrimaryAddress(userID uint) (*model.Address, error) {
	address, err := s.addressRepo.FindPrimaryByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return address, nil
}

func (s *addressService) UpdateAddress(userID, addressID uint, input CreateAddressInput) (*model.Address, error) {
	address, err := s.findOwned(userID, addressID)
	if err != nil {
		return nil, err
	}

	address.ZipCode = input.ZipCode
	address.Street = input.Street
	address.Number = input.Number
	address.Complement = input.Complement
	address.District = input.District
	address.City = input.City
	address.State = input.State

	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}

	if input.IsPrimary && !address.IsPrimary {
		if err := s.addressRepo.SetPrimary(userID, address.ID); err != nil {
			return nil, err
		}
		address.IsPrimary = true
	}

	logger.Info("Address updated", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    userID,
	})
	return address, nil
}

func (s *addressService) DeleteAddress(userID, addressID uint) error {
	address, err := s.findOwned(userID, addressID)
	if err != nil {
		return err
	}

	if err := s.addressRepo.Delete(address.ID); err != nil {
		return err
	}

	// Deleting the primary promotes the most recent remaining address
	if address.IsPrimary {
		remaining, err := s.addressRepo.FindByUserID(userID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			if err := s.addressRepo.SetPrimary(userID, remaining[0].ID); err != nil {
				return err
			}
		}
	}

	logger.Info("Address deleted", map[string]interface{}{
		"address_id": addressID,
		"user_id":    userID,
	})
	return nil
}

func (s *addressService) SetPrimaryAddress(userID, addressID uint) error {
	err := s.addressRepo.SetPrimary(userID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Set primary failed: address not found", map[string]interface{}{
				"address_id": addressID,
				"user_id":    userID,
			})
			return ErrAddressNotFound
		}
		return err
	}

	logger.Info("Primary address changed", map[string]interface{}{
		"address_id": addressID,
		"user_id":    userID,
	})
	return nil
}

// findOwned fetches an address and hides other users' addresses behind
// a not-found error.
func (s *addressService) findOwned(userID, addressID uint) (*model.Address, error) {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		logger.Warn("Address ownership mismatch", map[string]interface{}{
			"address_id": addressID,
			"user_id":    userID,
			"owner_id":   address.UserID,
		})
		return nil, ErrAddressNotFound
	}
	return address, nil
}
