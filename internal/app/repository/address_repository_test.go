package repository

import (
	"testing"

	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAddressTest(t *testing.T) (*gorm.DB, AddressRepository, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	repo := NewAddressRepository(testDB)

	user := &model.User{
		Email:        "cliente@example.com",
		PasswordHash: "hash",
		Name:         "Cliente Teste",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	return testDB, repo, user
}

func newTestAddress(userID uint, street string, primary bool) *model.Address {
	return &model.Address{
		UserID:    userID,
		ZipCode:   "01310-100",
		Street:    street,
		Number:    "1000",
		District:  "Bela Vista",
		City:      "São Paulo",
		State:     "SP",
		IsPrimary: primary,
	}
}

func TestAddressRepository_Create(t *testing.T) {
	_, repo, user := setupAddressTest(t)

	address := newTestAddress(user.ID, "Av. Paulista", true)
	err := repo.Create(address)
	assert.NoError(t, err)
	assert.NotZero(t, address.ID)
}

func TestAddressRepository_FindByUserID_PrimaryFirst(t *testing.T) {
	_, repo, user := setupAddressTest(t)

	require.NoError(t, repo.Create(newTestAddress(user.ID, "Rua Augusta", false)))
	require.NoError(t, repo.Create(newTestAddress(user.ID, "Av. Paulista", true)))

	addresses, err := repo.FindByUserID(user.ID)
	assert.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, "Av. Paulista", addresses[0].Street)
	assert.True(t, addresses[0].IsPrimary)
}

func TestAddressRepository_FindPrimaryByUserID(t *testing.T) {
	_, repo, user := setupAddressTest(t)

	require.NoError(t, repo.Create(newTestAddress(user.ID, "Rua Augusta", false)))

	_, err := repo.FindPrimaryByUserID(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Create(newTestAddress(user.ID, "Av. Paulista", true)))

	primary, err := repo.FindPrimaryByUserID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Av. Paulista", primary.Street)
}

func TestAddressRepository_SetPrimary(t *testing.T) {
	_, repo, user := setupAddressTest(t)

	first := newTestAddress(user.ID, "Av. Paulista", true)
	second := newTestAddress(user.ID, "Rua Augusta", false)
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	err := repo.SetPrimary(user.ID, second.ID)
	assert.NoError(t, err)

	addresses, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)

	primaryCount := 0
	for _, a := range addresses {
		if a.IsPrimary {
			primaryCount++
			assert.Equal(t, second.ID, a.ID)
		}
	}
	assert.Equal(t, 1, primaryCount)
}

func TestAddressRepository_SetPrimary_NotOwned(t *testing.T) {
	testDB, repo, user := setupAddressTest(t)

	other := &model.User{
		Email:        "outro@example.com",
		PasswordHash: "hash",
		Name:         "Outro Cliente",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	theirs := newTestAddress(other.ID, "Rua Oscar Freire", true)
	require.NoError(t, repo.Create(theirs))

	err := repo.SetPrimary(user.ID, theirs.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The other user's primary flag must survive the failed attempt
	found, err := repo.FindByID(theirs.ID)
	require.NoError(t, err)
	assert.True(t, found.IsPrimary)
}

func TestAddressRepository_Delete(t *testing.T) {
	_, repo, user := setupAddressTest(t)

	address := newTestAddress(user.ID, "Av. Paulista", false)
	require.NoError(t, repo.Create(address))

	err := repo.Delete(address.ID)
	assert.NoError(t, err)

	_, err = repo.FindByID(address.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
