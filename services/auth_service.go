package services

import (
	"strconv"
	"time"

	"github.com/sultan-bakery/sultan-orders-api/models"
	"gorm.io/gorm"
)

// MasterPassword derives the development bootstrap administrator's credential
// from a point in time: year * month + day-of-month, as a decimal string.
// The password is never stored anywhere; it changes daily.
//
// This is a compatibility shim for the original deployment, not a credential
// scheme. Production use needs a real credential store.
func MasterPassword(now time.Time) string {
	return strconv.Itoa(now.Year()*int(now.Month()) + now.Day())
}

// MasterUser returns the bootstrap administrator identity. It lives outside
// the users table and is excluded from user listings.
func MasterUser() *models.User {
	facility := "main_shop"
	return &models.User{
		ID:          models.MasterAdminID,
		Username:    "admin",
		DisplayName: "System administrator (Master)",
		RoleID:      models.RoleAdmin,
		FacilityID:  &facility,
	}
}

// AuthService authenticates users against the users table plus the
// date-derived master credential.
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates an auth service backed by the given database
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Login verifies the given credentials and returns the matching user.
// The master bootstrap path is checked first; regular users are matched by
// username with a plaintext password compare. Users with an empty stored
// password can never log in.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	if username == "admin" && password == MasterPassword(time.Now()) {
		return MasterUser(), nil
	}

	var user models.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Password == "" || user.Password != password {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}
