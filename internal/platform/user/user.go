package user

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"stockroom/internal/database"
	"stockroom/pkg/passwd"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// UserService is the only component that touches persisted identity
// data. All access is parameterized through GORM; every write is a
// single durable statement.
type UserService struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(userID int) (*database.User, error) {
	var user database.User
	result := s.db.First(&user, "id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *UserService) GetByUsername(username string) (*database.User, error) {
	var user database.User
	result := s.db.First(&user, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// Create hashes the plaintext before it ever reaches the database. The
// uniqueness check rides on the storage unique constraint rather than a
// separate existence query, so two racing creates cannot both succeed.
func (s *UserService) Create(username, password, role string) (*database.User, error) {
	user := database.User{
		Username:     username,
		PasswordHash: passwd.Hash(password),
		Role:         role,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return &user, nil
}

func (s *UserService) UpdatePasswordHash(userID int, newHash string) error {
	result := s.db.Model(&database.User{}).Where("id = ?", userID).Update("password_hash", newHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) RecordLogin(userID int, at time.Time) error {
	result := s.db.Model(&database.User{}).Where("id = ?", userID).Update("last_login", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) PurgeResetKeys(userID int) error {
	return s.db.Delete(&database.ResetKey{}, "user_id = ?", userID).Error
}
