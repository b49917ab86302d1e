package repositories

import (
	"github.com/canvaspace/database"
	"github.com/canvaspace/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new user repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByID retrieves a user by id.
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	err := database.DB.First(&user, "id = ?", id).Error
	return user, err
}

// FindByEmail retrieves a user by email.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := database.DB.First(&user, "email = ?", email).Error
	return user, err
}

// ExistsByEmail checks whether a user with the given email exists.
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ExistsByUsername checks whether a user with the given username exists.
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// Create inserts a new user into the database
func (r *UserRepository) Create(user *models.User) error {
	return database.DB.Create(user).Error
}
