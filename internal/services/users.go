package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserInput carries the writable user fields. Password is plain text and is
// hashed before it is stored.
type UserInput struct {
	Name     *string
	Email    *string
	Password *string
	Phone    *string
	RoleID   *uint64
}

// UserService manages user accounts
type UserService struct {
	DB         *gorm.DB
	BcryptCost int
}

// NewUserService creates a UserService, falling back to bcrypt.DefaultCost for an out of range cost
func NewUserService(db *gorm.DB, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{DB: db, BcryptCost: bcryptCost}
}

// List returns all users with their role
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Preload("Role").Order("name ASC").Order("id ASC").Find(&users).Error; err != nil {
		return nil, storeError("list users", err)
	}
	return users, nil
}

// Get returns one user with its role
func (s *UserService) Get(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := first(s.DB.WithContext(ctx).Preload("Role"), &user, id, "user"); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a user. Name, email, password and role are required.
func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	switch {
	case blank(in.Name):
		return nil, types.NewValidationError("name is required")
	case blank(in.Email):
		return nil, types.NewValidationError("email is required")
	case in.Password == nil || *in.Password == "":
		return nil, types.NewValidationError("password is required")
	case in.RoleID == nil:
		return nil, types.NewValidationError("roleId is required")
	}

	hash, err := s.hash(*in.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:     strings.TrimSpace(*in.Name),
		Email:    normalizeEmail(*in.Email),
		Password: hash,
		Phone:    in.Phone,
		RoleID:   *in.RoleID,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustReference(tx, &models.Privilege{}, user.RoleID, "role"); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&user).Error; err != nil {
			return storeError("create user", err)
		}
		return appendActorEvent(ctx, tx, models.EntityTypeUser, models.EventTypeCreated, user.ID,
			fmt.Sprintf("User created: %s", user.Name))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user created", "user_id", user.ID, "role_id", user.RoleID)
	return s.Get(ctx, user.ID)
}

// Update applies the fields present in the input
func (s *UserService) Update(ctx context.Context, id uint64, in UserInput) (*models.User, error) {
	var hash string
	if in.Password != nil {
		if *in.Password == "" {
			return nil, types.NewValidationError("password cannot be empty")
		}
		var err error
		if hash, err = s.hash(*in.Password); err != nil {
			return nil, err
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := first(tx, &user, id, "user"); err != nil {
			return err
		}

		if in.Name != nil {
			if blank(in.Name) {
				return types.NewValidationError("name cannot be empty")
			}
			user.Name = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			if blank(in.Email) {
				return types.NewValidationError("email cannot be empty")
			}
			user.Email = normalizeEmail(*in.Email)
		}
		if hash != "" {
			user.Password = hash
		}
		if in.Phone != nil {
			user.Phone = in.Phone
		}
		if in.RoleID != nil {
			if err := mustReference(tx, &models.Privilege{}, *in.RoleID, "role"); err != nil {
				return err
			}
			user.RoleID = *in.RoleID
		}

		if err := tx.Omit(clause.Associations).Save(&user).Error; err != nil {
			return storeError("update user", err)
		}
		return appendActorEvent(ctx, tx, models.EntityTypeUser, models.EventTypeUpdated, user.ID,
			fmt.Sprintf("User updated: %s", user.Name))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user updated", "user_id", id)
	return s.Get(ctx, id)
}

// Delete removes a user under the user delete rules
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	return DeleteUser(ctx, s.DB, id)
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

func (s *UserService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		return "", types.NewValidationError("password cannot be hashed: %v", err)
	}
	return string(b), nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
