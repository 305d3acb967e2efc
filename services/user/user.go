package user

import (
	"regexp"
	"strings"

	userRepo "busbook/database/repository/user"
	"busbook/models"
	"busbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService manages platform accounts and authentication.
type UserService interface {
	RegisterUser(u models.User) (*models.User, error)
	Authenticate(phoneNumber, password string) (*AuthResponse, error)
	RevokeToken(tokenHash string) error
	GetUserByID(id string) (*models.User, error)
	SearchUsers(f userRepo.Filter) ([]models.User, error)
	UpdateUser(id string, updates UserUpdate) (*models.User, error)
	UpdatePassword(id string, newPassword string) error
	DeleteUser(id string) error
}

// UserUpdate carries a partial profile update.
type UserUpdate struct {
	Name *string `json:"name,omitempty"`
	Role *string `json:"role,omitempty"`
}

// DefaultUserService is the production user service.
type DefaultUserService struct {
	Repo        userRepo.UserRepository
	AuthCache   *redis.Client
	TokenExpiry int // hours
}

var (
	emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRx = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	upperRx = regexp.MustCompile(`[A-Z]`)
	digitRx = regexp.MustCompile(`[0-9]`)
)

func validatePassword(pw string) bool {
	return len(pw) >= 8 && upperRx.MatchString(pw) && digitRx.MatchString(pw)
}

// RegisterUser validates the account, hashes the password, and stores the
// user. Phone-number uniqueness is enforced by the storage layer on insert.
func (s *DefaultUserService) RegisterUser(u models.User) (*models.User, error) {
	var errs []string
	if len(strings.TrimSpace(u.Name)) < 3 {
		errs = append(errs, "Name must be a valid string with at least 3 characters.")
	}
	if u.Email != "" && !emailRx.MatchString(u.Email) {
		errs = append(errs, "Invalid email address.")
	}
	if !phoneRx.MatchString(u.PhoneNumber) {
		errs = append(errs, "Invalid phone number.")
	}
	if !validatePassword(u.Password) {
		errs = append(errs, "Password must be at least 8 characters long, include an uppercase letter and a number.")
	}
	if !u.Role.Valid() {
		errs = append(errs, "Role must be one of Admin, Customer, or Bus Operator.")
	}
	if len(errs) > 0 {
		return nil, utils.NewValidationError(errs...)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, err
	}
	u.PasswordHash = string(hashed)
	u.Password = ""
	u.ID = uuid.New().String()
	u.Name = strings.TrimSpace(u.Name)

	if err := s.Repo.Create(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID retrieves a user by id.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}

// SearchUsers retrieves users matching the filter. No matches is a not-found
// outcome per the API contract.
func (s *DefaultUserService) SearchUsers(f userRepo.Filter) ([]models.User, error) {
	users, err := s.Repo.Search(f)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, &utils.NotFoundError{Resource: "User"}
	}
	return users, nil
}

// UpdateUser applies a partial profile update with per-field validation.
func (s *DefaultUserService) UpdateUser(id string, updates UserUpdate) (*models.User, error) {
	var errs []string
	set := bson.M{}

	if updates.Name != nil {
		name := strings.TrimSpace(*updates.Name)
		if len(name) < 3 {
			errs = append(errs, "Name must be a valid string with at least 3 characters.")
		} else {
			set["name"] = name
		}
	}
	if updates.Role != nil {
		role := models.Role(*updates.Role)
		if !role.Valid() {
			errs = append(errs, "Role must be one of Admin, Customer, or Bus Operator.")
		} else {
			set["role"] = string(role)
		}
	}

	if len(errs) > 0 {
		return nil, utils.NewValidationError(errs...)
	}
	if len(set) == 0 {
		return s.Repo.GetByID(id)
	}
	return s.Repo.Update(id, set)
}

// UpdatePassword validates and rehashes the password.
func (s *DefaultUserService) UpdatePassword(id string, newPassword string) error {
	if !validatePassword(newPassword) {
		return utils.NewValidationError("Password must be at least 8 characters long, include an uppercase letter and a number.")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.Repo.Update(id, bson.M{"password_hash": string(hashed)})
	return err
}

// DeleteUser removes an account.
func (s *DefaultUserService) DeleteUser(id string) error {
	return s.Repo.Delete(id)
}
