package user

import (
	"time"

	"busbook/models"
	"busbook/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthResponse is returned after a successful login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Authenticate verifies the phone number and password, issues a signed token,
// and registers its hash in the auth cache so it can be revoked later.
func (s *DefaultUserService) Authenticate(phoneNumber, password string) (*AuthResponse, error) {
	if phoneNumber == "" || password == "" {
		return nil, utils.NewValidationError("Phone number or password is missing")
	}

	u, err := s.Repo.GetByPhoneNumber(phoneNumber)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &utils.NotFoundError{Resource: "User"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, &utils.UnauthorizedError{Message: "Invalid password."}
	}

	expiry := time.Duration(s.TokenExpiry) * time.Hour
	token, err := utils.GenerateToken(u.ID, string(u.Role), expiry)
	if err != nil {
		utils.GetLogger().Error("Failed to generate token", zap.String("userID", u.ID), zap.Error(err))
		return nil, err
	}

	now := time.Now()
	session := utils.AuthSession{
		UserID:    u.ID,
		Role:      string(u.Role),
		IssuedAt:  now,
		ExpiresAt: now.Add(expiry),
	}
	if err := utils.SaveAuthSession(s.AuthCache, utils.HashToken(token), session); err != nil {
		utils.GetLogger().Error("Failed to save auth session", zap.String("userID", u.ID), zap.Error(err))
		return nil, err
	}

	utils.GetLogger().Info("User logged in", zap.String("userID", u.ID), zap.String("role", string(u.Role)))
	return &AuthResponse{Token: token, User: u}, nil
}

// RevokeToken removes the session for a token hash, invalidating the token
// before its natural expiry.
func (s *DefaultUserService) RevokeToken(tokenHash string) error {
	return utils.DeleteAuthSession(s.AuthCache, tokenHash)
}
