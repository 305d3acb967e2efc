package user

import (
	"errors"
	"testing"

	userRepo "busbook/database/repository/user"
	"busbook/models"
	"busbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (r *memUserRepo) Create(u *models.User) error {
	for _, other := range r.users {
		if other.PhoneNumber == u.PhoneNumber {
			return &utils.ConflictError{Message: "A user with this phone number already exists."}
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "User"}
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByPhoneNumber(phone string) (*models.User, error) {
	for _, u := range r.users {
		if u.PhoneNumber == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Search(f userRepo.Filter) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if f.Role != "" && string(u.Role) != f.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) Update(id string, set bson.M) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "User"}
	}
	next := *u
	if v, ok := set["name"]; ok {
		next.Name = v.(string)
	}
	if v, ok := set["role"]; ok {
		next.Role = models.Role(v.(string))
	}
	if v, ok := set["password_hash"]; ok {
		next.PasswordHash = v.(string)
	}
	r.users[id] = &next
	cp := next
	return &cp, nil
}

func (r *memUserRepo) Delete(id string) error {
	if _, ok := r.users[id]; !ok {
		return &utils.NotFoundError{Resource: "User"}
	}
	delete(r.users, id)
	return nil
}

func newUserService() *DefaultUserService {
	return &DefaultUserService{Repo: newMemUserRepo(), TokenExpiry: 1}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Passw0rd", true},
		{"LongEnough1", true},
		{"short1A", false},
		{"nouppercase1", false},
		{"NoDigitsHere", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := validatePassword(tc.password); got != tc.ok {
			t.Errorf("validatePassword(%q) = %v, want %v", tc.password, got, tc.ok)
		}
	}
}

func TestRegisterUserCollectsAllViolations(t *testing.T) {
	svc := newUserService()
	_, err := svc.RegisterUser(models.User{
		Name:        "ab",
		Email:       "not-an-email",
		PhoneNumber: "abc",
		Password:    "weak",
		Role:        "driver",
	})
	var ve *utils.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Errors) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(ve.Errors), ve.Errors)
	}
}

func TestRegisterUserHashesPassword(t *testing.T) {
	svc := newUserService()
	u, err := svc.RegisterUser(models.User{
		Name:        "Amina Odhiambo",
		PhoneNumber: "+254712345678",
		Password:    "Passw0rd",
		Role:        models.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if u.Password != "" {
		t.Error("plaintext password should be cleared")
	}
	if u.PasswordHash == "" || u.PasswordHash == "Passw0rd" {
		t.Fatal("password should be stored as a hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Passw0rd")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegisterUserDuplicatePhone(t *testing.T) {
	svc := newUserService()
	base := models.User{
		Name:        "Amina Odhiambo",
		PhoneNumber: "+254712345678",
		Password:    "Passw0rd",
		Role:        models.RoleCustomer,
	}
	if _, err := svc.RegisterUser(base); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.RegisterUser(base)
	var ce *utils.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for duplicate phone, got %v", err)
	}
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	svc := newUserService()
	u, err := svc.RegisterUser(models.User{
		Name:        "Amina Odhiambo",
		PhoneNumber: "+254712345678",
		Password:    "Passw0rd",
		Role:        models.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	bad := "driver"
	_, err = svc.UpdateUser(u.ID, UserUpdate{Role: &bad})
	var ve *utils.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	good := string(models.RoleBusOperator)
	updated, err := svc.UpdateUser(u.ID, UserUpdate{Role: &good})
	if err != nil {
		t.Fatalf("valid role update failed: %v", err)
	}
	if updated.Role != models.RoleBusOperator {
		t.Errorf("role = %s, want bus_operator", updated.Role)
	}
}
