package services

import (
	"errors"
	"testing"

	"github.com/haruchallenge/haru/internal/models"
)

type authUserStoreStub struct {
	users  map[string]models.User
	nextID uint
}

func newAuthUserStoreStub() *authUserStoreStub {
	return &authUserStoreStub{
		users:  make(map[string]models.User),
		nextID: 1,
	}
}

func (stub *authUserStoreStub) ExistsByNormalizedEmail(email string) (bool, error) {
	_, ok := stub.users[email]
	return ok, nil
}

func (stub *authUserStoreStub) FindByNormalizedEmail(email string) (models.User, error) {
	user, ok := stub.users[email]
	if !ok {
		return models.User{}, errors.New("user not found")
	}
	return user, nil
}

func (stub *authUserStoreStub) FindByID(userID uint) (models.User, error) {
	for _, user := range stub.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, errors.New("user not found")
}

func (stub *authUserStoreStub) Create(user *models.User) error {
	user.ID = stub.nextID
	stub.nextID++
	stub.users[user.Email] = *user
	return nil
}

func TestRegisterNormalizesEmailAndTrimsNickname(t *testing.T) {
	t.Parallel()

	users := newAuthUserStoreStub()
	service := NewAuthService(users)

	user, err := service.Register("  Runner@Example.COM ", "  haru  ", "StrongPass1")
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if user.Email != "runner@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Nickname != "haru" {
		t.Fatalf("expected trimmed nickname, got %q", user.Nickname)
	}
	if user.PasswordHash == "" || user.PasswordHash == "StrongPass1" {
		t.Fatal("expected password stored as a hash")
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	service := NewAuthService(newAuthUserStoreStub())

	if _, err := service.Register("not-an-email", "haru", "StrongPass1"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := service.Register("runner@example.com", "haru", "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	service := NewAuthService(newAuthUserStoreStub())

	if _, err := service.Register("runner@example.com", "first", "StrongPass1"); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if _, err := service.Register("Runner@example.com", "second", "StrongPass1"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken for case-variant duplicate, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	service := NewAuthService(newAuthUserStoreStub())

	registered, err := service.Register("runner@example.com", "haru", "StrongPass1")
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	user, err := service.Authenticate("Runner@Example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("Authenticate() unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
	}

	if _, err := service.Authenticate("runner@example.com", "WrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := service.Authenticate("ghost@example.com", "StrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
