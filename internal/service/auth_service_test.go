package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
)

// mockAccountRepository реализует AccountRepository для тестов.
type mockAccountRepository struct {
	usersByEmail map[string]*models.User
	usersByID    map[uuid.UUID]*models.User
	infos        map[uuid.UUID]*models.PersonalInfo
	settings     map[uuid.UUID]*models.Settings
}

func newMockAccountRepository() *mockAccountRepository {
	return &mockAccountRepository{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[uuid.UUID]*models.User),
		infos:        make(map[uuid.UUID]*models.PersonalInfo),
		settings:     make(map[uuid.UUID]*models.Settings),
	}
}

func (m *mockAccountRepository) CreateAccount(ctx context.Context, user *models.User, info *models.PersonalInfo, settings *models.Settings) error {
	if _, ok := m.usersByEmail[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	if info != nil {
		info.UserID = user.ID
		m.infos[user.ID] = info
	}
	if settings != nil {
		settings.UserID = user.ID
		m.settings[user.ID] = settings
	}
	return nil
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func newTestAuthService(repo AccountRepository) (*AuthService, *TokenManager) {
	logger.Discard()
	tokens := NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(repo, tokens)
	svc.hashCost = bcrypt.MinCost
	return svc, tokens
}

func TestAuthService_CreateAccountAndLogin(t *testing.T) {
	repo := newMockAccountRepository()
	svc, tokens := newTestAuthService(repo)
	ctx := context.Background()

	user, err := svc.CreateAccount(ctx, CreateAccountInput{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("create account returned error: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Fatalf("user ID должен быть установлен")
	}
	if user.Role != models.RoleAdmin {
		t.Fatalf("ожидалась роль admin, получили %q", user.Role)
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("пароль не должен храниться в открытом виде")
	}
	if info := repo.infos[user.ID]; info == nil || info.Name != "Your Name" {
		t.Fatalf("визитка по умолчанию должна быть создана")
	}
	if repo.settings[user.ID] == nil {
		t.Fatalf("настройки по умолчанию должны быть созданы")
	}

	res, err := svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	claims := tokens.Verify(res.Token)
	if claims == nil {
		t.Fatalf("выданный токен должен проходить проверку")
	}
	if claims.Role != models.RoleAdmin || claims.UserID != user.ID || claims.Email != "a@x.com" {
		t.Fatalf("неожиданные claims: %+v", claims)
	}

	res, err = svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "wrong12"})
	if !apperror.IsUnauthorized(err) {
		t.Fatalf("ожидалась ошибка авторизации, получили %v", err)
	}
	if res != nil {
		t.Fatalf("при неверном пароле токен не выдаётся")
	}
}

func TestAuthService_LoginUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(newMockAccountRepository())

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@x.com", Password: "secret1"})
	if err != apperror.ErrInvalidCredentials {
		t.Fatalf("ожидалась ErrInvalidCredentials, получили %v", err)
	}
}

func TestAuthService_LoginValidatesInput(t *testing.T) {
	svc, _ := newTestAuthService(newMockAccountRepository())
	ctx := context.Background()

	if _, err := svc.Login(ctx, LoginInput{Email: "not-an-email", Password: "secret1"}); !apperror.IsValidation(err) {
		t.Fatalf("ожидалась ошибка валидации email, получили %v", err)
	}
}

func TestAuthService_LoginShortPasswordIsInvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(newMockAccountRepository())
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, CreateAccountInput{Email: "a@x.com", Password: "secret1", Name: "Admin"}); err != nil {
		t.Fatalf("create account returned error: %v", err)
	}
	for _, password := range []string{"wrong", "123", ""} {
		if _, err := svc.Login(ctx, LoginInput{Email: "a@x.com", Password: password}); err != apperror.ErrInvalidCredentials {
			t.Fatalf("пароль %q: ожидалась ErrInvalidCredentials, получили %v", password, err)
		}
	}
}

func TestAuthService_CreateAccountDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(newMockAccountRepository())
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, CreateAccountInput{Email: "a@x.com", Password: "secret1", Name: "Admin"}); err != nil {
		t.Fatalf("create account returned error: %v", err)
	}
	_, err := svc.CreateAccount(ctx, CreateAccountInput{Email: "A@X.com", Password: "secret2"})
	if err != apperror.ErrEmailTaken {
		t.Fatalf("ожидалась ErrEmailTaken, получили %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1", PasswordHashCost)
	if err != nil {
		t.Fatalf("hash returned error: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost < 12 {
		t.Fatalf("стоимость bcrypt должна быть не меньше 12, получили %d", cost)
	}
	if !VerifyPassword("secret1", hash) || VerifyPassword("secret2", hash) {
		t.Fatalf("проверка пароля работает неверно")
	}
}
