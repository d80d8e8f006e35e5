package services

import (
	"context"

	"github.com/velmor/go-auth-api/internal/logger"
	"github.com/velmor/go-auth-api/internal/models"
	"github.com/velmor/go-auth-api/internal/oauth"
	"github.com/velmor/go-auth-api/pkg/auth"
)

type RegisterRequest struct {
	Username string
	Fullname string
	Password string
}

type LoginRequest struct {
	Username string
	Password string
}

// AuthResponse — токен плюс публичное представление пользователя.
type AuthResponse struct {
	AccessToken string            `json:"access_token"`
	User        models.PublicUser `json:"user"`
}

// AuthService связывает разрешение личности, хранилище и выпуск токенов.
type AuthService struct {
	users      *UserService
	jwtManager *auth.JWTManager
}

func NewAuthService(users *UserService, jwtMgr *auth.JWTManager) *AuthService {
	return &AuthService{users: users, jwtManager: jwtMgr}
}

// ResolveLocal проверяет пару username/password. Возвращает (nil, nil)
// одинаково для неизвестного пользователя, OAuth-аккаунта без пароля и
// неверного пароля — чтобы по ответу нельзя было перечислять аккаунты.
func (s *AuthService) ResolveLocal(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasPassword() {
		return nil, nil
	}
	if !auth.CheckPassword(password, *user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// Register создаёт учётную запись и сразу выдаёт токен.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	user, err := s.users.Create(ctx, CreateUserRequest{
		Username: req.Username,
		Fullname: req.Fullname,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login выдаёт токен по локальным учётным данным.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.ResolveLocal(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		logger.Warn("login failed", logger.String("username", NormalizeUsername(req.Username)))
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// LoginWithGoogle выдаёт токен по уже аутентифицированному провайдером
// профилю, создавая учётную запись при первом входе. Email служит
// суррогатом username; без него берётся id профиля.
func (s *AuthService) LoginWithGoogle(ctx context.Context, profile *oauth.Profile) (*AuthResponse, error) {
	if profile == nil {
		return nil, ErrInvalidProfile
	}
	username := profile.PrimaryEmail()
	if username == "" {
		username = profile.ID
	}
	if username == "" {
		return nil, ErrInvalidProfile
	}

	user, err := s.users.CreateFromGoogle(ctx, GoogleUserData{
		Username: username,
		Fullname: profile.DisplayName,
		Avatar:   profile.PrimaryPhoto(),
		GoogleID: profile.ID,
	})
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// UserByID разрешает subject токена в живую учётную запись.
func (s *AuthService) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *AuthService) issue(user *models.User) (*AuthResponse, error) {
	token, err := s.jwtManager.Generate(user.ID.String(), user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		AccessToken: token,
		User:        user.Public(),
	}, nil
}
