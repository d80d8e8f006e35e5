package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/velmor/go-auth-api/internal/database"
	"github.com/velmor/go-auth-api/internal/logger"
	"github.com/velmor/go-auth-api/internal/models"
	"github.com/velmor/go-auth-api/pkg/auth"
)

// UserStore — операции хранилища учётных записей, нужные сервисам.
// Реализуется *database.Database.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByUsernameOrGoogleID(ctx context.Context, username, googleID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (bool, error)
}

type CreateUserRequest struct {
	Username string
	Fullname string
	Password string
	Avatar   string
}

type UpdateUserRequest struct {
	Username string
	Fullname string
	Password string
	Avatar   string
}

// GoogleUserData — каноническая выжимка из OAuth-профиля.
type GoogleUserData struct {
	Username string
	Fullname string
	Avatar   string
	GoogleID string
}

type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// Create регистрирует локальную учётную запись: нормализует username,
// проверяет уникальность, хэширует пароль и только потом сохраняет.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	username := NormalizeUsername(req.Username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	fullname := strings.TrimSpace(req.Fullname)
	if err := validateFullname(fullname); err != nil {
		return nil, err
	}

	existing, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Warn("attempt to create duplicate username", logger.String("username", username))
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, &ValidationError{Field: "password", Message: err.Error()}
		}
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Fullname:     fullname,
		PasswordHash: &hash,
		Avatar:       req.Avatar,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// Проигравший гонку регистрации получает тот же конфликт,
		// что и при обычном дубликате.
		if errors.Is(err, database.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	logger.Info("user created", logger.String("username", user.Username))
	return user, nil
}

// FindByID возвращает ErrUserNotFound и для кривого id, и для отсутствующей записи.
func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.store.FindUserByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// FindByUsername возвращает (nil, nil), если записи нет.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return nil, nil
	}
	return s.store.FindUserByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// Update меняет только переданные поля; смена username и пароля проходит
// те же проверки, что и при регистрации.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		username := NormalizeUsername(req.Username)
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		if username != user.Username {
			existing, err := s.store.FindUserByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				logger.Warn("attempt to update to duplicate username", logger.String("username", username))
				return nil, ErrUsernameTaken
			}
			user.Username = username
		}
	}

	if req.Fullname != "" {
		fullname := strings.TrimSpace(req.Fullname)
		if err := validateFullname(fullname); err != nil {
			return nil, err
		}
		user.Fullname = fullname
	}

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooShort) {
				return nil, &ValidationError{Field: "password", Message: err.Error()}
			}
			return nil, err
		}
		user.PasswordHash = &hash
	}

	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrUserNotFound
	}
	deleted, err := s.store.DeleteUser(ctx, uid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	logger.Info("user deleted", logger.String("id", id))
	return nil
}

// CreateFromGoogle находит каноническую запись для OAuth-профиля или
// создаёт новую без хэша пароля. Совпадение по username или google id
// означает уже существующую учётную запись.
func (s *UserService) CreateFromGoogle(ctx context.Context, data GoogleUserData) (*models.User, error) {
	username := NormalizeUsername(data.Username)

	existing, err := s.store.FindUserByUsernameOrGoogleID(ctx, username, data.GoogleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	user := &models.User{
		Username: username,
		Fullname: data.Fullname,
		Avatar:   data.Avatar,
	}
	if data.GoogleID != "" {
		googleID := data.GoogleID
		user.GoogleID = &googleID
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// Два одновременных первых логина одного профиля: проигравший
		// гонку просто перечитывает созданную запись.
		if errors.Is(err, database.ErrDuplicateUsername) {
			if again, ferr := s.store.FindUserByUsernameOrGoogleID(ctx, username, data.GoogleID); ferr == nil && again != nil {
				return again, nil
			}
		}
		return nil, err
	}

	logger.Info("user created from google profile", logger.String("username", user.Username))
	return user, nil
}
