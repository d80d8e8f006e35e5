package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/velmor/go-auth-api/internal/models"
)

// ErrDuplicateUsername возвращается, когда уникальный индекс отклонил запись.
var ErrDuplicateUsername = errors.New("username already exists")

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (d *Database) CreateUser(ctx context.Context, user *models.User) error {
	if err := d.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (d *Database) UpdateUser(ctx context.Context, user *models.User) error {
	if err := d.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// FindUserByID возвращает (nil, nil), если записи нет.
func (d *Database) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByUsername возвращает (nil, nil), если записи нет.
func (d *Database) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByUsernameOrGoogleID ищет каноническую запись для OAuth-профиля:
// совпадение по любому из двух полей считается той же учётной записью.
func (d *Database) FindUserByUsernameOrGoogleID(ctx context.Context, username, googleID string) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).
		Where("username = ? OR google_id = ?", username, googleID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (d *Database) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := d.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser возвращает false, если записи не было.
func (d *Database) DeleteUser(ctx context.Context, id uuid.UUID) (bool, error) {
	res := d.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
