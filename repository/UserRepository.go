package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"worksmis/models"
	"worksmis/utils"

	"gorm.io/gorm"
)

// GetUserByEmail looks a user up case-insensitively.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*models.UserGorm, error) {
	ctx, cancel := utils.FastQuery.Context(ctx)
	defer cancel()

	var user models.UserGorm
	err := db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func newAdminUser(email, password string) (models.UserGorm, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.UserGorm{}, fmt.Errorf("hash admin password: %w", err)
	}
	return models.UserGorm{
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  hash,
		FirstName: "Admin",
	}, nil
}

// SeedAdmin creates the bootstrap login account when no user with that email exists.
// It reports whether a user was created.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string) (bool, error) {
	_, err := GetUserByEmail(ctx, db, strings.TrimSpace(email))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, fmt.Errorf("look up admin user: %w", err)
	}

	user, err := newAdminUser(email, password)
	if err != nil {
		return false, err
	}

	ctx, cancel := utils.FastQuery.Context(ctx)
	defer cancel()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return false, fmt.Errorf("create admin user: %w", err)
	}
	return true, nil
}
