package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shenikar/border_alert_system/internal/models"
	"github.com/shenikar/border_alert_system/internal/service"
)

type UserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewUserRepository(seed []models.User) service.UserRepository {
	return &UserRepository{users: append([]models.User(nil), seed...)}
}

// GetByEmail ищет пользователя по email без учета регистра
func (r *UserRepository) GetByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user with email %s: %w", email, service.ErrUserNotFound)
}

// Create добавляет пользователя и присваивает ему ID вида u<n>
func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("user with email %s: %w", user.Email, service.ErrEmailTaken)
		}
	}

	user.ID = fmt.Sprintf("u%d", len(r.users)+1)
	r.users = append(r.users, *user)
	return nil
}
