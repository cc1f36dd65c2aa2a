package repository

import (
	"errors"
	"path/filepath"

	"imagemarket/api/internal/models"
	"imagemarket/api/internal/store"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	records *store.Store[models.User]
}

func NewUserRepository(dataDir string) *UserRepository {
	return &UserRepository{
		records: store.New(filepath.Join(dataDir, "users.json"), func(u models.User) string {
			return u.ID
		}),
	}
}

func (r *UserRepository) Save(user models.User) error {
	return r.records.Upsert(user)
}

func (r *UserRepository) GetByID(id string) (models.User, error) {
	user, ok := r.records.First(func(u models.User) bool { return u.ID == id })
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// FindByEmail returns the first user with a matching email in file order.
// Email uniqueness is not enforced at registration, so later duplicates are
// shadowed here. The match is case-sensitive.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	user, ok := r.records.First(func(u models.User) bool { return u.Email == email })
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) All() []models.User {
	return r.records.Load()
}
