package memory

import (
	"context"
	"sort"

	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
)

type userRepository struct {
	store *Store
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Email == newUser.Email {
			return user.User{}, user.ErrEmailExists
		}
	}

	now := r.store.now()
	newUser.CreatedAt = now
	newUser.UpdatedAt = now
	if log := txLog(ctx); log != nil {
		remember(log.users, r.store.users, newUser.ID)
	}
	r.store.users[newUser.ID] = newUser
	return newUser, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// ListByRole implements user.UserRepository.
func (r *userRepository) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := []user.User{}
	for _, u := range r.store.users {
		if u.Role == role {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}
