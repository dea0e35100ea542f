package admin

import (
	"context"
	"errors"
	"fmt"

	"roomscheduler/internal/domain"
	"roomscheduler/internal/pkg/logger"
	"roomscheduler/internal/repository"
)

type Service struct {
	users UserStore
	log   *logger.Logger
}

func NewService(users UserStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{users: users, log: log}
}

func (s *Service) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, toUserView(u))
	}
	return out, nil
}

// DeleteUser removes the account. Bookings it owned are kept.
func (s *Service) DeleteUser(ctx context.Context, actor domain.Identity, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.log.Info("admin action", "action", "delete_user", "admin_id", actor.UserID, "user_id", id)
	return nil
}

func (s *Service) UpdateRole(ctx context.Context, actor domain.Identity, id int64, rawRole string) (*UserView, error) {
	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return nil, ErrInvalidRole
	}

	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update role of user %d: %w", id, err)
	}
	s.log.Info("admin action", "action", "update_role", "admin_id", actor.UserID, "user_id", id, "role", string(role))

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	view := toUserView(*u)
	return &view, nil
}
