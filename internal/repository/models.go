package repository

import "roomscheduler/internal/domain"

// Models lists every table the repositories persist, for migrations.
func Models() []any {
	return []any{&domain.User{}, &domain.Room{}, &bookingModel{}}
}
