package repository

import (
	"context"
	"time"

	"roomscheduler/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	RoomID    int64     `gorm:"column:room_id;not null;index:idx_bookings_room_start,priority:1"`
	OwnerID   int64     `gorm:"column:owner_id;not null;index"`
	StartAt   time.Time `gorm:"column:start_at;not null;index:idx_bookings_room_start,priority:2"`
	EndAt     time.Time `gorm:"column:end_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (bookingModel) TableName() string { return "bookings" }

type bookingDetailsRow struct {
	ID         int64     `gorm:"column:id"`
	RoomID     int64     `gorm:"column:room_id"`
	OwnerID    int64     `gorm:"column:owner_id"`
	StartAt    time.Time `gorm:"column:start_at"`
	EndAt      time.Time `gorm:"column:end_at"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	RoomName   string    `gorm:"column:room_name"`
	OwnerName  string    `gorm:"column:owner_name"`
	OwnerEmail string    `gorm:"column:owner_email"`
}

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:        m.ID,
		RoomID:    m.RoomID,
		OwnerID:   m.OwnerID,
		StartAt:   m.StartAt.UTC(),
		EndAt:     m.EndAt.UTC(),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:        b.ID,
		RoomID:    b.RoomID,
		OwnerID:   b.OwnerID,
		StartAt:   b.StartAt.UTC(),
		EndAt:     b.EndAt.UTC(),
		CreatedAt: b.CreatedAt,
	}
}

// ExistsOverlapping reports whether any stored booking on the room shares an
// instant with [start, end). Touching endpoints do not count.
func (r *BookingRepository) ExistsOverlapping(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	return existsOverlapping(r.db.WithContext(ctx), roomID, start, end)
}

func existsOverlapping(db *gorm.DB, roomID int64, start, end time.Time) (bool, error) {
	var cnt int64
	err := db.
		Model(&bookingModel{}).
		Where("room_id = ?", roomID).
		Where("start_at < ? AND end_at > ?", end.UTC(), start.UTC()).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// Insert stores b and assigns its ID. The overlap check and the write happen
// in one transaction holding the room row lock, so two callers racing for
// the same room cannot both get in. Returns ErrOverlap when the slot is
// taken and ErrNotFound when the room no longer exists.
func (r *BookingRepository) Insert(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room domain.Room
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", b.RoomID).
			First(&room).Error
		if err != nil {
			return notFound(err)
		}

		taken, err := existsOverlapping(tx, b.RoomID, b.StartAt, b.EndAt)
		if err != nil {
			return err
		}
		if taken {
			return ErrOverlap
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return translateWriteErr(err)
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainBooking(m), nil
}

// Delete removes exactly the booking that was read, in a single statement.
// When someone else got there first it returns ErrNotFound.
func (r *BookingRepository) Delete(ctx context.Context, b *domain.Booking) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", b.ID, b.OwnerID).
		Delete(&bookingModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.BookingDetails, error) {
	var rows []bookingDetailsRow
	err := r.detailsQuery(ctx).
		Where("b.owner_id = ?", ownerID).
		Order("b.start_at DESC").
		Order("b.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainDetails(rows), nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.BookingDetails, error) {
	var rows []bookingDetailsRow
	err := r.detailsQuery(ctx).
		Order("b.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainDetails(rows), nil
}

// detailsQuery joins rooms and users; LEFT JOIN keeps bookings whose room or
// owner has since been deleted.
func (r *BookingRepository) detailsQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings b").
		Select(`
			b.id,
			b.room_id,
			b.owner_id,
			b.start_at,
			b.end_at,
			b.created_at,
			COALESCE(rm.name, '') AS room_name,
			COALESCE(u.name, '') AS owner_name,
			COALESCE(u.email, '') AS owner_email
		`).
		Joins("LEFT JOIN rooms rm ON rm.id = b.room_id").
		Joins("LEFT JOIN users u ON u.id = b.owner_id")
}

func toDomainDetails(rows []bookingDetailsRow) []domain.BookingDetails {
	out := make([]domain.BookingDetails, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.BookingDetails{
			Booking: domain.Booking{
				ID:        row.ID,
				RoomID:    row.RoomID,
				OwnerID:   row.OwnerID,
				StartAt:   row.StartAt.UTC(),
				EndAt:     row.EndAt.UTC(),
				CreatedAt: row.CreatedAt.UTC(),
			},
			RoomName:   row.RoomName,
			OwnerName:  row.OwnerName,
			OwnerEmail: row.OwnerEmail,
		})
	}
	return out
}
