package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roomscheduler/internal/domain"
	"roomscheduler/internal/repository"

	"github.com/patrickmn/go-cache"
)

const roomsCacheKey = "rooms:all"

// Service manages rooms. The full listing is cached and dropped on every write.
type Service struct {
	rooms RoomStore
	cache *cache.Cache
}

// NewService caches the room listing for cacheTTL; zero or less disables the cache.
func NewService(rooms RoomStore, cacheTTL time.Duration) *Service {
	s := &Service{rooms: rooms}
	if cacheTTL > 0 {
		s.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return s
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(roomsCacheKey); ok {
			return cached.([]domain.Room), nil
		}
	}

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}
	if s.cache != nil {
		s.cache.SetDefault(roomsCacheKey, rooms)
	}
	return rooms, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room %d: %w", id, err)
	}
	return room, nil
}

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	room := &domain.Room{
		Name:     strings.TrimSpace(req.Name),
		Capacity: req.Capacity,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	s.invalidate()
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room := &domain.Room{
		ID:       id,
		Name:     strings.TrimSpace(req.Name),
		Capacity: req.Capacity,
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("update room %d: %w", id, err)
	}
	s.invalidate()
	return s.GetRoom(ctx, id)
}

// DeleteRoom removes the room. Deleting an absent room succeeds.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete room %d: %w", id, err)
	}
	s.invalidate()
	return nil
}

func (s *Service) invalidate() {
	if s.cache != nil {
		s.cache.Delete(roomsCacheKey)
	}
}
