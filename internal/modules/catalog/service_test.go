package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomscheduler/internal/domain"
	"roomscheduler/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomStore) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomStore) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	if args.Error(0) == nil {
		room.ID = 10
	}
	return args.Error(0)
}

func (m *MockRoomStore) Update(ctx context.Context, room *domain.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *MockRoomStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestListRooms_CachedUntilWrite(t *testing.T) {
	store := new(MockRoomStore)
	svc := NewService(store, time.Minute)
	ctx := context.Background()

	store.On("List", ctx).Return([]domain.Room{{ID: 1, Name: "Blue", Capacity: 4}}, nil).Twice()
	store.On("Create", ctx, mock.Anything).Return(nil).Once()

	first, err := svc.ListRooms(ctx)
	require.NoError(t, err)
	second, err := svc.ListRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	store.AssertNumberOfCalls(t, "List", 1)

	_, err = svc.CreateRoom(ctx, CreateRoomRequest{Name: "Green", Capacity: 2})
	require.NoError(t, err)

	_, err = svc.ListRooms(ctx)
	require.NoError(t, err)
	store.AssertNumberOfCalls(t, "List", 2)
}

func TestListRooms_EmptyIsNotNil(t *testing.T) {
	store := new(MockRoomStore)
	svc := NewService(store, time.Minute)
	store.On("List", mock.Anything).Return(nil, nil)

	rooms, err := svc.ListRooms(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, rooms)
}

func TestCreateRoom_TrimsName(t *testing.T) {
	store := new(MockRoomStore)
	svc := NewService(store, time.Minute)
	store.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Room) bool {
		return r.Name == "Blue" && r.Capacity == 3
	})).Return(nil)

	room, err := svc.CreateRoom(context.Background(), CreateRoomRequest{Name: "  Blue ", Capacity: 3})

	require.NoError(t, err)
	assert.Equal(t, int64(10), room.ID)
}

func TestUpdateRoom_NotFound(t *testing.T) {
	store := new(MockRoomStore)
	svc := NewService(store, time.Minute)
	store.On("Update", mock.Anything, mock.Anything).Return(repository.ErrNotFound)

	_, err := svc.UpdateRoom(context.Background(), 5, UpdateRoomRequest{Name: "X", Capacity: 1})

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestDeleteRoom_StoreError(t *testing.T) {
	store := new(MockRoomStore)
	svc := NewService(store, time.Minute)
	boom := errors.New("db down")
	store.On("Delete", mock.Anything, int64(5)).Return(boom)

	err := svc.DeleteRoom(context.Background(), 5)

	assert.ErrorIs(t, err, boom)
}

func TestListRooms_ZeroTTLDisablesCache(t *testing.T) {
	store := new(MockRoomStore)
	svc := NewService(store, 0)
	ctx := context.Background()

	store.On("List", ctx).Return([]domain.Room{{ID: 1, Name: "Blue", Capacity: 4}}, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.ListRooms(ctx)
		require.NoError(t, err)
	}
	store.AssertNumberOfCalls(t, "List", 3)
}
