package repository

import (
	"testing"
	"time"

	"github.com/snehasingla/Hospital-Management-System/internal/domain"
	"github.com/snehasingla/Hospital-Management-System/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Appointment{}, &models.Notification{}))
	return db
}

func TestCreateStartsUnread(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))

	n := &models.Notification{UserID: 1, Type: domain.NotifAppointmentBooked, Title: "t", Message: "m"}
	require.NoError(t, repo.Create(n))
	assert.NotZero(t, n.ID)
	assert.False(t, n.Read)

	count, err := repo.CountUnread(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))

	n := &models.Notification{UserID: 1, Type: domain.NotifAppointmentConfirmed}
	require.NoError(t, repo.Create(n))

	require.NoError(t, repo.MarkRead(n.ID))
	count, err := repo.CountUnread(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Marking again is a no-op success and the counter stays put.
	require.NoError(t, repo.MarkRead(n.ID))
	count, err = repo.CountUnread(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkReadUnknownID(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	assert.ErrorIs(t, repo.MarkRead(9999), domain.ErrNotFound)
}

func TestMarkAllRead(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&models.Notification{UserID: 1, Type: domain.NotifAppointmentBooked}))
	}
	require.NoError(t, repo.Create(&models.Notification{UserID: 2, Type: domain.NotifAppointmentBooked}))

	updated, err := repo.MarkAllRead(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	count, err := repo.CountUnread(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Other users' feeds are untouched.
	count, err = repo.CountUnread(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Repeat call affects nothing.
	updated, err = repo.MarkAllRead(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestListRecentCapsAndOrders(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		n := &models.Notification{
			UserID:    1,
			Type:      domain.NotifAppointmentBooked,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(n))
	}

	list, err := repo.ListRecent(1, 0)
	require.NoError(t, err)
	require.Len(t, list, domain.DefaultNotificationLimit)

	// Newest first, strictly descending.
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].CreatedAt.After(list[i].CreatedAt),
			"entry %d (%v) should be newer than entry %d (%v)", i-1, list[i-1].CreatedAt, i, list[i].CreatedAt)
	}
	assert.Equal(t, base.Add(24*time.Minute).Unix(), list[0].CreatedAt.Unix())
}

func TestListRecentScopedToUser(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))

	require.NoError(t, repo.Create(&models.Notification{UserID: 1, Type: domain.NotifAppointmentBooked}))
	require.NoError(t, repo.Create(&models.Notification{UserID: 2, Type: domain.NotifAppointmentRejected}))

	list, err := repo.ListRecent(1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint(1), list[0].UserID)
}
