package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"salonbook-backend/events"
	"salonbook-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// setupSQLiteTestDB opens a private in-memory database with every model migrated.
func setupSQLiteTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...), "migrate")
	return db
}

// createTenant inserts an account with one owner user and returns its actor.
func createTenant(t *testing.T, db *gorm.DB, name string) Actor {
	t.Helper()
	account := &models.Account{Name: name, IsActive: true}
	require.NoError(t, db.Create(account).Error)
	user := &models.User{
		AccountID: account.ID,
		Email:     uuid.NewString() + "@example.com",
		Password:  "x",
		Name:      name + " Owner",
		Role:      models.RoleOwner,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return Actor{AccountID: account.ID, UserID: user.ID}
}

func createSalon(t *testing.T, db *gorm.DB, actor Actor, name string) *models.Salon {
	t.Helper()
	salon := &models.Salon{AccountID: actor.AccountID, Name: name, OpeningHours: models.DefaultOpeningHours(), IsActive: true}
	require.NoError(t, db.Create(salon).Error)
	return salon
}

func createService(t *testing.T, db *gorm.DB, actor Actor, salon *models.Salon, name, price string, discount string, duration int) models.Service {
	t.Helper()
	service := models.Service{
		AccountID: actor.AccountID,
		SalonID:   salon.ID,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Duration:  duration,
		IsActive:  true,
	}
	if discount != "" {
		service.DiscountPercentage = decimal.NewNullDecimal(decimal.RequireFromString(discount))
	}
	require.NoError(t, db.Create(&service).Error)
	return service
}

func createProduct(t *testing.T, db *gorm.DB, actor Actor, salon *models.Salon, name, price string) models.Product {
	t.Helper()
	product := models.Product{
		AccountID: actor.AccountID,
		SalonID:   salon.ID,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		IsActive:  true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func upload(name string) ImageUpload {
	return ImageUpload{Name: name, Data: append([]byte(nil), pngHeader...)}
}

// memoryImageStore keeps images in a map so tests can see what is stored.
type memoryImageStore struct {
	mu      sync.Mutex
	files   map[string]string
	failing bool
}

func newMemoryImageStore() *memoryImageStore {
	return &memoryImageStore{files: map[string]string{}}
}

func (m *memoryImageStore) Save(_ context.Context, name string, _ []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return "", fmt.Errorf("store unavailable")
	}
	ref := uuid.NewString()
	m.files[ref] = name
	return ref, nil
}

func (m *memoryImageStore) Delete(_ context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, ref)
	return nil
}

func (m *memoryImageStore) URL(ref string) string { return "/media/" + ref }

// names returns the original file names currently stored.
func (m *memoryImageStore) names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.files))
	for _, name := range m.files {
		out = append(out, name)
	}
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
