package schedule

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/propview/viewing-scheduler/internal/audit"
	"github.com/propview/viewing-scheduler/internal/cache"
	infraRepo "github.com/propview/viewing-scheduler/internal/infra/repository"
	"github.com/propview/viewing-scheduler/internal/ident"
	"github.com/propview/viewing-scheduler/internal/models"
)

// testEnv wires the use cases against a real gorm repository over a
// throwaway sqlite file. The redis cache is disabled (empty address), so
// every read hits the store.
type testEnv struct {
	db    *gorm.DB
	repo  *infraRepo.ScheduleGormRepository
	locks *Locks
	cache *cache.Cache
	audit *audit.Dispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("schedule_uc_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := db.AutoMigrate(
		&models.House{},
		&models.AvailabilityPattern{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	return &testEnv{
		db:    db,
		repo:  infraRepo.NewScheduleGormRepository(db),
		locks: NewLocks(),
		cache: cache.New(""),
		audit: audit.NewDispatcher(audit.New(db)),
	}
}

func (e *testEnv) seedHouse(t *testing.T) []byte {
	t.Helper()
	h := models.House{HouseID: ident.New(), Name: "44 Birch Court", City: "Riverton"}
	if err := e.db.Create(&h).Error; err != nil {
		t.Fatalf("seed house: %v", err)
	}
	return h.HouseID
}

func (e *testEnv) seedRecurring(t *testing.T, houseID []byte, dow int, start, end string) {
	t.Helper()
	p := models.AvailabilityPattern{
		PatternID: ident.New(),
		HouseID:   houseID,
		Recurring: true,
		DayOfWeek: &dow,
		StartTime: start,
		EndTime:   end,
	}
	if err := e.db.Create(&p).Error; err != nil {
		t.Fatalf("seed recurring: %v", err)
	}
}

func (e *testEnv) seedOverride(t *testing.T, houseID []byte, date, start, end string) {
	t.Helper()
	p := models.AvailabilityPattern{
		PatternID:     ident.New(),
		HouseID:       houseID,
		Recurring:     false,
		AvailableDate: date,
		StartTime:     start,
		EndTime:       end,
	}
	if err := e.db.Create(&p).Error; err != nil {
		t.Fatalf("seed override: %v", err)
	}
}

func (e *testEnv) seedAppointment(t *testing.T, houseID, userID []byte, date, start string) []byte {
	t.Helper()
	st, err := time.Parse("15:04:05", start)
	if err != nil {
		t.Fatalf("bad start %q: %v", start, err)
	}
	ap := models.Appointment{
		ApptID:    ident.New(),
		HouseID:   houseID,
		UserID:    userID,
		Date:      date,
		StartTime: start,
		EndTime:   st.Add(15 * time.Minute).Format("15:04:05"),
	}
	if err := e.db.Create(&ap).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return ap.ApptID
}

func (e *testEnv) countAppointments(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(&models.Appointment{}).Count(&n).Error; err != nil {
		t.Fatalf("count appointments: %v", err)
	}
	return n
}
