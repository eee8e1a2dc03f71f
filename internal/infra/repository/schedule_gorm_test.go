package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/propview/viewing-scheduler/internal/domain/schedule"
	"github.com/propview/viewing-scheduler/internal/httperr"
	"github.com/propview/viewing-scheduler/internal/ident"
	"github.com/propview/viewing-scheduler/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("schedule_repo_test_%d.db", time.Now().UnixNano()))
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
	return db
}

func seedHouse(t *testing.T, db *gorm.DB) []byte {
	t.Helper()
	h := models.House{HouseID: ident.New(), Name: "12 Oak Lane", City: "Springfield"}
	if err := db.Create(&h).Error; err != nil {
		t.Fatalf("seed house: %v", err)
	}
	return h.HouseID
}

func seedAppointment(t *testing.T, db *gorm.DB, houseID []byte, date, start, end string) *models.Appointment {
	t.Helper()
	ap := models.Appointment{
		ApptID:    ident.New(),
		HouseID:   houseID,
		UserID:    ident.New(),
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	if err := db.Create(&ap).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return &ap
}

func TestHouseExists(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	houseID := seedHouse(t, db)

	ok, err := repo.HouseExists(ctx, houseID)
	if err != nil || !ok {
		t.Fatalf("expected house to exist, ok=%v err=%v", ok, err)
	}

	ok, err = repo.HouseExists(ctx, ident.New())
	if err != nil || ok {
		t.Fatalf("expected house to be missing, ok=%v err=%v", ok, err)
	}
}

func TestGetRecurringAndOverrideReturnNilWhenAbsent(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()
	houseID := seedHouse(t, db)

	rec, err := repo.GetRecurring(ctx, houseID, 1)
	if err != nil || rec != nil {
		t.Fatalf("expected (nil, nil), got %v %v", rec, err)
	}
	ov, err := repo.GetOverride(ctx, houseID, "2025-06-02")
	if err != nil || ov != nil {
		t.Fatalf("expected (nil, nil), got %v %v", ov, err)
	}
}

func TestPatternCreateGetUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()
	houseID := seedHouse(t, db)

	dow := 1
	p := &models.AvailabilityPattern{
		PatternID: ident.New(),
		HouseID:   houseID,
		Recurring: true,
		DayOfWeek: &dow,
		StartTime: "09:00:00",
		EndTime:   "17:00:00",
	}
	if err := repo.CreatePattern(ctx, p); err != nil {
		t.Fatalf("CreatePattern: %v", err)
	}

	got, err := repo.GetRecurring(ctx, houseID, 1)
	if err != nil || got == nil {
		t.Fatalf("GetRecurring: %v %v", got, err)
	}
	if got.StartTime != "09:00:00" || got.EndTime != "17:00:00" {
		t.Fatalf("unexpected times: %+v", got)
	}

	if err := repo.UpdatePatternTimes(ctx, p.PatternID, "10:00:00", "15:00:00"); err != nil {
		t.Fatalf("UpdatePatternTimes: %v", err)
	}
	got, err = repo.GetRecurring(ctx, houseID, 1)
	if err != nil || got == nil {
		t.Fatalf("GetRecurring after update: %v %v", got, err)
	}
	if got.StartTime != "10:00:00" || got.EndTime != "15:00:00" {
		t.Fatalf("update not applied: %+v", got)
	}

	// Still one row after the in-place update.
	var count int64
	db.Model(&models.AvailabilityPattern{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 pattern row, got %d", count)
	}
}

func TestOverrideIsKeyedByDate(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()
	houseID := seedHouse(t, db)

	ov := &models.AvailabilityPattern{
		PatternID:     ident.New(),
		HouseID:       houseID,
		Recurring:     false,
		AvailableDate: "2025-06-02",
		StartTime:     "13:00:00",
		EndTime:       "14:00:00",
	}
	if err := repo.CreatePattern(ctx, ov); err != nil {
		t.Fatalf("CreatePattern: %v", err)
	}

	got, err := repo.GetOverride(ctx, houseID, "2025-06-02")
	if err != nil || got == nil {
		t.Fatalf("GetOverride: %v %v", got, err)
	}
	if got, _ := repo.GetOverride(ctx, houseID, "2025-06-03"); got != nil {
		t.Fatalf("override leaked onto another date: %+v", got)
	}
	// An override never answers a recurring lookup.
	if got, _ := repo.GetRecurring(ctx, houseID, 1); got != nil {
		t.Fatalf("override answered recurring lookup: %+v", got)
	}
}

func TestListAppointmentsOutside(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()
	houseID := seedHouse(t, db)

	early := seedAppointment(t, db, houseID, "2025-06-02", "09:00:00", "09:15:00")
	inside := seedAppointment(t, db, houseID, "2025-06-02", "11:00:00", "11:15:00")
	late := seedAppointment(t, db, houseID, "2025-06-09", "16:00:00", "16:15:00")
	// Another house is never touched.
	otherHouse := seedHouse(t, db)
	seedAppointment(t, db, otherHouse, "2025-06-02", "08:00:00", "08:15:00")

	out, err := repo.ListAppointmentsOutside(ctx, houseID, domain.Window{
		Start: "10:00:00",
		End:   "15:00:00",
	})
	if err != nil {
		t.Fatalf("ListAppointmentsOutside: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 appointments outside window, got %d", len(out))
	}
	if ident.String(out[0].ApptID) != ident.String(early.ApptID) ||
		ident.String(out[1].ApptID) != ident.String(late.ApptID) {
		t.Fatalf("wrong appointments selected: %v", out)
	}
	_ = inside
}

func TestCountOverlappingSpansHousesAndDates(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	houseA := seedHouse(t, db)
	seedAppointment(t, db, houseA, "2025-06-02", "14:00:00", "14:15:00")

	// Overlapping time of day counts regardless of house or date.
	n, err := repo.CountOverlapping(ctx, "14:10:00", "14:25:00")
	if err != nil {
		t.Fatalf("CountOverlapping: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 overlap, got %d", n)
	}

	// Back-to-back slots do not overlap.
	n, err = repo.CountOverlapping(ctx, "14:15:00", "14:30:00")
	if err != nil {
		t.Fatalf("CountOverlapping: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 overlaps, got %d", n)
	}
}

func TestAtomicRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()
	houseID := seedHouse(t, db)

	boom := errors.New("boom")
	err := repo.Atomic(ctx, func(tx domain.Repository) error {
		ap := &models.Appointment{
			ApptID:    ident.New(),
			HouseID:   houseID,
			UserID:    ident.New(),
			Date:      "2025-06-02",
			StartTime: "09:00:00",
			EndTime:   "09:15:00",
		}
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var count int64
	db.Model(&models.Appointment{}).Count(&count)
	if count != 0 {
		t.Fatalf("write survived a rolled-back transaction: %d rows", count)
	}
}

func TestExpiredContextSurfacesAsTimeout(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduleGormRepository(db)
	houseID := seedHouse(t, db)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := repo.HouseExists(ctx, houseID)
	if err == nil {
		t.Fatal("expected an error from an expired context")
	}
	// Deadline expiry is a timeout, never not_found or internal.
	if kind := httperr.KindOf(err); kind != httperr.KindTimeout {
		t.Fatalf("kind = %v, want %v (err %v)", kind, httperr.KindTimeout, err)
	}
	if !httperr.IsBusiness(err, "store_timeout") {
		t.Fatalf("expected store_timeout, got %v", err)
	}

	_, err = repo.GetRecurring(ctx, houseID, 1)
	if httperr.KindOf(err) != httperr.KindTimeout {
		t.Fatalf("GetRecurring kind = %v, want timeout", httperr.KindOf(err))
	}
}

func TestAppointmentCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()
	houseID := seedHouse(t, db)

	ap := seedAppointment(t, db, houseID, "2025-06-02", "09:00:00", "09:15:00")

	got, err := repo.GetAppointment(ctx, ap.ApptID)
	if err != nil || got == nil {
		t.Fatalf("GetAppointment: %v %v", got, err)
	}

	if err := repo.DeleteAppointment(ctx, ap.ApptID); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}
	got, err = repo.GetAppointment(ctx, ap.ApptID)
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil) after delete, got %v %v", got, err)
	}
}
