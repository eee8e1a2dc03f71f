package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/propview/viewing-scheduler/internal/domain/schedule"
	"github.com/propview/viewing-scheduler/internal/httperr"
	"github.com/propview/viewing-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// storeErr normalizes driver errors: deadline expiry and cancellation become
// timeout-kinded business errors so handlers never map them to 500/404.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return httperr.ErrBusiness(httperr.KindTimeout, "store_timeout")
	}
	return err
}

// --------------------------------------------------
// House
// --------------------------------------------------

func (r *ScheduleGormRepository) HouseExists(
	ctx context.Context,
	houseID []byte,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.House{}).
		Where("house_id = ?", houseID).
		Count(&count).Error; err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

// --------------------------------------------------
// Availability patterns
// --------------------------------------------------

func (r *ScheduleGormRepository) GetRecurring(
	ctx context.Context,
	houseID []byte,
	weekday int,
) (*models.AvailabilityPattern, error) {

	var p models.AvailabilityPattern
	err := r.db.WithContext(ctx).
		Where("house_id = ? AND recurring = ? AND day_of_week = ?", houseID, true, weekday).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &p, nil
}

func (r *ScheduleGormRepository) GetOverride(
	ctx context.Context,
	houseID []byte,
	date string,
) (*models.AvailabilityPattern, error) {

	var p models.AvailabilityPattern
	err := r.db.WithContext(ctx).
		Where("house_id = ? AND recurring = ? AND available_date = ?", houseID, false, date).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &p, nil
}

func (r *ScheduleGormRepository) CreatePattern(
	ctx context.Context,
	p *models.AvailabilityPattern,
) error {
	return storeErr(r.db.WithContext(ctx).Create(p).Error)
}

func (r *ScheduleGormRepository) UpdatePatternTimes(
	ctx context.Context,
	patternID []byte,
	start string,
	end string,
) error {
	return storeErr(r.db.WithContext(ctx).
		Model(&models.AvailabilityPattern{}).
		Where("pattern_id = ?", patternID).
		Updates(map[string]any{
			"start_time": start,
			"end_time":   end,
		}).Error)
}

func (r *ScheduleGormRepository) DeletePattern(
	ctx context.Context,
	patternID []byte,
) error {
	return storeErr(r.db.WithContext(ctx).
		Where("pattern_id = ?", patternID).
		Delete(&models.AvailabilityPattern{}).Error)
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return storeErr(r.db.WithContext(ctx).Create(ap).Error)
}

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	apptID []byte,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where("appt_id = ?", apptID).
		First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &ap, nil
}

func (r *ScheduleGormRepository) DeleteAppointment(
	ctx context.Context,
	apptID []byte,
) error {
	return storeErr(r.db.WithContext(ctx).
		Where("appt_id = ?", apptID).
		Delete(&models.Appointment{}).Error)
}

func (r *ScheduleGormRepository) ListAppointmentsByUser(
	ctx context.Context,
	userID []byte,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, storeErr(err)
	}
	return apps, nil
}

func (r *ScheduleGormRepository) ListAppointmentsByHouse(
	ctx context.Context,
	houseID []byte,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("house_id = ?", houseID).
		Order("date ASC, start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, storeErr(err)
	}
	return apps, nil
}

func (r *ScheduleGormRepository) ListAppointmentsForDates(
	ctx context.Context,
	houseID []byte,
	from string,
	to string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("house_id = ? AND date >= ? AND date < ?", houseID, from, to).
		Order("date ASC, start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, storeErr(err)
	}
	return apps, nil
}

func (r *ScheduleGormRepository) ListAppointmentsOutside(
	ctx context.Context,
	houseID []byte,
	w domain.Window,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"house_id = ? AND (start_time < ? OR end_time > ?)",
			houseID, w.Start, w.End,
		).
		Order("date ASC, start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, storeErr(err)
	}
	return apps, nil
}

func (r *ScheduleGormRepository) CountOverlapping(
	ctx context.Context,
	start string,
	end string,
) (int64, error) {

	// Time-of-day overlap across every house and date. Runs inside the
	// booking transaction; cross-request serialization is the use-case
	// layer's job.
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *ScheduleGormRepository) Atomic(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return storeErr(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewScheduleGormRepository(tx))
	}))
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
