package repository

import (
	"context"
	"errors"
	"gorm.io/gorm"
	"psiagenda/cmd/internal/domain/entity"
)

type DefaultAppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{db: db}
}

// FindByUUID returns nil, nil when no record carries the given uuid.
func (a *DefaultAppointmentRepository) FindByUUID(ctx context.Context, uuid string) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := a.db.WithContext(ctx).Where("uuid = ?", uuid).First(&appt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (a *DefaultAppointmentRepository) FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]*entity.Appointment, error) {
	query := a.db.WithContext(ctx).Model(&entity.Appointment{})
	if filter.Crp != "" {
		query = query.Where("crp = ?", filter.Crp)
	}
	if filter.PacientID != nil {
		query = query.Where("pacient_id = ?", *filter.PacientID)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}

	appts := make([]*entity.Appointment, 0)
	err := query.Order("date asc").Order("start_time asc").Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (a *DefaultAppointmentRepository) Save(ctx context.Context, appointment *entity.Appointment) error {
	return a.db.WithContext(ctx).Create(appointment).Error
}

// UpdateFields writes the mutable subset of a record. A map is used so that
// empty strings are persisted too.
func (a *DefaultAppointmentRepository) UpdateFields(ctx context.Context, uuid string, changes *entity.AppointmentChanges) error {
	return a.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("uuid = ?", uuid).
		Updates(map[string]any{
			"date":       changes.Date,
			"start_time": changes.StartTime,
			"end_time":   changes.EndTime,
			"type":       changes.Type,
			"location":   changes.Location,
			"updated_at": changes.UpdatedAt,
		}).Error
}

func (a *DefaultAppointmentRepository) DeleteByUUID(ctx context.Context, uuid string) error {
	return a.db.WithContext(ctx).Where("uuid = ?", uuid).Delete(&entity.Appointment{}).Error
}
