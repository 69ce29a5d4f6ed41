package service

import (
	"context"
	"errors"
	"psiagenda/cmd/internal/domain/entity"
	"sync/atomic"
)

var _ AppointmentRepository = (*MockAppointmentRepository)(nil)

// MockAppointmentRepository is a function-field mock. Unset functions fail
// loudly except Save, UpdateFields and DeleteByUUID which succeed.
type MockAppointmentRepository struct {
	FindAllFunc      func(ctx context.Context, filter entity.AppointmentFilter) ([]*entity.Appointment, error)
	FindByUUIDFunc   func(ctx context.Context, uuid string) (*entity.Appointment, error)
	SaveFunc         func(ctx context.Context, appointment *entity.Appointment) error
	UpdateFieldsFunc func(ctx context.Context, uuid string, changes *entity.AppointmentChanges) error
	DeleteByUUIDFunc func(ctx context.Context, uuid string) error

	calls int32
}

func (m *MockAppointmentRepository) Calls() int32 {
	return atomic.LoadInt32(&m.calls)
}

func (m *MockAppointmentRepository) FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]*entity.Appointment, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, filter)
	}
	return nil, errors.New("FindAllFunc not implemented in mock")
}

func (m *MockAppointmentRepository) FindByUUID(ctx context.Context, uuid string) (*entity.Appointment, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.FindByUUIDFunc != nil {
		return m.FindByUUIDFunc(ctx, uuid)
	}
	return nil, errors.New("FindByUUIDFunc not implemented in mock")
}

func (m *MockAppointmentRepository) Save(ctx context.Context, appointment *entity.Appointment) error {
	atomic.AddInt32(&m.calls, 1)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, appointment)
	}
	return nil
}

func (m *MockAppointmentRepository) UpdateFields(ctx context.Context, uuid string, changes *entity.AppointmentChanges) error {
	atomic.AddInt32(&m.calls, 1)
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, uuid, changes)
	}
	return nil
}

func (m *MockAppointmentRepository) DeleteByUUID(ctx context.Context, uuid string) error {
	atomic.AddInt32(&m.calls, 1)
	if m.DeleteByUUIDFunc != nil {
		return m.DeleteByUUIDFunc(ctx, uuid)
	}
	return nil
}
