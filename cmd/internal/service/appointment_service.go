package service

import (
	"context"
	"net/http"
	"psiagenda/cmd/internal/domain/entity"
	"psiagenda/cmd/internal/utils"
	"psiagenda/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const deletedMessage = "RPD successfully deleted"

type AppointmentRepository interface {
	FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]*entity.Appointment, error)
	FindByUUID(ctx context.Context, uuid string) (*entity.Appointment, error)
	Save(ctx context.Context, appointment *entity.Appointment) error
	UpdateFields(ctx context.Context, uuid string, changes *entity.AppointmentChanges) error
	DeleteByUUID(ctx context.Context, uuid string) error
}

type AppointmentQuery struct {
	Date      string
	PacientID *int64
}

type PostAppointmentRequest struct {
	Crp       string `json:"crp" validate:"required,max=64"`
	PacientID int64  `json:"pacientId" validate:"required"`
	Date      string `json:"date" validate:"required,isodate"`
	StartTime string `json:"startTime" validate:"required,clocktime"`
	EndTime   string `json:"endTime" validate:"required,clocktime"`
	Type      string `json:"type" validate:"required,max=128"`
	Location  string `json:"location" validate:"required,max=256"`
}

// PutAppointmentRequest is a partial update; nil fields keep their stored value.
type PutAppointmentRequest struct {
	UUID      string  `json:"uuid" validate:"required"`
	Date      *string `json:"date" validate:"omitempty,isodate"`
	StartTime *string `json:"startTime" validate:"omitempty,clocktime"`
	EndTime   *string `json:"endTime" validate:"omitempty,clocktime"`
	Type      *string `json:"type" validate:"omitempty,max=128"`
	Location  *string `json:"location" validate:"omitempty,max=256"`
}

type AppointmentResponse struct {
	UUID      string `json:"uuid"`
	Crp       string `json:"crp"`
	PacientID int64  `json:"pacientId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Type      string `json:"type"`
	Location  string `json:"location"`
}

type AppointmentListResponse struct {
	Appointment []*AppointmentResponse `json:"appointment"`
}

type DeleteAppointmentResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type DefaultAppointmentService struct {
	AppointmentRepo AppointmentRepository
	Validate        *validator.Validate
}

func NewAppointmentService(apptRepo AppointmentRepository, validate *validator.Validate) *DefaultAppointmentService {
	return &DefaultAppointmentService{AppointmentRepo: apptRepo, Validate: validate}
}

// GetAppointments lists the records owned by crp, optionally narrowed by
// date and patient.
func (a *DefaultAppointmentService) GetAppointments(ctx context.Context, crp string, query *AppointmentQuery) (*AppointmentListResponse, apierror.ErrorResponse) {
	if apierr := validateAuth(crp); apierr != nil {
		return nil, apierr
	}

	filter := entity.AppointmentFilter{Crp: crp}
	if query != nil {
		if query.Date != "" {
			date, err := utils.ToISODate(query.Date)
			if err != nil {
				return nil, apierror.InvalidDateError
			}
			filter.Date = date
		}
		filter.PacientID = query.PacientID
	}

	return a.list(ctx, filter)
}

// GetMyAppointments lists the records of the patient behind the session.
func (a *DefaultAppointmentService) GetMyAppointments(ctx context.Context, patientID *int64) (*AppointmentListResponse, apierror.ErrorResponse) {
	if patientID == nil {
		return nil, apierror.InvalidSessionError
	}
	return a.list(ctx, entity.AppointmentFilter{PacientID: patientID})
}

func (a *DefaultAppointmentService) CreateAppointment(ctx context.Context, crp string, req *PostAppointmentRequest) (*AppointmentListResponse, apierror.ErrorResponse) {
	if apierr := validateAuth(crp); apierr != nil {
		return nil, apierr
	}

	utils.Sanitize(req)
	if valerr := a.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	date, err := utils.ToISODate(req.Date)
	if err != nil {
		return nil, apierror.InvalidDateError
	}

	now := utils.NowUTC()
	appt := &entity.Appointment{
		UUID:      uuid.New().String(),
		Crp:       req.Crp,
		PacientID: req.PacientID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Type:      req.Type,
		Location:  req.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = a.AppointmentRepo.Save(ctx, appt); err != nil {
		log.Errorf("failed to save appointment: %v", err)
		return nil, apierror.FromUnhandled(err)
	}
	return single(appt), nil
}

// UpdateAppointment merges req over the stored record. Only date, times,
// type and location are written; uuid and crp never change.
func (a *DefaultAppointmentService) UpdateAppointment(ctx context.Context, crp string, req *PutAppointmentRequest) (*AppointmentListResponse, apierror.ErrorResponse) {
	if apierr := validateAuth(crp); apierr != nil {
		return nil, apierr
	}

	utils.Sanitize(req)
	if valerr := a.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	old, apierr := a.fetchExisting(ctx, req.UUID)
	if apierr != nil {
		return nil, apierr
	}

	merged, apierr := merge(old, req)
	if apierr != nil {
		return nil, apierr
	}
	merged.UpdatedAt = utils.NowUTC()

	changes := &entity.AppointmentChanges{
		Date:      merged.Date,
		StartTime: merged.StartTime,
		EndTime:   merged.EndTime,
		Type:      merged.Type,
		Location:  merged.Location,
		UpdatedAt: merged.UpdatedAt,
	}

	if err := a.AppointmentRepo.UpdateFields(ctx, req.UUID, changes); err != nil {
		log.Errorf("failed to update appointment %s: %v", req.UUID, err)
		return nil, apierror.FromUnhandled(err)
	}
	return single(merged), nil
}

func (a *DefaultAppointmentService) DeleteAppointment(ctx context.Context, crp, apptUUID string) (*DeleteAppointmentResponse, apierror.ErrorResponse) {
	if apierr := validateAuth(crp); apierr != nil {
		return nil, apierr
	}

	if _, apierr := a.fetchExisting(ctx, apptUUID); apierr != nil {
		return nil, apierr
	}

	if err := a.AppointmentRepo.DeleteByUUID(ctx, apptUUID); err != nil {
		log.Errorf("failed to delete appointment %s: %v", apptUUID, err)
		return nil, apierror.FromUnhandled(err)
	}
	return &DeleteAppointmentResponse{StatusCode: http.StatusOK, Message: deletedMessage}, nil
}

func (a *DefaultAppointmentService) list(ctx context.Context, filter entity.AppointmentFilter) (*AppointmentListResponse, apierror.ErrorResponse) {
	appts, err := a.AppointmentRepo.FindAll(ctx, filter)
	if err != nil {
		log.Errorf("failed to find appointments with filter %+v: %v", filter, err)
		return nil, apierror.FromUnhandled(err)
	}

	resp := &AppointmentListResponse{Appointment: make([]*AppointmentResponse, len(appts))}
	for i, appt := range appts {
		resp.Appointment[i] = toAppointmentResponse(appt)
	}
	return resp, nil
}

func (a *DefaultAppointmentService) fetchExisting(ctx context.Context, apptUUID string) (*entity.Appointment, apierror.ErrorResponse) {
	appt, err := a.AppointmentRepo.FindByUUID(ctx, apptUUID)
	if err != nil {
		log.Errorf("failed to fetch appointment by uuid %s: %v", apptUUID, err)
		return nil, apierror.FromUnhandled(err)
	}
	if appt == nil {
		return nil, apierror.NotFoundError
	}
	return appt, nil
}

func merge(old *entity.Appointment, req *PutAppointmentRequest) (*entity.Appointment, apierror.ErrorResponse) {
	merged := *old
	if req.Date != nil {
		date, err := utils.ToISODate(*req.Date)
		if err != nil {
			return nil, apierror.InvalidDateError
		}
		merged.Date = date
	}
	if req.StartTime != nil {
		merged.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		merged.EndTime = *req.EndTime
	}
	if req.Type != nil {
		merged.Type = *req.Type
	}
	if req.Location != nil {
		merged.Location = *req.Location
	}
	return &merged, nil
}

func validateAuth(crp string) apierror.ErrorResponse {
	if crp == "" {
		return apierror.InvalidSessionError
	}
	return nil
}

func single(appt *entity.Appointment) *AppointmentListResponse {
	return &AppointmentListResponse{Appointment: []*AppointmentResponse{toAppointmentResponse(appt)}}
}

func toAppointmentResponse(appt *entity.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		UUID:      appt.UUID,
		Crp:       appt.Crp,
		PacientID: appt.PacientID,
		Date:      appt.Date,
		StartTime: appt.StartTime,
		EndTime:   appt.EndTime,
		Type:      appt.Type,
		Location:  appt.Location,
	}
}
