package routes

import (
	"context"
	"net/http"
	"psiagenda/cmd/internal/service"
	"psiagenda/cmd/internal/session"
	"psiagenda/cmd/internal/utils/apierror"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

type AppointmentService interface {
	GetAppointments(ctx context.Context, crp string, query *service.AppointmentQuery) (*service.AppointmentListResponse, apierror.ErrorResponse)
	GetMyAppointments(ctx context.Context, patientID *int64) (*service.AppointmentListResponse, apierror.ErrorResponse)
	CreateAppointment(ctx context.Context, crp string, req *service.PostAppointmentRequest) (*service.AppointmentListResponse, apierror.ErrorResponse)
	UpdateAppointment(ctx context.Context, crp string, req *service.PutAppointmentRequest) (*service.AppointmentListResponse, apierror.ErrorResponse)
	DeleteAppointment(ctx context.Context, crp, uuid string) (*service.DeleteAppointmentResponse, apierror.ErrorResponse)
}

type DefaultAppointmentRoute struct {
	AppointmentService AppointmentService
}

func NewAppointmentDefault(apptService AppointmentService) *DefaultAppointmentRoute {
	return &DefaultAppointmentRoute{AppointmentService: apptService}
}

// Register mounts the appointment routes on g. Every one of them sits behind
// the session middleware.
func (a *DefaultAppointmentRoute) Register(g *echo.Group, secret string) {
	appt := g.Group("/appointment", SessionMiddleware(secret))
	appt.GET("/get", a.GetAppointments)
	appt.GET("/get/my-appointments", a.GetMyAppointments)
	appt.POST("/post", a.CreateAppointment)
	appt.PUT("/put", a.UpdateAppointment)
	appt.DELETE("/delete", a.DeleteAppointment)
	appt.DELETE("/delete/:uuid", a.DeleteAppointment)
}

func (a *DefaultAppointmentRoute) GetAppointments(c echo.Context) error {
	ctx := c.Request().Context()
	claims := session.ClaimsFrom(ctx)

	query := &service.AppointmentQuery{Date: strings.TrimSpace(c.QueryParam("date"))}
	if raw := strings.TrimSpace(c.QueryParam("pacientId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apierr := apierror.NewInvalidParamTypeError("pacientId", "int64")
			return c.JSON(apierr.Code(), apierr)
		}
		query.PacientID = &id
	}

	resp, apierr := a.AppointmentService.GetAppointments(ctx, claims.Crp, query)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *DefaultAppointmentRoute) GetMyAppointments(c echo.Context) error {
	ctx := c.Request().Context()
	claims := session.ClaimsFrom(ctx)

	resp, apierr := a.AppointmentService.GetMyAppointments(ctx, claims.PatientID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *DefaultAppointmentRoute) CreateAppointment(c echo.Context) error {
	var req service.PostAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	ctx := c.Request().Context()
	resp, apierr := a.AppointmentService.CreateAppointment(ctx, session.ClaimsFrom(ctx).Crp, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *DefaultAppointmentRoute) UpdateAppointment(c echo.Context) error {
	var req service.PutAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	ctx := c.Request().Context()
	resp, apierr := a.AppointmentService.UpdateAppointment(ctx, session.ClaimsFrom(ctx).Crp, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *DefaultAppointmentRoute) DeleteAppointment(c echo.Context) error {
	uuid := strings.TrimSpace(c.Param("uuid"))
	if uuid == "" {
		uuid = strings.TrimSpace(c.QueryParam("uuid"))
	}
	if uuid == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("uuid"))
	}

	ctx := c.Request().Context()
	resp, apierr := a.AppointmentService.DeleteAppointment(ctx, session.ClaimsFrom(ctx).Crp, uuid)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
