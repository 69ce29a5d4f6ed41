package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"psiagenda/cmd/internal/domain/sqlite"
	"psiagenda/cmd/internal/domain/sqlite/repository"
	"psiagenda/cmd/internal/service"
	"psiagenda/cmd/internal/session"
	"psiagenda/cmd/internal/utils/validators"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResult struct {
	Code int
	Body string
}

func (r apiResult) list(t *testing.T) []service.AppointmentResponse {
	t.Helper()
	var out struct {
		Appointment []service.AppointmentResponse `json:"appointment"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.Body), &out), r.Body)
	return out.Appointment
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	apptService := service.NewAppointmentService(repository.NewAppointmentRepository(db), validators.New())
	e := echo.New()
	NewAppointmentDefault(apptService).Register(e.Group("/api"), testSecret)
	return e
}

func professionalToken(t *testing.T, crp string) string {
	t.Helper()
	tok, err := session.NewToken(jwt.MapClaims{"crp": crp, "cpfCnpj": "12345678900"}, testSecret)
	require.NoError(t, err)
	return tok
}

func patientToken(t *testing.T, patientID int64) string {
	t.Helper()
	tok, err := session.NewToken(jwt.MapClaims{"patientId": patientID, "responsibleCrp": "C1"}, testSecret)
	require.NoError(t, err)
	return tok
}

func call(e *echo.Echo, method, path, token, body string) apiResult {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return apiResult{Code: rec.Code, Body: rec.Body.String()}
}

const scenarioBody = `{"crp":"C1","pacientId":42,"date":"2024-01-10","startTime":"09:00","endTime":"09:30","type":"checkup","location":"Clinic A"}`

func TestCreateThenDeleteScenario(t *testing.T) {
	e := newServer(t)
	tok := professionalToken(t, "C1")

	created := call(e, http.MethodPost, "/api/appointment/post", tok, scenarioBody)
	require.Equal(t, http.StatusOK, created.Code, created.Body)
	records := created.list(t)
	require.Len(t, records, 1)

	rec := records[0]
	assert.NotEmpty(t, rec.UUID)
	assert.Equal(t, "C1", rec.Crp)
	assert.Equal(t, int64(42), rec.PacientID)
	assert.Equal(t, "2024-01-10T00:00:00.000Z", rec.Date)
	assert.Equal(t, "09:00", rec.StartTime)
	assert.Equal(t, "09:30", rec.EndTime)
	assert.Equal(t, "checkup", rec.Type)
	assert.Equal(t, "Clinic A", rec.Location)

	deleted := call(e, http.MethodDelete, "/api/appointment/delete/"+rec.UUID, tok, "")
	assert.Equal(t, http.StatusOK, deleted.Code)
	assert.JSONEq(t, `{"statusCode":200,"message":"RPD successfully deleted"}`, deleted.Body)

	again := call(e, http.MethodDelete, "/api/appointment/delete?uuid="+rec.UUID, tok, "")
	assert.Equal(t, http.StatusNotFound, again.Code)
	assert.JSONEq(t, `{"statusCode":404,"message":"No RPD register found"}`, again.Body)
}

func TestListScopesByCrp(t *testing.T) {
	e := newServer(t)
	c1 := professionalToken(t, "C1")
	c2 := professionalToken(t, "C2")

	require.Equal(t, http.StatusOK, call(e, http.MethodPost, "/api/appointment/post", c1, scenarioBody).Code)
	require.Equal(t, http.StatusOK, call(e, http.MethodPost, "/api/appointment/post", c1,
		`{"crp":"C1","pacientId":7,"date":"2024-01-11","startTime":"10:00","endTime":"10:30","type":"followup","location":"Clinic A"}`).Code)
	require.Equal(t, http.StatusOK, call(e, http.MethodPost, "/api/appointment/post", c2,
		`{"crp":"C2","pacientId":42,"date":"2024-01-10","startTime":"11:00","endTime":"11:30","type":"checkup","location":"Clinic B"}`).Code)

	all := call(e, http.MethodGet, "/api/appointment/get", c1, "")
	require.Equal(t, http.StatusOK, all.Code)
	assert.Len(t, all.list(t), 2)

	byDate := call(e, http.MethodGet, "/api/appointment/get?date=2024-01-10", c1, "")
	require.Equal(t, http.StatusOK, byDate.Code)
	require.Len(t, byDate.list(t), 1)
	assert.Equal(t, int64(42), byDate.list(t)[0].PacientID)

	byPacient := call(e, http.MethodGet, "/api/appointment/get?pacientId=7", c1, "")
	require.Equal(t, http.StatusOK, byPacient.Code)
	require.Len(t, byPacient.list(t), 1)
	assert.Equal(t, "followup", byPacient.list(t)[0].Type)

	none := call(e, http.MethodGet, "/api/appointment/get?date=2030-01-01", c1, "")
	require.Equal(t, http.StatusOK, none.Code)
	assert.JSONEq(t, `{"appointment":[]}`, none.Body)

	badPacient := call(e, http.MethodGet, "/api/appointment/get?pacientId=abc", c1, "")
	assert.Equal(t, http.StatusBadRequest, badPacient.Code)

	badDate := call(e, http.MethodGet, "/api/appointment/get?date=someday", c1, "")
	assert.Equal(t, http.StatusBadRequest, badDate.Code)
}

func TestMyAppointments(t *testing.T) {
	e := newServer(t)
	c1 := professionalToken(t, "C1")

	require.Equal(t, http.StatusOK, call(e, http.MethodPost, "/api/appointment/post", c1, scenarioBody).Code)
	require.Equal(t, http.StatusOK, call(e, http.MethodPost, "/api/appointment/post", c1,
		`{"crp":"C1","pacientId":7,"date":"2024-01-11","startTime":"10:00","endTime":"10:30","type":"followup","location":"Clinic A"}`).Code)

	mine := call(e, http.MethodGet, "/api/appointment/get/my-appointments", patientToken(t, 42), "")
	require.Equal(t, http.StatusOK, mine.Code, mine.Body)
	records := mine.list(t)
	require.Len(t, records, 1)
	assert.Equal(t, int64(42), records[0].PacientID)

	noPatient := call(e, http.MethodGet, "/api/appointment/get/my-appointments", c1, "")
	assert.Equal(t, http.StatusUnauthorized, noPatient.Code)
	assert.JSONEq(t, `{"statusCode":401,"message":"Invalid session"}`, noPatient.Body)
}

func TestUpdateMergesPartialPayload(t *testing.T) {
	e := newServer(t)
	tok := professionalToken(t, "C1")

	created := call(e, http.MethodPost, "/api/appointment/post", tok, scenarioBody)
	require.Equal(t, http.StatusOK, created.Code)
	id := created.list(t)[0].UUID

	updated := call(e, http.MethodPut, "/api/appointment/put", tok,
		`{"uuid":"`+id+`","startTime":"10:00","location":"Clinic B","crp":"HIJACK"}`)
	require.Equal(t, http.StatusOK, updated.Code, updated.Body)
	records := updated.list(t)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].UUID)
	assert.Equal(t, "C1", records[0].Crp)
	assert.Equal(t, "10:00", records[0].StartTime)
	assert.Equal(t, "Clinic B", records[0].Location)
	assert.Equal(t, "09:30", records[0].EndTime)
	assert.Equal(t, "checkup", records[0].Type)
	assert.Equal(t, "2024-01-10T00:00:00.000Z", records[0].Date)

	stored := call(e, http.MethodGet, "/api/appointment/get", tok, "").list(t)
	require.Len(t, stored, 1)
	assert.Equal(t, records[0], stored[0])

	missing := call(e, http.MethodPut, "/api/appointment/put", tok, `{"uuid":"does-not-exist","type":"x"}`)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.JSONEq(t, `{"statusCode":404,"message":"No RPD register found"}`, missing.Body)
	assert.Len(t, call(e, http.MethodGet, "/api/appointment/get", tok, "").list(t), 1)
}

func TestMalformedBodies(t *testing.T) {
	e := newServer(t)
	tok := professionalToken(t, "C1")

	assert.Equal(t, http.StatusBadRequest, call(e, http.MethodPost, "/api/appointment/post", tok, `{"crp":`).Code)
	assert.Equal(t, http.StatusBadRequest, call(e, http.MethodPost, "/api/appointment/post", tok, `{"crp":"C1"}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(e, http.MethodPut, "/api/appointment/put", tok, `{"type":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(e, http.MethodDelete, "/api/appointment/delete", tok, "").Code)
}

func TestRoutesRequireSession(t *testing.T) {
	e := newServer(t)
	tok := professionalToken(t, "C1")
	require.Equal(t, http.StatusOK, call(e, http.MethodPost, "/api/appointment/post", tok, scenarioBody).Code)

	requests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/appointment/get", ""},
		{http.MethodGet, "/api/appointment/get/my-appointments", ""},
		{http.MethodPost, "/api/appointment/post", scenarioBody},
		{http.MethodPut, "/api/appointment/put", `{"uuid":"x","type":"y"}`},
		{http.MethodDelete, "/api/appointment/delete/x", ""},
	}

	for _, token := range []string{"", "not-a-token"} {
		for _, r := range requests {
			res := call(e, r.method, r.path, token, r.body)
			assert.Equal(t, http.StatusUnauthorized, res.Code, "%s %s", r.method, r.path)
			assert.JSONEq(t, `{"statusCode":401,"message":"Invalid session"}`, res.Body)
		}
	}

	assert.Len(t, call(e, http.MethodGet, "/api/appointment/get", tok, "").list(t), 1,
		"rejected requests must not touch the store")
}

func TestTokenWithoutCrpIsRejectedByService(t *testing.T) {
	e := newServer(t)
	tok := patientToken(t, 42)

	for _, r := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/appointment/get", ""},
		{http.MethodPost, "/api/appointment/post", scenarioBody},
		{http.MethodPut, "/api/appointment/put", `{"uuid":"x"}`},
		{http.MethodDelete, "/api/appointment/delete/x", ""},
	} {
		res := call(e, r.method, r.path, tok, r.body)
		assert.Equal(t, http.StatusUnauthorized, res.Code, "%s %s", r.method, r.path)
	}
}
