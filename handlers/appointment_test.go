package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"careerpath/middleware"
	"careerpath/models"
	"careerpath/services/scheduling"
	"careerpath/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScheduling struct {
	scheduling.SchedulingService
	slots     *scheduling.DaySlots
	booked    *models.Appointment
	err       error
	lastBook  scheduling.BookingRequest
	lastState string
}

func (s *stubScheduling) AvailableSlots(_ context.Context, _, _ string) (*scheduling.DaySlots, error) {
	return s.slots, s.err
}

func (s *stubScheduling) Book(_ context.Context, req scheduling.BookingRequest) (*models.Appointment, error) {
	s.lastBook = req
	return s.booked, s.err
}

func (s *stubScheduling) CancelByStudent(_ context.Context, _, _ string) (*models.Appointment, error) {
	return s.booked, s.err
}

func (s *stubScheduling) UpdateStatus(_ context.Context, _, _, status, _ string) (*models.Appointment, error) {
	s.lastState = status
	return s.booked, s.err
}

func (s *stubScheduling) View(a models.Appointment) models.AppointmentView {
	return models.AppointmentView{ID: a.ID, Status: a.Status}
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newAppointmentRouter(svc scheduling.SchedulingService, userID string) *gin.Engine {
	h := NewAppointmentHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserID, userID)
		}
		c.Next()
	})
	r.GET("/slots/:counselorId", h.GetAvailableSlotsHandler)
	r.POST("/book", h.BookAppointmentHandler)
	r.PATCH("/cancel/:appointmentId", h.CancelAppointmentHandler)
	r.PATCH("/status/:appointmentId", h.UpdateAppointmentStatusHandler)
	return r
}

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetAvailableSlotsHandler(t *testing.T) {
	svc := &stubScheduling{slots: &scheduling.DaySlots{Slots: []string{"2025-06-02T09:00", "2025-06-02T10:00"}, WorkingDay: true}}
	w := perform(newAppointmentRouter(svc, "s1"), http.MethodGet, "/slots/c1?date=2025-06-02", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(200), body["statusCode"])
	assert.Equal(t, "Available slots fetched successfully.", body["message"])
	assert.Equal(t, []interface{}{"2025-06-02T09:00", "2025-06-02T10:00"}, body["data"])
}

func TestGetAvailableSlotsHandler_NonWorkingDay(t *testing.T) {
	svc := &stubScheduling{slots: &scheduling.DaySlots{Slots: []string{}}}
	w := perform(newAppointmentRouter(svc, "s1"), http.MethodGet, "/slots/c1?date=2025-06-03", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Counselor is not available on this day.", body["message"])
	assert.Equal(t, []interface{}{}, body["data"])
}

func TestGetAvailableSlotsHandler_ErrorEnvelope(t *testing.T) {
	svc := &stubScheduling{err: utils.NewNotFound("Counselor not found.")}
	w := perform(newAppointmentRouter(svc, "s1"), http.MethodGet, "/slots/nope?date=2025-06-02", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(404), body["statusCode"])
	assert.Equal(t, "Counselor not found.", body["message"])
	assert.NotContains(t, body, "data")
}

func TestBookAppointmentHandler(t *testing.T) {
	svc := &stubScheduling{booked: &models.Appointment{ID: "a1", Status: models.StatusScheduled}}
	w := perform(newAppointmentRouter(svc, "s1"), http.MethodPost, "/book",
		`{"counselorId":"c1","appointmentTime":"2025-06-02T09:00","mode":"Online"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(201), body["statusCode"])
	assert.Equal(t, "Appointment booked successfully.", body["message"])
	assert.Equal(t, scheduling.BookingRequest{CounselorID: "c1", StudentID: "s1", AppointmentTime: "2025-06-02T09:00", Mode: "Online"}, svc.lastBook)
}

func TestBookAppointmentHandler_MapsErrorKinds(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{utils.NewInvalidRequest("You cannot book an appointment in the past."), http.StatusBadRequest},
		{utils.NewConflict("This appointment slot is no longer available."), http.StatusConflict},
		{utils.NewServerError("Failed to book appointment.", assert.AnError), http.StatusInternalServerError},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		svc := &stubScheduling{err: tt.err}
		w := perform(newAppointmentRouter(svc, "s1"), http.MethodPost, "/book", `{"counselorId":"c1","appointmentTime":"2025-06-02T09:00"}`)
		assert.Equal(t, tt.status, w.Code, tt.err.Error())
	}
}

func TestBookAppointmentHandler_RequiresAuthenticatedUser(t *testing.T) {
	w := perform(newAppointmentRouter(&stubScheduling{}, ""), http.MethodPost, "/book", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookAppointmentHandler_MalformedJSON(t *testing.T) {
	w := perform(newAppointmentRouter(&stubScheduling{}, "s1"), http.MethodPost, "/book", `{"counselorId":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Counselor ID and appointment time are required.", decode(t, w)["message"])
}

func TestCancelAppointmentHandler_Forbidden(t *testing.T) {
	svc := &stubScheduling{err: utils.NewForbidden("You are not authorized to cancel this appointment.")}
	w := perform(newAppointmentRouter(svc, "s2"), http.MethodPatch, "/cancel/a1", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateAppointmentStatusHandler(t *testing.T) {
	svc := &stubScheduling{booked: &models.Appointment{ID: "a1", Status: "Completed"}}
	w := perform(newAppointmentRouter(svc, "u-c1"), http.MethodPatch, "/status/a1", `{"status":"Completed","notes":"ok"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Completed", svc.lastState)
	assert.Equal(t, "Appointment status updated successfully.", decode(t, w)["message"])
}
