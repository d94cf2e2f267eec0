package handlers

import (
	"net/http"

	"careerpath/models"
	"careerpath/services/scheduling"
	"careerpath/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves the counselor scheduling endpoints.
type AppointmentHandler struct {
	Service scheduling.SchedulingService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc scheduling.SchedulingService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

// GetAvailableSlotsHandler lists open slots of a counselor on ?date=YYYY-MM-DD.
func (h *AppointmentHandler) GetAvailableSlotsHandler(c *gin.Context) {
	result, err := h.Service.AvailableSlots(c.Request.Context(), c.Param("counselorId"), c.Query("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !result.WorkingDay {
		utils.JSONSuccess(c, http.StatusOK, []string{}, "Counselor is not available on this day.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result.Slots, "Available slots fetched successfully.")
}

// BookAppointmentHandler books a slot for the authenticated student.
func (h *AppointmentHandler) BookAppointmentHandler(c *gin.Context) {
	studentID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Debug("Invalid booking payload", zap.Error(err))
		utils.RespondError(c, utils.NewInvalidRequest("Counselor ID and appointment time are required."))
		return
	}

	appt, err := h.Service.Book(c.Request.Context(), scheduling.BookingRequest{
		CounselorID:     req.CounselorID,
		StudentID:       studentID,
		AppointmentTime: req.AppointmentTime,
		Mode:            req.Mode,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, h.Service.View(*appt), "Appointment booked successfully.")
}

// GetMyAppointmentsHandler lists the authenticated student's appointments.
func (h *AppointmentHandler) GetMyAppointmentsHandler(c *gin.Context) {
	studentID, ok := currentUserID(c)
	if !ok {
		return
	}
	views, err := h.Service.ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, views, "Student's appointments fetched successfully.")
}

// CancelAppointmentHandler cancels one of the authenticated student's appointments.
func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	studentID, ok := currentUserID(c)
	if !ok {
		return
	}
	appt, err := h.Service.CancelByStudent(c.Request.Context(), c.Param("appointmentId"), studentID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, h.Service.View(*appt), "Appointment cancelled successfully.")
}

// GetCounselorAppointmentsHandler lists appointments of the authenticated counselor.
func (h *AppointmentHandler) GetCounselorAppointmentsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	views, err := h.Service.ListForCounselorUser(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, views, "Counselor's appointments fetched successfully.")
}

// UpdateAppointmentStatusHandler lets a counselor set the status of their appointment.
func (h *AppointmentHandler) UpdateAppointmentStatusHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewInvalidRequest("Status is required."))
		return
	}

	appt, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("appointmentId"), userID, req.Status, req.Notes)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, h.Service.View(*appt), "Appointment status updated successfully.")
}

// GetAllCounselorsHandler lists every counselor.
func (h *AppointmentHandler) GetAllCounselorsHandler(c *gin.Context) {
	counselors, err := h.Service.ListCounselors(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, counselors, "All counselors fetched successfully.")
}

// SetAvailabilityHandler replaces the authenticated counselor's weekly windows.
func (h *AppointmentHandler) SetAvailabilityHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Debug("Invalid availability payload", zap.Error(err))
		utils.RespondError(c, utils.NewInvalidRequest("Invalid request: "+err.Error()))
		return
	}

	summary, err := h.Service.SetAvailability(c.Request.Context(), userID, req.Availability)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary, "Availability updated successfully.")
}
