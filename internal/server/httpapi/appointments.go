package httpapi

import (
	"net/http"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/services"
	"github.com/labstack/echo/v4"
)

type appointmentRequest struct {
	CustomerID string `json:"customerId"`
	StaffID    string `json:"staffId"`
	ServiceID  string `json:"serviceId"`
	StartsAt   string `json:"startsAt"`
	Notes      string `json:"notes"`
}

type rescheduleRequest struct {
	StartsAt string `json:"startsAt"`
}

type statusRequest struct {
	Status string `json:"status"`
}

var errBadStartsAt = echo.NewHTTPError(http.StatusBadRequest, "startsAt must be an RFC 3339 timestamp or YYYY-MM-DDTHH:MM")

func (s *Server) listAppointments(c echo.Context) error {
	from, to, err := s.timeRange(c)
	if err != nil {
		return err
	}
	list, err := s.svc.Appointments.List(c.Request().Context(), salonID(c), from, to, c.QueryParam("staffId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAll(list, s.appointmentDTO))
}

func (s *Server) createAppointment(c echo.Context) error {
	var req appointmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	startsAt, ok := parseInstant(req.StartsAt, s.loc)
	if !ok {
		return errBadStartsAt
	}
	a, err := s.svc.Appointments.Create(c.Request().Context(), salonID(c), services.AppointmentInput{
		CustomerID: req.CustomerID,
		StaffID:    req.StaffID,
		ServiceID:  req.ServiceID,
		StartsAt:   startsAt,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s.appointmentDTO(a))
}

func (s *Server) getAppointment(c echo.Context) error {
	a, err := s.svc.Appointments.Get(c.Request().Context(), salonID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.appointmentDTO(a))
}

func (s *Server) rescheduleAppointment(c echo.Context) error {
	var req rescheduleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	startsAt, ok := parseInstant(req.StartsAt, s.loc)
	if !ok {
		return errBadStartsAt
	}
	a, err := s.svc.Appointments.Reschedule(c.Request().Context(), salonID(c), c.Param("id"), startsAt)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.appointmentDTO(a))
}

func (s *Server) setAppointmentStatus(c echo.Context) error {
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	a, err := s.svc.Appointments.SetStatus(c.Request().Context(), salonID(c), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.appointmentDTO(a))
}

func (s *Server) appointmentDTO(a *models.Appointment) appointmentDTO {
	return toAppointmentDTO(a, s.loc)
}
