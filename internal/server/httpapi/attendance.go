package httpapi

import (
	"net/http"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/services"
	"github.com/labstack/echo/v4"
)

type markAttendanceRequest struct {
	StaffID  string `json:"staffId"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

type lockRequest struct {
	Until string `json:"until"`
}

type lockResponse struct {
	LockedUntil string `json:"lockedUntil"`
}

func (s *Server) listAttendance(c echo.Context) error {
	today := time.Now().In(s.loc).Format(common.DateLayout)
	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from == "" {
		from = today
	}
	if to == "" {
		to = from
	}
	list, err := s.svc.Attendance.List(c.Request().Context(), salonID(c), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAll(list, toAttendanceDTO))
}

func (s *Server) markAttendance(c echo.Context) error {
	var req markAttendanceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	a, err := s.svc.Attendance.Mark(c.Request().Context(), salonID(c), services.AttendanceInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAttendanceDTO(a))
}

func (s *Server) attendanceSummary(c echo.Context) error {
	month := c.QueryParam("month")
	if month == "" {
		month = time.Now().In(s.loc).Format("2006-01")
	}
	list, err := s.svc.Attendance.MonthlySummary(c.Request().Context(), salonID(c), month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAll(list, func(a *models.AttendanceSummary) attendanceSummaryDTO {
		return attendanceSummaryDTO(*a)
	}))
}

func (s *Server) lockAttendance(c echo.Context) error {
	var req lockRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	until, err := s.svc.Attendance.Lock(ctx, salonID(c), req.Until)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "attendance locked", "salon_id", salonID(c), "until", until.Format(common.DateLayout))
	return c.JSON(http.StatusOK, lockResponse{LockedUntil: until.Format(common.DateLayout)})
}
