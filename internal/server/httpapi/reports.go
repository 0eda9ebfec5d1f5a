package httpapi

import (
	"net/http"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/labstack/echo/v4"
)

func (s *Server) revenueReport(c echo.Context) error {
	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from == "" || to == "" {
		now := time.Now().In(s.loc)
		if to == "" {
			to = now.AddDate(0, 0, -1).Format(common.DateLayout)
		}
		if from == "" {
			from = now.AddDate(0, 0, -30).Format(common.DateLayout)
		}
	}
	rows, err := s.svc.Reports.Revenue(c.Request().Context(), salonID(c), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAll(rows, toRevenueDTO))
}

func (s *Server) dashboard(c echo.Context) error {
	d, err := s.svc.Reports.Dashboard(c.Request().Context(), salonID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardDTO(d))
}
