package httpapi

import (
	"net/http"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type customerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

type staffRequest struct {
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Role           string          `json:"role"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
	Active         *bool           `json:"active"`
}

func (r staffRequest) input() services.StaffInput {
	return services.StaffInput{
		Name:           r.Name,
		Phone:          r.Phone,
		Role:           r.Role,
		CommissionRate: r.CommissionRate,
		Active:         r.Active == nil || *r.Active,
	}
}

type serviceRequest struct {
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"durationMinutes"`
	Active          *bool           `json:"active"`
}

func (r serviceRequest) input() services.ServiceInput {
	return services.ServiceInput{
		Name:            r.Name,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		Active:          r.Active == nil || *r.Active,
	}
}

// customers

func (s *Server) listCustomers(c echo.Context) error {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return err
	}
	list, err := s.svc.Customers.List(c.Request().Context(), salonID(c), models.ListFilter{
		Query:  c.QueryParam("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAll(list, toCustomerDTO))
}

func (s *Server) createCustomer(c echo.Context) error {
	var req customerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cust, err := s.svc.Customers.Create(c.Request().Context(), salonID(c), services.CustomerInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCustomerDTO(cust))
}

func (s *Server) getCustomer(c echo.Context) error {
	cust, err := s.svc.Customers.Get(c.Request().Context(), salonID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerDTO(cust))
}

func (s *Server) updateCustomer(c echo.Context) error {
	var req customerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cust, err := s.svc.Customers.Update(c.Request().Context(), salonID(c), c.Param("id"), services.CustomerInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerDTO(cust))
}

func (s *Server) deleteCustomer(c echo.Context) error {
	if err := s.svc.Customers.Delete(c.Request().Context(), salonID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// staff

func (s *Server) listStaff(c echo.Context) error {
	active, err := queryBool(c, "active")
	if err != nil {
		return err
	}
	list, err := s.svc.Staff.List(c.Request().Context(), salonID(c), active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAll(list, toStaffDTO))
}

func (s *Server) createStaff(c echo.Context) error {
	var req staffRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	m, err := s.svc.Staff.Create(c.Request().Context(), salonID(c), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toStaffDTO(m))
}

func (s *Server) getStaff(c echo.Context) error {
	m, err := s.svc.Staff.Get(c.Request().Context(), salonID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStaffDTO(m))
}

func (s *Server) updateStaff(c echo.Context) error {
	var req staffRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	m, err := s.svc.Staff.Update(c.Request().Context(), salonID(c), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStaffDTO(m))
}

func (s *Server) deleteStaff(c echo.Context) error {
	if err := s.svc.Staff.Delete(c.Request().Context(), salonID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// service menu

func (s *Server) listServices(c echo.Context) error {
	active, err := queryBool(c, "active")
	if err != nil {
		return err
	}
	list, err := s.svc.Catalog.List(c.Request().Context(), salonID(c), active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAll(list, toServiceDTO))
}

func (s *Server) createService(c echo.Context) error {
	var req serviceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	svc, err := s.svc.Catalog.Create(c.Request().Context(), salonID(c), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toServiceDTO(svc))
}

func (s *Server) getService(c echo.Context) error {
	svc, err := s.svc.Catalog.Get(c.Request().Context(), salonID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toServiceDTO(svc))
}

func (s *Server) updateService(c echo.Context) error {
	var req serviceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	svc, err := s.svc.Catalog.Update(c.Request().Context(), salonID(c), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toServiceDTO(svc))
}

func (s *Server) deleteService(c echo.Context) error {
	if err := s.svc.Catalog.Delete(c.Request().Context(), salonID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
