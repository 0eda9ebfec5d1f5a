package httpapi

import (
	"net/http"

	"github.com/ansuman15/salon-software-sub002/internal/server/services"
	"github.com/labstack/echo/v4"
)

type createSalonRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Plan          string `json:"plan"`
	ActivationKey string `json:"activationKey"`
}

// activationKeyResponse carries the plaintext key, shown exactly once.
type activationKeyResponse struct {
	Salon         *salonDTO `json:"salon,omitempty"`
	ActivationKey string    `json:"activationKey"`
}

type salonStatusRequest struct {
	Status string `json:"status"`
}

type rotateKeyRequest struct {
	ActivationKey string `json:"activationKey"`
}

func (s *Server) listSalons(c echo.Context) error {
	salons, err := s.svc.Salons.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAll(salons, toSalonDTO))
}

func (s *Server) createSalon(c echo.Context) error {
	var req createSalonRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	salon, key, err := s.svc.Salons.Create(ctx, services.NewSalonInput(req))
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "salon created", "salon_id", salon.ID)

	dto := toSalonDTO(salon)
	return c.JSON(http.StatusCreated, activationKeyResponse{Salon: &dto, ActivationKey: key})
}

func (s *Server) getSalon(c echo.Context) error {
	salon, err := s.svc.Salons.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSalonDTO(salon))
}

func (s *Server) setSalonStatus(c echo.Context) error {
	var req salonStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	id := c.Param("id")
	if err := s.svc.Salons.SetStatus(ctx, id, req.Status); err != nil {
		return err
	}
	s.logger.Info(ctx, "salon status changed", "salon_id", id, "status", req.Status)

	salon, err := s.svc.Salons.Get(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSalonDTO(salon))
}

func (s *Server) rotateSalonKey(c echo.Context) error {
	var req rotateKeyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	key, err := s.svc.Salons.RotateKey(ctx, c.Param("id"), req.ActivationKey)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "activation key rotated", "salon_id", c.Param("id"))
	return c.JSON(http.StatusOK, activationKeyResponse{ActivationKey: key})
}
