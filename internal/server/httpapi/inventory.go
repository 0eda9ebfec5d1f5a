package httpapi

import (
	"net/http"

	"github.com/ansuman15/salon-software-sub002/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type productRequest struct {
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	ReorderLevel int             `json:"reorderLevel"`
}

type purchaseRequest struct {
	Quantity int             `json:"quantity"`
	UnitCost decimal.Decimal `json:"unitCost"`
	Supplier string          `json:"supplier"`
}

type adjustRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

type stockResponse struct {
	ProductID string `json:"productId"`
	Stock     int    `json:"stock"`
}

func (s *Server) listProducts(c echo.Context) error {
	list, err := s.svc.Inventory.List(c.Request().Context(), salonID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAll(list, toProductDTO))
}

func (s *Server) lowStock(c echo.Context) error {
	list, err := s.svc.Inventory.LowStock(c.Request().Context(), salonID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAll(list, toProductDTO))
}

func (s *Server) createProduct(c echo.Context) error {
	var req productRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := s.svc.Inventory.Create(c.Request().Context(), salonID(c), services.ProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductDTO(p))
}

func (s *Server) getProduct(c echo.Context) error {
	p, err := s.svc.Inventory.Get(c.Request().Context(), salonID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductDTO(p))
}

func (s *Server) updateProduct(c echo.Context) error {
	var req productRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := s.svc.Inventory.Update(c.Request().Context(), salonID(c), c.Param("id"), services.ProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductDTO(p))
}

func (s *Server) purchaseStock(c echo.Context) error {
	var req purchaseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id := c.Param("id")
	stock, err := s.svc.Inventory.Purchase(c.Request().Context(), salonID(c), id, req.Quantity, req.UnitCost, req.Supplier)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stockResponse{ProductID: id, Stock: stock})
}

func (s *Server) adjustStock(c echo.Context) error {
	var req adjustRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id := c.Param("id")
	stock, err := s.svc.Inventory.Adjust(c.Request().Context(), salonID(c), id, req.Delta, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stockResponse{ProductID: id, Stock: stock})
}

func (s *Server) stockMovements(c echo.Context) error {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	list, err := s.svc.Inventory.Movements(c.Request().Context(), salonID(c), c.Param("id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAll(list, toMovementDTO))
}
