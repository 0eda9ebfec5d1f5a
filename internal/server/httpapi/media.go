package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type uploadRequest struct {
	Kind        string `json:"kind"`
	ContentType string `json:"contentType"`
}

type uploadResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type downloadResponse struct {
	URL string `json:"url"`
}

// presignUpload hands the browser a short-lived PUT URL; the image bytes go
// straight to object storage.
func (s *Server) presignUpload(c echo.Context) error {
	var req uploadRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	up, err := s.svc.Media.PresignUpload(c.Request().Context(), salonID(c), req.Kind, req.ContentType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, uploadResponse(*up))
}

func (s *Server) presignDownload(c echo.Context) error {
	url, err := s.svc.Media.PresignDownload(c.Request().Context(), salonID(c), c.QueryParam("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, downloadResponse{URL: url})
}
