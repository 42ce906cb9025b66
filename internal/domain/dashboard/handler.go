package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hms/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("physician", "nurse", "registrar"))
	read.GET("/dashboard", h.GetOverview)
}

func (h *Handler) GetOverview(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Overview(c.Request().Context()))
}
