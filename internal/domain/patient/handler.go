package patient

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hms/internal/platform/auth"
	"github.com/medicore/hms/internal/platform/recordstore"
	"github.com/medicore/hms/pkg/listview"
	"github.com/medicore/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("physician", "nurse", "registrar"))
	read.GET("/patients", h.ListPatients)
	read.GET("/patients/:id", h.GetPatient)

	write := api.Group("", auth.RequireRole("registrar"))
	write.POST("/patients", h.CreatePatient)
	write.PUT("/patients/:id", h.UpdatePatient)
	write.DELETE("/patients/:id", h.DeletePatient)
}

// ListPatients handles GET /patients?search=&status=. A search term runs the
// server-side search; the status filter partitions the loaded list.
func (h *Handler) ListPatients(c echo.Context) error {
	ctx := c.Request().Context()

	var patients []*Patient
	if q := c.QueryParam("search"); q != "" {
		patients = h.svc.Search(ctx, q)
	} else {
		patients = h.svc.GetAll(ctx)
	}

	if status := c.QueryParam("status"); status != "" {
		patients = listview.Partition(patients, func(p *Patient) string { return p.Status }, status)
	}

	pg := pagination.FromContext(c)
	page := pagination.Page(patients, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(patients), pg.Limit, pg.Offset))
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p := h.svc.GetByID(c.Request().Context(), id)
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var fields recordstore.Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p := h.svc.Create(c.Request().Context(), fields)
	if p == nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to create patient")
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var fields recordstore.Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p := h.svc.Update(c.Request().Context(), id, fields)
	if p == nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to update patient")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !h.svc.Delete(c.Request().Context(), id) {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to delete patient")
	}
	return c.NoContent(http.StatusNoContent)
}
