package bed

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
	read.GET("/beds", h.ListBeds)
	read.GET("/beds/available", h.ListAvailable)
	read.GET("/beds/wards", h.ListWards)
	read.GET("/beds/:id", h.GetBed)

	write := api.Group("", auth.RequireRole("nurse", "registrar"))
	write.POST("/beds", h.CreateBed)
	write.PUT("/beds/:id", h.UpdateBed)
	write.POST("/beds/:id/assign", h.AssignPatient)
	write.POST("/beds/:id/discharge", h.Discharge)
}

// ListBeds handles GET /beds?ward=&status=. The ward filter queries the
// store; the status filter partitions the loaded list.
func (h *Handler) ListBeds(c echo.Context) error {
	ctx := c.Request().Context()

	var beds []*Bed
	if ward := c.QueryParam("ward"); ward != "" {
		beds = h.svc.GetByWard(ctx, ward)
	} else {
		beds = h.svc.GetAll(ctx)
	}

	if status := c.QueryParam("status"); status != "" {
		beds = listview.Partition(beds, func(b *Bed) string { return b.Status }, status)
	}

	pg := pagination.FromContext(c)
	page := pagination.Page(beds, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(beds), pg.Limit, pg.Offset))
}

func (h *Handler) ListAvailable(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.GetAvailable(c.Request().Context()))
}

// ListWards returns the distinct wards in first-seen order with
// per-ward bed counts and a leading catch-all entry.
func (h *Handler) ListWards(c echo.Context) error {
	beds := h.svc.GetAll(c.Request().Context())
	opts := listview.Options(beds, func(b *Bed) string { return b.Ward }, "All Wards")
	return c.JSON(http.StatusOK, opts)
}

func (h *Handler) GetBed(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b := h.svc.GetByID(c.Request().Context(), id)
	if b == nil {
		return echo.NewHTTPError(http.StatusNotFound, "bed not found")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) CreateBed(c echo.Context) error {
	var fields recordstore.Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b := h.svc.Create(c.Request().Context(), fields)
	if b == nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to create bed")
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) UpdateBed(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var fields recordstore.Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b := h.svc.Update(c.Request().Context(), id, fields)
	if b == nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to update bed")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) AssignPatient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		PatientID          string `json:"patient_id"`
		PatientName        string `json:"patient_name"`
		EstimatedDischarge string `json:"estimated_discharge"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.PatientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id is required")
	}
	b := h.svc.AssignPatient(c.Request().Context(), id, body.PatientID, body.PatientName, body.EstimatedDischarge)
	if b == nil {
		return echo.NewHTTPError(http.StatusConflict, "bed cannot be assigned")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) Discharge(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b := h.svc.Discharge(c.Request().Context(), id)
	if b == nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to discharge bed")
	}
	return c.JSON(http.StatusOK, b)
}
