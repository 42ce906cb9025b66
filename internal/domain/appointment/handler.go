package appointment

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
	read.GET("/appointments", h.ListAppointments)
	read.GET("/appointments/:id", h.GetAppointment)

	write := api.Group("", auth.RequireRole("registrar"))
	write.POST("/appointments", h.CreateAppointment)
	write.PUT("/appointments/:id", h.UpdateAppointment)
	write.PATCH("/appointments/:id/status", h.UpdateStatus)
	write.DELETE("/appointments/:id", h.DeleteAppointment)
}

// ListAppointments handles GET /appointments?date=&patient_id=&status=&search=.
// Date and patient filters query the store; status and search narrow the
// loaded list.
func (h *Handler) ListAppointments(c echo.Context) error {
	ctx := c.Request().Context()

	var appointments []*Appointment
	switch {
	case c.QueryParam("date") != "":
		appointments = h.svc.GetByDate(ctx, c.QueryParam("date"))
	case c.QueryParam("patient_id") != "":
		appointments = h.svc.GetByPatientID(ctx, c.QueryParam("patient_id"))
	default:
		appointments = h.svc.GetAll(ctx)
	}

	if q := c.QueryParam("search"); q != "" {
		appointments = listview.Filter(appointments, func(a *Appointment) bool {
			return listview.MatchQuery(q, a.PatientName, a.DoctorName, a.Department, a.Reason)
		})
	}
	if status := c.QueryParam("status"); status != "" {
		appointments = listview.Partition(appointments, func(a *Appointment) string { return a.Status }, status)
	}

	pg := pagination.FromContext(c)
	page := pagination.Page(appointments, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(appointments), pg.Limit, pg.Offset))
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a := h.svc.GetByID(c.Request().Context(), id)
	if a == nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var fields recordstore.Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a := h.svc.Create(c.Request().Context(), fields)
	if a == nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to create appointment")
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var fields recordstore.Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a := h.svc.Update(c.Request().Context(), id, fields)
	if a == nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to update appointment")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	a := h.svc.UpdateStatus(c.Request().Context(), id, body.Status)
	if a == nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to update appointment status")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !h.svc.Delete(c.Request().Context(), id) {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to delete appointment")
	}
	return c.NoContent(http.StatusNoContent)
}
