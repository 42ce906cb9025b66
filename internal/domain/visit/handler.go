package visit

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
	read.GET("/visits", h.ListVisits)
	read.GET("/visits/active", h.ListActive)
	read.GET("/visits/:id", h.GetVisit)

	write := api.Group("", auth.RequireRole("physician", "nurse", "registrar"))
	write.POST("/visits", h.CreateVisit)
	write.PUT("/visits/:id", h.UpdateVisit)
	write.POST("/visits/:id/checkout", h.CheckOut)
}

// ListVisits handles GET /visits?patient_id=&status=&search=. The patient
// filter queries the store; status and search narrow the loaded list.
func (h *Handler) ListVisits(c echo.Context) error {
	ctx := c.Request().Context()

	var visits []*Visit
	if pid := c.QueryParam("patient_id"); pid != "" {
		visits = h.svc.GetByPatientID(ctx, pid)
	} else {
		visits = h.svc.GetAll(ctx)
	}

	if q := c.QueryParam("search"); q != "" {
		visits = listview.Filter(visits, func(v *Visit) bool {
			return listview.MatchQuery(q, v.PatientName, v.PatientID, v.Department, v.Doctor)
		})
	}
	if status := c.QueryParam("status"); status != "" {
		visits = listview.Partition(visits, func(v *Visit) string { return v.Status }, status)
	}

	pg := pagination.FromContext(c)
	page := pagination.Page(visits, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(visits), pg.Limit, pg.Offset))
}

func (h *Handler) ListActive(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.GetActive(c.Request().Context()))
}

func (h *Handler) GetVisit(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	v := h.svc.GetByID(c.Request().Context(), id)
	if v == nil {
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) CreateVisit(c echo.Context) error {
	var fields recordstore.Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v := h.svc.Create(c.Request().Context(), fields)
	if v == nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to create visit")
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) UpdateVisit(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var fields recordstore.Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v := h.svc.Update(c.Request().Context(), id, fields)
	if v == nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to update visit")
	}
	return c.JSON(http.StatusOK, v)
}

// CheckOut handles POST /visits/:id/checkout. The body may carry final
// diagnosis, prescription and bill fields to record with the check-out.
func (h *Handler) CheckOut(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	fields := recordstore.Fields{}
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&fields); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	v := h.svc.CheckOut(c.Request().Context(), id, fields)
	if v == nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to check out visit")
	}
	return c.JSON(http.StatusOK, v)
}
