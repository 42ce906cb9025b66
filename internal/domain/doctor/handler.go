package doctor

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
	read.GET("/doctors", h.ListDoctors)
	read.GET("/doctors/available", h.ListAvailable)
	read.GET("/doctors/departments", h.ListDepartments)
	read.GET("/doctors/:id", h.GetDoctor)

	write := api.Group("", auth.RequireRole("registrar"))
	write.POST("/doctors", h.CreateDoctor)
	write.PUT("/doctors/:id", h.UpdateDoctor)
	write.DELETE("/doctors/:id", h.DeleteDoctor)
}

// ListDoctors handles GET /doctors?search=&department=. The search term is
// matched client-side against name, specialization and department; the
// department filter partitions the loaded list.
func (h *Handler) ListDoctors(c echo.Context) error {
	ctx := c.Request().Context()

	doctors := h.svc.GetAll(ctx)

	if q := c.QueryParam("search"); q != "" {
		doctors = listview.Filter(doctors, func(d *Doctor) bool {
			return listview.MatchQuery(q, d.Name, d.Specialization, d.Department)
		})
	}
	if dept := c.QueryParam("department"); dept != "" {
		doctors = listview.Partition(doctors, func(d *Doctor) string { return d.Department }, dept)
	}

	pg := pagination.FromContext(c)
	page := pagination.Page(doctors, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(doctors), pg.Limit, pg.Offset))
}

func (h *Handler) ListAvailable(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.GetAvailable(c.Request().Context()))
}

// ListDepartments returns the distinct departments in directory order,
// with per-department counts and a leading catch-all entry.
func (h *Handler) ListDepartments(c echo.Context) error {
	doctors := h.svc.GetAll(c.Request().Context())
	opts := listview.Options(doctors, func(d *Doctor) string { return d.Department }, "All Departments")
	return c.JSON(http.StatusOK, opts)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d := h.svc.GetByID(c.Request().Context(), id)
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var fields recordstore.Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d := h.svc.Create(c.Request().Context(), fields)
	if d == nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to create doctor")
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var fields recordstore.Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d := h.svc.Update(c.Request().Context(), id, fields)
	if d == nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to update doctor")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !h.svc.Delete(c.Request().Context(), id) {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to delete doctor")
	}
	return c.NoContent(http.StatusNoContent)
}
