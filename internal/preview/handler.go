package preview

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ehr/healthgen/internal/sink"
	"github.com/ehr/healthgen/pkg/pagination"
)

const (
	defaultSeed      = 1
	defaultStartYear = 2024
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/preview/:table", h.GetTable)
	api.GET("/preview-time", h.GetTime)
}

// TableResponse is one page of a generated table.
type TableResponse struct {
	Table   string            `json:"table"`
	Total   int               `json:"total"`
	Columns []string          `json:"columns"`
	Rows    [][]interface{}   `json:"rows"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
	HasMore bool              `json:"has_more"`
	Links   []pagination.Link `json:"links"`
}

func newTableResponse(c echo.Context, t sink.Table, query string) *TableResponse {
	pg := pagination.FromContext(c)
	start, end := pg.Window(len(t.Rows))
	return &TableResponse{
		Table:   t.Name,
		Total:   len(t.Rows),
		Columns: t.Columns,
		Rows:    t.Rows[start:end],
		Limit:   pg.Limit,
		Offset:  pg.Offset,
		HasMore: pg.HasNext(len(t.Rows)),
		Links:   pg.Links(c.Request().URL.Path, len(t.Rows), query),
	}
}

func (h *Handler) GetTable(c echo.Context) error {
	key := Key{Seed: defaultSeed, Rounds: 1, VisitsPerPatient: 1}

	if v := c.QueryParam("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid seed")
		}
		key.Seed = seed
	}
	var err error
	if key.Rounds, err = intParam(c, "rounds", key.Rounds); err != nil {
		return err
	}
	if key.VisitsPerPatient, err = intParam(c, "visits_per_patient", key.VisitsPerPatient); err != nil {
		return err
	}
	if err := key.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	t, err := h.svc.Table(c.Request().Context(), key, c.Param("table"))
	if err != nil {
		if errors.Is(err, ErrUnknownTable) {
			return echo.NewHTTPError(http.StatusNotFound, "table not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	query := fmt.Sprintf("seed=%d&rounds=%d&visits_per_patient=%d", key.Seed, key.Rounds, key.VisitsPerPatient)
	return c.JSON(http.StatusOK, newTableResponse(c, t, query))
}

func (h *Handler) GetTime(c echo.Context) error {
	start, err := intParam(c, "start_year", defaultStartYear)
	if err != nil {
		return err
	}
	end, err := intParam(c, "end_year", start)
	if err != nil {
		return err
	}

	t, err := h.svc.TimeTable(start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, newTableResponse(c, t, fmt.Sprintf("start_year=%d&end_year=%d", start, end)))
}

func intParam(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return n, nil
}
