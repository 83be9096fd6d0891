package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/application/reports"
)

// ReportHandler maneja alertas de stock y reportes de ventas (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock godoc
// @Summary      Productos por debajo del stock mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockAlertResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStockAlerts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesSummary godoc
// @Summary      Resumen de ventas de un período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial (YYYY-MM-DD, default hoy)"
// @Param        to    query  string  false  "Fecha final (YYYY-MM-DD, default hoy)"
// @Success      200  {object}  dto.SalesSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas, formato YYYY-MM-DD"})
	}
	out, err := h.uc.SalesSummary(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos más vendidos de un período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Fecha inicial (YYYY-MM-DD, default hoy)"
// @Param        to     query  string  false  "Fecha final (YYYY-MM-DD, default hoy)"
// @Param        limit  query  int     false  "Cantidad de productos (default 10)"
// @Success      200  {array}  dto.TopProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas, formato YYYY-MM-DD"})
	}
	out, err := h.uc.TopProducts(c.Context(), from, to, c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parsePeriod lee from/to como fechas locales; to se extiende al fin del día.
func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.Add(24*time.Hour - time.Nanosecond)

	if s := c.Query("from"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}
