package http

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
)

// StockHandler maneja el libro de movimientos y la importación de planillas.
type StockHandler struct {
	movementUC *inventory.RegisterMovementUseCase
	importUC   *inventory.ImportProductsUseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(movementUC *inventory.RegisterMovementUseCase, importUC *inventory.ImportProductsUseCase) *StockHandler {
	return &StockHandler{movementUC: movementUC, importUC: importUC}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  entry suma, exit descuenta (valida disponible), adjustment fija el
//
//	stock objetivo y registra el delta aplicado.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, movement_type, quantity, reason"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.movementUC.Execute(c.Context(), &in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path   string  true   "Product ID"
// @Param        limit       query  int     false  "Tamaño de página"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/stock/movements/{product_id} [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	movs, err := h.movementUC.History(c.Params("product_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar productos desde planilla CSV
// @Description  Archivo multipart "file" con cabecera sku,name,description,sale_price,
//
//	cost_price,quantity,minimum_stock,unit,category,supplier. SKUs nuevos
//	crean el producto; SKUs existentes suman stock. Las filas con error no
//	abortan el resto.
//
// @Tags         stock
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "planilla CSV"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/import [post]
func (h *StockHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo 'file' requerido"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer file.Close()

	rows, err := parseImportCSV(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}

	result, err := h.importUC.Execute(c.Context(), rows, fileHeader.Filename, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// parseImportCSV lee la planilla y mapea columnas por nombre de cabecera,
// así el orden de las columnas no importa.
func parseImportCSV(r io.Reader) ([]dto.ImportRowRequest, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errors.New("la planilla no tiene filas de datos")
	}

	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(record []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]dto.ImportRowRequest, 0, len(records)-1)
	for _, record := range records[1:] {
		quantity, _ := strconv.Atoi(field(record, "quantity"))
		minimum, _ := strconv.Atoi(field(record, "minimum_stock"))
		rows = append(rows, dto.ImportRowRequest{
			SKU:          field(record, "sku"),
			Name:         field(record, "name"),
			Description:  field(record, "description"),
			SalePrice:    field(record, "sale_price"),
			CostPrice:    field(record, "cost_price"),
			Quantity:     quantity,
			MinimumStock: minimum,
			Unit:         field(record, "unit"),
			Category:     field(record, "category"),
			Supplier:     field(record, "supplier"),
		})
	}
	return rows, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		MovementType: m.MovementType,
		Quantity:     m.Quantity,
		Reason:       m.Reason,
		UserID:       m.UserID,
		CreatedAt:    m.CreatedAt,
	}
}
