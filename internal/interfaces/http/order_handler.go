package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/application/orders"
	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/whatsapp"
)

// OrderHandler maneja los pedidos del lado staff (protegido).
type OrderHandler struct {
	placeUC  *orders.PlaceOrderUseCase
	statusUC *orders.StatusUseCase
	queryUC  *orders.QueryUseCase
	receipts *pdf.ReceiptGenerator
	whatsapp *whatsapp.LinkBuilder
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(
	placeUC *orders.PlaceOrderUseCase,
	statusUC *orders.StatusUseCase,
	queryUC *orders.QueryUseCase,
	receipts *pdf.ReceiptGenerator,
	wa *whatsapp.LinkBuilder,
) *OrderHandler {
	return &OrderHandler{
		placeUC:  placeUC,
		statusUC: statusUC,
		queryUC:  queryUC,
		receipts: receipts,
		whatsapp: wa,
	}
}

// Place godoc
// @Summary      Crear pedido (staff)
// @Description  Descuenta stock de forma atómica; si algún ítem no alcanza, no se crea nada.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "customer_id, payment_method, items"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.placeUC.Place(c.Context(), &in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado (pending, confirmed, preparing, delivered, cancelled)"
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.queryUC.List(c.Query("status"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de pedido con sus líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queryUC.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  Aplica la máquina de estados del pedido; cancelar restaura el stock.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status destino"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ord, err := h.statusUC.Update(c.Context(), c.Params("id"), in.Status, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": ord.ID, "status": ord.Status})
}

// Receipt godoc
// @Summary      Comprobante del pedido en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Order ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	ord, customer, items, names, err := h.queryUC.Receipt(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	lines := make([]pdf.ReceiptLine, 0, len(items))
	for _, item := range items {
		name := names[item.ProductID]
		if name == "" {
			name = item.ProductID
		}
		lines = append(lines, pdf.ReceiptLine{ProductName: name, Item: item})
	}

	doc, err := h.receipts.GenerateOrderReceipt(c.Context(), ord, customer, lines)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="pedido-%s.pdf"`, ord.ID))
	return c.Send(doc)
}

// WhatsAppLink godoc
// @Summary      Enlace de WhatsApp con el resumen del pedido
// @Description  Devuelve el enlace wa.me hacia el cliente con el mensaje prellenado.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/whatsapp [get]
func (h *OrderHandler) WhatsAppLink(c *fiber.Ctx) error {
	ord, customer, items, names, err := h.queryUC.Receipt(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	link := h.whatsapp.OrderLink(ord, items, names, customer)
	if link == "" {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_PHONE", Message: "el cliente no tiene teléfono registrado"})
	}
	return c.JSON(fiber.Map{"link": link})
}
