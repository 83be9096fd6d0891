package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/application/orders"
	"github.com/jhoicas/Distribuidora-api/internal/application/usecase"
)

// PublicHandler expone el catálogo y el pedido sin sesión: menú, alta de
// pedido y seguimiento por token.
type PublicHandler struct {
	productUC *usecase.ProductUseCase
	placeUC   *orders.PlaceOrderUseCase
	queryUC   *orders.QueryUseCase
}

// NewPublicHandler construye el handler público.
func NewPublicHandler(
	productUC *usecase.ProductUseCase,
	placeUC *orders.PlaceOrderUseCase,
	queryUC *orders.QueryUseCase,
) *PublicHandler {
	return &PublicHandler{productUC: productUC, placeUC: placeUC, queryUC: queryUC}
}

// Menu godoc
// @Summary      Catálogo público
// @Description  Solo productos activos con stock disponible; sin precios de costo.
// @Tags         public
// @Produce      json
// @Param        search  query  string  false  "Busca por nombre"
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.PublicProductResponse
// @Router       /menu [get]
func (h *PublicHandler) Menu(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	out, err := h.productUC.ListPublic(c.Query("search"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PlaceOrder godoc
// @Summary      Crear pedido público
// @Description  Crea o reutiliza el cliente por teléfono y deja el pedido pendiente de confirmación.
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PublicOrderRequest  true  "datos del cliente, payment_method, items"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /order [post]
func (h *PublicHandler) PlaceOrder(c *fiber.Ctx) error {
	var in dto.PublicOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.placeUC.PlacePublic(c.Context(), &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Track godoc
// @Summary      Seguimiento público del pedido
// @Description  El token del pedido es la única credencial; no expone datos de otros clientes.
// @Tags         public
// @Produce      json
// @Param        token  path  string  true  "Order token"
// @Success      200  {object}  dto.PublicOrderStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /order/{token} [get]
func (h *PublicHandler) Track(c *fiber.Ctx) error {
	out, err := h.queryUC.GetByToken(c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
