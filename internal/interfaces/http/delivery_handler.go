package http

import (
	"github.com/gofiber/fiber/v2"

	deliveryapp "github.com/jhoicas/Distribuidora-api/internal/application/delivery"
	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
)

// DeliveryHandler maneja la asignación y el ciclo de vida de las entregas.
type DeliveryHandler struct {
	uc *deliveryapp.UseCase
}

// NewDeliveryHandler construye el handler de entregas.
func NewDeliveryHandler(uc *deliveryapp.UseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

func actorFrom(c *fiber.Ctx) deliveryapp.Actor {
	return deliveryapp.Actor{UserID: GetUserID(c), Role: GetRole(c)}
}

// Assign godoc
// @Summary      Asignar repartidor a un pedido
// @Description  El pedido debe estar confirmado o en preparación; al asignar pasa a preparing.
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        order_id  path  string  true  "Order ID"
// @Param        body      body  dto.AssignDeliveryRequest  true  "delivery_user_id, notes"
// @Success      201  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/deliveries/assign/{order_id} [post]
func (h *DeliveryHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Assign(c.Context(), c.Params("order_id"), &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDeliveryResponse(out))
}

// UpdateStatus godoc
// @Summary      Actualizar estado de la entrega
// @Description  delivered cierra el pedido; failed lo devuelve a pending. El repartidor
//
//	solo puede tocar sus propias entregas.
//
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Delivery ID"
// @Param        body  body  dto.UpdateDeliveryStatusRequest  true  "status, delivery_proof, notes"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/status [patch]
func (h *DeliveryHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateDeliveryStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), &in, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDeliveryResponse(out))
}

// GetByID godoc
// @Summary      Detalle de entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Delivery ID"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("id"), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDeliveryResponse(out))
}

// List godoc
// @Summary      Listar entregas
// @Description  El staff ve todas; el repartidor solo su propia cola.
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.DeliveryResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	list, err := h.uc.List(c.Query("status"), actorFrom(c), page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDeliveryResponse(d))
	}
	return c.JSON(out)
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	return &dto.DeliveryResponse{
		ID:             d.ID,
		OrderID:        d.OrderID,
		DeliveryUserID: d.DeliveryUserID,
		Status:         d.Status,
		DeliveryProof:  d.DeliveryProof,
		Notes:          d.Notes,
		DeliveredAt:    d.DeliveredAt,
		CreatedAt:      d.CreatedAt,
	}
}
