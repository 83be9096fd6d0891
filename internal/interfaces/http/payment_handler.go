package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/application/payments"
	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/mercadopago"
	"github.com/jhoicas/Distribuidora-api/pkg/logger"
)

// PaymentHandler maneja la pasarela de pago: preferencias, consulta de
// estado y el webhook de notificaciones.
type PaymentHandler struct {
	preferenceUC  *payments.CreatePreferenceUseCase
	reconcileUC   *payments.ReconcileUseCase
	webhookSecret string
	log           *logger.Logger
}

// NewPaymentHandler construye el handler de pagos.
func NewPaymentHandler(
	preferenceUC *payments.CreatePreferenceUseCase,
	reconcileUC *payments.ReconcileUseCase,
	webhookSecret string,
	log *logger.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		preferenceUC:  preferenceUC,
		reconcileUC:   reconcileUC,
		webhookSecret: webhookSecret,
		log:           log,
	}
}

// CreatePreference godoc
// @Summary      Crear preferencia de pago
// @Description  Registra el pedido en la pasarela y devuelve la URL de checkout.
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        order_id  path  string  true  "Order ID"
// @Success      201  {object}  dto.CreatePreferenceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/payments/create/{order_id} [post]
func (h *PaymentHandler) CreatePreference(c *fiber.Ctx) error {
	out, err := h.preferenceUC.Execute(c.Context(), c.Params("order_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Status godoc
// @Summary      Estado del pago de un pedido
// @Description  Si el pedido tiene pago registrado, reconsulta la pasarela; si no, devuelve el estado local.
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        order_id  path  string  true  "Order ID"
// @Success      200  {object}  dto.PaymentStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/payments/status/{order_id} [get]
func (h *PaymentHandler) Status(c *fiber.Ctx) error {
	out, err := h.preferenceUC.Status(c.Context(), c.Params("order_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Webhook godoc
// @Summary      Webhook de la pasarela de pago
// @Description  Verifica la firma HMAC, reconsulta el pago a la pasarela y aplica
//
//	el resultado sobre el pedido. Idempotente: la misma notificación
//	repetida no vuelve a mutar nada.
//
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /webhook/mercadopago [post]
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	var in dto.WebhookNotification
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	// data.id llega por query en las notificaciones reales; el body es respaldo.
	dataID := c.Query("data.id")
	if dataID == "" {
		dataID = in.Data.ID
	} else {
		in.Data.ID = dataID
	}

	if err := mercadopago.VerifySignature(h.webhookSecret, c.Get("x-signature"), c.Get("x-request-id"), dataID); err != nil {
		h.log.Warn().Err(err).Str("data_id", dataID).Msg("webhook con firma inválida")
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma del webhook inválida"})
	}

	result, err := h.reconcileUC.HandleWebhook(c.Context(), &in)
	if err != nil {
		return respondError(c, err)
	}

	h.log.Info().
		Str("order_id", result.OrderID).
		Str("payment_id", result.PaymentID).
		Str("gateway_status", result.GatewayStatus).
		Bool("applied", result.Applied).
		Str("note", result.Note).
		Msg("webhook de pago procesado")

	return c.JSON(fiber.Map{"status": "ok"})
}
