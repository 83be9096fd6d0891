// Package notify reúne los canales de aviso al cliente (correo, WhatsApp).
// Los envíos son best-effort: un fallo se loguea y nunca interrumpe la
// operación que lo disparó.
package notify

import (
	"context"

	deliveryapp "github.com/jhoicas/Distribuidora-api/internal/application/delivery"
	"github.com/jhoicas/Distribuidora-api/internal/application/orders"
	"github.com/jhoicas/Distribuidora-api/internal/application/payments"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/email"
	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/whatsapp"
	"github.com/jhoicas/Distribuidora-api/pkg/logger"
)

var (
	_ orders.Notifier      = (*Service)(nil)
	_ payments.Notifier    = (*Service)(nil)
	_ deliveryapp.Notifier = (*Service)(nil)
)

type Service struct {
	mailer      *email.Mailer
	whatsapp    *whatsapp.LinkBuilder
	productRepo repository.ProductRepository
	log         *logger.Logger
}

func NewService(mailer *email.Mailer, wa *whatsapp.LinkBuilder, productRepo repository.ProductRepository, log *logger.Logger) *Service {
	return &Service{
		mailer:      mailer,
		whatsapp:    wa,
		productRepo: productRepo,
		log:         log,
	}
}

// OrderConfirmation envía el resumen del pedido por correo y deja en el log
// el enlace de WhatsApp listo para que el personal confirme con el cliente.
func (s *Service) OrderConfirmation(ctx context.Context, order *entity.Order, items []*entity.OrderItem, customer *entity.Customer) {
	names := s.productNames(items)

	if link := s.whatsapp.OrderLink(order, items, names, customer); link != "" {
		s.log.Info().
			Str("order_id", order.ID).
			Str("whatsapp_link", link).
			Msg("enlace de confirmación por WhatsApp")
	}

	if err := s.mailer.SendOrderConfirmation(order, items, names, customer); err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("no se pudo enviar el correo de confirmación")
	}
}

// PaymentApproved avisa al cliente que su pago fue acreditado.
func (s *Service) PaymentApproved(ctx context.Context, order *entity.Order, customer *entity.Customer) {
	if err := s.mailer.SendPaymentApproved(order, customer); err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("no se pudo enviar el correo de pago aprobado")
	}
}

// OrderDelivered avisa al cliente que su pedido fue entregado.
func (s *Service) OrderDelivered(ctx context.Context, order *entity.Order, customer *entity.Customer) {
	if err := s.mailer.SendOrderDelivered(order, customer); err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("no se pudo enviar el correo de entrega")
	}
}

func (s *Service) productNames(items []*entity.OrderItem) map[string]string {
	names := make(map[string]string, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			continue
		}
		names[item.ProductID] = product.Name
	}
	return names
}
