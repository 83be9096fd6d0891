package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distribuidora-api/internal/application/payments"
	"github.com/jhoicas/Distribuidora-api/pkg/config"
)

const apiBaseURL = "https://api.mercadopago.com"

var _ payments.Gateway = (*Client)(nil)

// Client implementa payments.Gateway contra la API REST de Mercado Pago.
type Client struct {
	httpClient  *http.Client
	accessToken string
	baseURL     string // sobreescribible en tests
	appBaseURL  string // URL pública de la app para back_urls y webhook
	currency    string
}

// NewClient construye el cliente con un timeout acotado: un webhook que
// reconsulta un pago no puede quedarse colgado indefinidamente.
func NewClient(cfg config.MercadoPagoConfig, currency string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		accessToken: cfg.AccessToken,
		baseURL:     apiBaseURL,
		appBaseURL:  cfg.BaseURL,
		currency:    currency,
	}
}

// WithBaseURL cambia el endpoint de la API (para tests con httptest).
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

type preferenceItemPayload struct {
	Title      string          `json:"title"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	CurrencyID string          `json:"currency_id"`
}

type preferencePayload struct {
	Items             []preferenceItemPayload `json:"items"`
	ExternalReference string                  `json:"external_reference"`
	NotificationURL   string                  `json:"notification_url,omitempty"`
	Payer             *payerPayload           `json:"payer,omitempty"`
	BackURLs          *backURLsPayload        `json:"back_urls,omitempty"`
	AutoReturn        string                  `json:"auto_return,omitempty"`
}

type payerPayload struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type backURLsPayload struct {
	Success string `json:"success,omitempty"`
	Pending string `json:"pending,omitempty"`
	Failure string `json:"failure,omitempty"`
}

type preferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// CreatePreference crea una preferencia de checkout. external_reference lleva
// el ID del pedido: es el vínculo que usa la reconciliación del webhook.
func (c *Client) CreatePreference(ctx context.Context, req *payments.PreferenceRequest) (*payments.Preference, error) {
	payload := preferencePayload{
		ExternalReference: req.OrderID,
		NotificationURL:   req.NotificationURL,
	}
	if payload.NotificationURL == "" && c.appBaseURL != "" {
		payload.NotificationURL = c.appBaseURL + "/webhook/mercadopago"
	}
	if c.appBaseURL != "" {
		payload.BackURLs = &backURLsPayload{
			Success: c.appBaseURL + "/payment/success",
			Pending: c.appBaseURL + "/payment/pending",
			Failure: c.appBaseURL + "/payment/failure",
		}
		payload.AutoReturn = "approved"
	}
	if req.PayerName != "" || req.PayerEmail != "" {
		payload.Payer = &payerPayload{Name: req.PayerName, Email: req.PayerEmail}
	}
	for _, item := range req.Items {
		payload.Items = append(payload.Items, preferenceItemPayload{
			Title:      item.Title,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			CurrencyID: c.currency,
		})
	}

	var resp preferenceResponse
	if err := c.post(ctx, "/checkout/preferences", payload, &resp); err != nil {
		return nil, err
	}
	return &payments.Preference{
		ID:               resp.ID,
		InitPoint:        resp.InitPoint,
		SandboxInitPoint: resp.SandboxInitPoint,
	}, nil
}

type paymentResponse struct {
	ID                json.Number     `json:"id"`
	Status            string          `json:"status"`
	StatusDetail      string          `json:"status_detail"`
	ExternalReference string          `json:"external_reference"`
	PaymentMethodID   string          `json:"payment_method_id"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
	DateApproved      *time.Time      `json:"date_approved"`
}

// GetPayment reconsulta un pago por ID. Es la fuente autoritativa de estado:
// el cuerpo del webhook nunca se usa directamente.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*payments.Payment, error) {
	var resp paymentResponse
	if err := c.get(ctx, "/v1/payments/"+paymentID, &resp); err != nil {
		return nil, err
	}
	return &payments.Payment{
		ID:                resp.ID.String(),
		Status:            resp.Status,
		StatusDetail:      resp.StatusDetail,
		ExternalReference: resp.ExternalReference,
		PaymentMethodID:   resp.PaymentMethodID,
		TransactionAmount: resp.TransactionAmount,
		DateApproved:      resp.DateApproved,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mercadopago: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("mercadopago: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mercadopago: HTTP %d: %s", resp.StatusCode, truncate(string(data), 200))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("mercadopago: decodificar respuesta: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
