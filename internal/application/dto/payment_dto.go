package dto

// WebhookNotification body del webhook de la pasarela: {id, type, data:{id}}.
// Los montos y estados embebidos no se usan: el pago se reconsulta a la
// pasarela por Data.ID para evitar spoofing.
type WebhookNotification struct {
	ID   any    `json:"id"`
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// CreatePreferenceResponse respuesta de POST /api/payments/create/:order_id.
type CreatePreferenceResponse struct {
	PreferenceID string `json:"preference_id"`
	PaymentURL   string `json:"payment_url"`
}

// PaymentStatusResponse respuesta de GET /api/payments/status/:order_id.
type PaymentStatusResponse struct {
	PaymentID     string `json:"payment_id"`
	Status        string `json:"status"`
	StatusDetail  string `json:"status_detail,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Amount        string `json:"amount,omitempty"`
	DateApproved  string `json:"date_approved,omitempty"`
}
