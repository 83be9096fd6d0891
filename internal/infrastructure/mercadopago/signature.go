package mercadopago

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// VerifySignature valida el header x-signature del webhook de Mercado Pago.
//
// El header tiene la forma "ts=<unix>,v1=<hmac-hex>". El manifiesto firmado es
//
//	id:<data.id>;request-id:<x-request-id>;ts:<ts>;
//
// con HMAC-SHA256 sobre el secreto del webhook. Si secret está vacío la
// verificación se considera deshabilitada (entornos de desarrollo).
func VerifySignature(secret, signatureHeader, requestID, dataID string) error {
	if secret == "" {
		return nil
	}
	if signatureHeader == "" {
		return fmt.Errorf("falta el header x-signature")
	}

	var ts, v1 string
	for _, part := range strings.Split(signatureHeader, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}
	if ts == "" || v1 == "" {
		return fmt.Errorf("header x-signature malformado")
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(v1)) {
		return fmt.Errorf("firma del webhook inválida")
	}
	return nil
}
