package mercadopago_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/mercadopago"
)

func sign(secret, dataID, requestID, ts string) string {
	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valida(t *testing.T) {
	secret := "whsec-123"
	v1 := sign(secret, "pay-42", "req-7", "1700000000")
	header := "ts=1700000000,v1=" + v1

	err := mercadopago.VerifySignature(secret, header, "req-7", "pay-42")
	require.NoError(t, err)
}

func TestVerifySignature_ConEspacios(t *testing.T) {
	secret := "whsec-123"
	v1 := sign(secret, "pay-42", "req-7", "1700000000")
	header := "ts=1700000000, v1=" + v1

	assert.NoError(t, mercadopago.VerifySignature(secret, header, "req-7", "pay-42"))
}

func TestVerifySignature_FirmaIncorrecta(t *testing.T) {
	secret := "whsec-123"
	v1 := sign("otro-secreto", "pay-42", "req-7", "1700000000")
	header := "ts=1700000000,v1=" + v1

	err := mercadopago.VerifySignature(secret, header, "req-7", "pay-42")
	assert.Error(t, err)
}

func TestVerifySignature_DataIDAlterado(t *testing.T) {
	secret := "whsec-123"
	v1 := sign(secret, "pay-42", "req-7", "1700000000")
	header := "ts=1700000000,v1=" + v1

	err := mercadopago.VerifySignature(secret, header, "req-7", "pay-OTRO")
	assert.Error(t, err, "cambiar el data.id debe invalidar la firma")
}

func TestVerifySignature_HeaderAusenteOMalformado(t *testing.T) {
	assert.Error(t, mercadopago.VerifySignature("whsec-123", "", "req-7", "pay-42"))
	assert.Error(t, mercadopago.VerifySignature("whsec-123", "garbage", "req-7", "pay-42"))
	assert.Error(t, mercadopago.VerifySignature("whsec-123", "ts=123", "req-7", "pay-42"))
}

func TestVerifySignature_SecretVacioDeshabilita(t *testing.T) {
	// Sin secreto configurado no se exige firma (desarrollo local).
	assert.NoError(t, mercadopago.VerifySignature("", "", "req-7", "pay-42"))
}
