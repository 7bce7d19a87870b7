package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// VerifySignature confere o header x-signature ("ts=...,v1=...") do
// webhook do Mercado Pago. O manifesto assinado é
// "id:<data.id>;request-id:<x-request-id>;ts:<ts>;".
func VerifySignature(secret, header, requestID, dataID string) error {
	if secret == "" || header == "" {
		return ErrInvalidSignature
	}

	var ts, v1 string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "ts":
			ts = v
		case "v1":
			v1 = v
		}
	}
	if ts == "" || v1 == "" {
		return ErrInvalidSignature
	}

	expected := Sign(secret, manifest(dataID, requestID, ts))
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(v1))) {
		return ErrInvalidSignature
	}
	return nil
}

func manifest(dataID, requestID, ts string) string {
	var b strings.Builder
	if dataID != "" {
		fmt.Fprintf(&b, "id:%s;", strings.ToLower(dataID))
	}
	if requestID != "" {
		fmt.Fprintf(&b, "request-id:%s;", requestID)
	}
	fmt.Fprintf(&b, "ts:%s;", ts)
	return b.String()
}

func Sign(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignatureHeader monta um header válido; usado nos testes e em ferramentas locais.
func SignatureHeader(secret, requestID, dataID, ts string) string {
	return "ts=" + ts + ",v1=" + Sign(secret, manifest(dataID, requestID, ts))
}
