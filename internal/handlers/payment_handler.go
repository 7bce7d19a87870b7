package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	ucPayment "github.com/BruksfildServices01/barber-booking/internal/usecase/payment"
)

type PaymentHandler struct {
	checkout *ucPayment.StartCheckout
	webhook  *ucPayment.HandleWebhook
}

func NewPaymentHandler(
	checkout *ucPayment.StartCheckout,
	webhook *ucPayment.HandleWebhook,
) *PaymentHandler {
	return &PaymentHandler{checkout: checkout, webhook: webhook}
}

type checkoutRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

func (h *PaymentHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if !bindJSON(c, &req) {
		return
	}
	id, _ := uuid.Parse(req.BookingID)

	url, err := h.checkout.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_url": url})
}

// webhookBody cobre o formato JSON da notificação; o id também vem na
// query (data.id), que é o valor assinado.
type webhookBody struct {
	Type string `json:"type"`
	Data struct {
		ID any `json:"id"`
	} `json:"data"`
}

func (h *PaymentHandler) Webhook(c *gin.Context) {
	var body webhookBody
	_ = c.ShouldBindJSON(&body)

	dataID := c.Query("data.id")
	if dataID == "" && body.Data.ID != nil {
		dataID = fmt.Sprint(body.Data.ID)
	}
	topic := c.Query("type")
	if topic == "" {
		topic = body.Type
	}

	err := h.webhook.Execute(c.Request.Context(), ucPayment.WebhookInput{
		Topic:     topic,
		DataID:    dataID,
		Signature: c.GetHeader("x-signature"),
		RequestID: c.GetHeader("x-request-id"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
