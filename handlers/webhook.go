package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"loja-backend/mercadopago"
	"loja-backend/models"
	"loja-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymentFetcher is the slice of the gateway client the webhook needs.
type PaymentFetcher interface {
	GetPayment(ctx context.Context, id string) (*mercadopago.Payment, error)
}

type WebhookHandler struct {
	DB       *gorm.DB
	Payments PaymentFetcher
	Stash    *utils.CheckoutStash
	Mail     utils.Mailer
}

type webhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

// HandleNotification processes an asynchronous payment notification. The
// gateway delivers at least once and retries on non-2xx responses, so this
// handler always acknowledges with 200 once a branch completes - internal
// failures are logged, never surfaced, to avoid a retry storm.
func (h *WebhookHandler) HandleNotification(c *gin.Context) {
	var notif webhookNotification
	if err := c.ShouldBindJSON(&notif); err != nil {
		log.Printf("Webhook: unreadable payload: %v", err)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if notif.Type != "payment" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	// The webhook body is not trusted to carry payment data; re-fetch by id.
	payment, err := h.Payments.GetPayment(c.Request.Context(), notif.Data.ID.String())
	if err != nil {
		log.Printf("Webhook: failed to fetch payment %s: %v", notif.Data.ID, err)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	switch payment.Status {
	case mercadopago.StatusApproved:
		h.resolve(payment, true)
	case mercadopago.StatusPending:
		h.resolve(payment, false)
	case mercadopago.StatusRejected:
		h.resolve(payment, true)
	default:
		log.Printf("Webhook: ignoring payment %d with status %q", payment.ID, payment.Status)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// resolve looks up the stashed checkout and sends the status email. Approved
// and rejected delete the stash entry, so a duplicate notification finds
// nothing and silently skips the email; pending keeps the entry and resends.
func (h *WebhookHandler) resolve(payment *mercadopago.Payment, final bool) {
	entry, found := h.Stash.Get(payment.ExternalReference)
	if !found {
		log.Printf("Webhook: no stashed checkout for reference %q (payment %d) - skipping email", payment.ExternalReference, payment.ID)
		return
	}

	if payment.Status == mercadopago.StatusApproved {
		if err := h.recordOrder(entry, payment); err != nil {
			log.Printf("Webhook: failed to record order %s: %v", payment.ExternalReference, err)
		}
	}

	var err error
	switch payment.Status {
	case mercadopago.StatusApproved:
		err = h.Mail.SendPaymentApproved(entry, payment)
	case mercadopago.StatusPending:
		err = h.Mail.SendPaymentPending(entry, payment)
	case mercadopago.StatusRejected:
		err = h.Mail.SendPaymentRejected(entry, payment)
	}
	if err != nil {
		log.Printf("Webhook: failed to send %s email for %s: %v", payment.Status, payment.ExternalReference, err)
	}

	if final {
		h.Stash.Delete(payment.ExternalReference)
	}
}

// recordOrder persists the approved checkout as an order with snapshotted
// line items.
func (h *WebhookHandler) recordOrder(entry *utils.CheckoutEntry, payment *mercadopago.Payment) error {
	if h.DB == nil {
		return nil
	}

	order := models.Order{
		Reference:     payment.ExternalReference,
		CustomerEmail: entry.Customer.Email,
		CustomerName:  entry.Customer.Name,
		Status:        models.OrderStatusApproved,
		Subtotal:      entry.Subtotal,
		Shipping:      entry.Shipping,
		Discount:      entry.Discount,
		Total:         entry.Total,
		PaymentID:     payment.ID,
	}
	for _, item := range entry.Cart {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ID,
			ProductName: item.Name,
			Image:       item.Image,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	return h.DB.Create(&order).Error
}
