package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"loja-backend/mercadopago"
	"loja-backend/models"
	"loja-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreferenceCreator is the slice of the gateway client the checkout needs.
type PreferenceCreator interface {
	CreatePreference(ctx context.Context, req *mercadopago.PreferenceRequest) (*mercadopago.Preference, error)
}

type CheckoutHandler struct {
	DB      *gorm.DB
	Gateway PreferenceCreator
	Stash   *utils.CheckoutStash
}

type checkoutRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
	Phone struct {
		AreaCode string `json:"area_code" binding:"required"`
		Number   string `json:"number" binding:"required"`
	} `json:"phone" binding:"required"`
	Address struct {
		ZipCode      string `json:"zip_code" binding:"required"`
		StreetName   string `json:"street_name" binding:"required"`
		StreetNumber string `json:"street_number" binding:"required"`
		City         string `json:"city" binding:"required"`
		State        string `json:"state" binding:"required"`
		Neighborhood string `json:"neighborhood"`
		Complement   string `json:"complement"`
	} `json:"address" binding:"required"`
	CouponCode string `json:"coupon_code"`
}

// CreatePreference turns the cookie cart into a hosted-checkout preference.
// The cart and customer data are stashed under the generated reference so the
// webhook can resolve the payment into an order and an email later.
func (h *CheckoutHandler) CreatePreference(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	cart := readCart(c)
	if len(cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Carrinho vazio"})
		return
	}

	subtotal := models.CartSubtotal(cart)
	shipping := utils.CalculateShipping(subtotal)

	var discount float64
	if req.CouponCode != "" {
		var coupon models.Coupon
		if err := h.DB.Where("code = ?", req.CouponCode).First(&coupon).Error; err != nil || !coupon.Usable(time.Now()) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cupom inválido"})
			return
		}
		discount = coupon.Discount(subtotal)
	}

	total := subtotal + shipping - discount

	items := make([]mercadopago.PreferenceItem, 0, len(cart)+2)
	for _, line := range cart {
		items = append(items, mercadopago.PreferenceItem{
			Title:      line.Name,
			PictureURL: line.Image,
			Quantity:   line.Quantity,
			UnitPrice:  line.Price,
			CurrencyID: "BRL",
		})
	}
	if shipping > 0 {
		items = append(items, mercadopago.PreferenceItem{
			Title:      "Frete",
			Quantity:   1,
			UnitPrice:  shipping,
			CurrencyID: "BRL",
		})
	}
	if discount > 0 {
		items = append(items, mercadopago.PreferenceItem{
			Title:      "Desconto",
			Quantity:   1,
			UnitPrice:  -discount,
			CurrencyID: "BRL",
		})
	}

	// Timestamp plus random suffix; collisions are negligible at this scale.
	reference := fmt.Sprintf("PED-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])

	baseURL := os.Getenv("BASE_URL")
	prefReq := &mercadopago.PreferenceRequest{
		Items: items,
		Payer: &mercadopago.PreferencePayer{
			Name:  req.Name,
			Email: req.Email,
			Phone: &mercadopago.PayerPhone{
				AreaCode: req.Phone.AreaCode,
				Number:   req.Phone.Number,
			},
			Address: &mercadopago.PayerAddress{
				ZipCode:      req.Address.ZipCode,
				StreetName:   req.Address.StreetName,
				StreetNumber: req.Address.StreetNumber,
			},
		},
		BackURLs: &mercadopago.BackURLs{
			Success: baseURL + "/checkout/success",
			Pending: baseURL + "/checkout/pending",
			Failure: baseURL + "/checkout/failure",
		},
		AutoReturn:          "approved",
		NotificationURL:     baseURL + "/api/webhooks/mercadopago",
		ExternalReference:   reference,
		StatementDescriptor: "LOJA",
	}

	pref, err := h.Gateway.CreatePreference(c.Request.Context(), prefReq)
	if err != nil {
		log.Printf("Failed to create payment preference %s: %v", reference, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao processar pagamento"})
		return
	}

	h.Stash.Put(reference, &utils.CheckoutEntry{
		Cart: cart,
		Customer: utils.Customer{
			Email: req.Email,
			Name:  req.Name,
			Phone: utils.Phone{AreaCode: req.Phone.AreaCode, Number: req.Phone.Number},
			Address: utils.Address{
				ZipCode:      req.Address.ZipCode,
				StreetName:   req.Address.StreetName,
				StreetNumber: req.Address.StreetNumber,
				City:         req.Address.City,
				State:        req.Address.State,
				Neighborhood: req.Address.Neighborhood,
				Complement:   req.Address.Complement,
			},
		},
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    total,
	})

	// redirect_url picks the environment so the storefront does not have to.
	redirect := pref.InitPoint
	if os.Getenv("MP_SANDBOX") == "true" {
		redirect = pref.SandboxInitPoint
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"id":                 pref.ID,
		"init_point":         pref.InitPoint,
		"sandbox_init_point": pref.SandboxInitPoint,
		"redirect_url":       redirect,
		"external_reference": reference,
	})
}
