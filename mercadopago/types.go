package mercadopago

// Payment statuses the webhook flow branches on. The gateway defines more
// (in_process, refunded, charged_back, ...); anything else is logged and
// ignored upstream.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusRejected = "rejected"
)

type PreferenceItem struct {
	Title      string  `json:"title"`
	PictureURL string  `json:"picture_url,omitempty"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id,omitempty"`
}

type PayerPhone struct {
	AreaCode string `json:"area_code,omitempty"`
	Number   string `json:"number,omitempty"`
}

type PayerAddress struct {
	ZipCode      string `json:"zip_code,omitempty"`
	StreetName   string `json:"street_name,omitempty"`
	StreetNumber string `json:"street_number,omitempty"`
}

type PreferencePayer struct {
	Name    string        `json:"name,omitempty"`
	Email   string        `json:"email"`
	Phone   *PayerPhone   `json:"phone,omitempty"`
	Address *PayerAddress `json:"address,omitempty"`
}

type BackURLs struct {
	Success string `json:"success,omitempty"`
	Pending string `json:"pending,omitempty"`
	Failure string `json:"failure,omitempty"`
}

// PreferenceRequest is the payload for POST /checkout/preferences.
type PreferenceRequest struct {
	Items               []PreferenceItem `json:"items"`
	Payer               *PreferencePayer `json:"payer,omitempty"`
	BackURLs            *BackURLs        `json:"back_urls,omitempty"`
	AutoReturn          string           `json:"auto_return,omitempty"`
	NotificationURL     string           `json:"notification_url,omitempty"`
	ExternalReference   string           `json:"external_reference,omitempty"`
	StatementDescriptor string           `json:"statement_descriptor,omitempty"`
}

// Preference is the subset of the create-preference response the storefront
// needs: the hosted checkout URLs and the correlation reference.
type Preference struct {
	ID                string `json:"id"`
	InitPoint         string `json:"init_point"`
	SandboxInitPoint  string `json:"sandbox_init_point"`
	ExternalReference string `json:"external_reference"`
}

type PaymentPayer struct {
	Email string `json:"email"`
}

// Payment is the subset of GET /v1/payments/{id} the webhook flow reads. The
// webhook body itself is never trusted to carry payment data; everything is
// re-fetched by id.
type Payment struct {
	ID                int64        `json:"id"`
	Status            string       `json:"status"`
	StatusDetail      string       `json:"status_detail"`
	ExternalReference string       `json:"external_reference"`
	TransactionAmount float64      `json:"transaction_amount"`
	PaymentMethodID   string       `json:"payment_method_id"`
	PaymentTypeID     string       `json:"payment_type_id"`
	DateApproved      string       `json:"date_approved,omitempty"`
	Payer             PaymentPayer `json:"payer"`
}
