package possync

// PubSubPushEnvelope is the Pub/Sub push delivery wrapper. The data field is
// base64 on the wire; []byte unmarshalling decodes it.
type PubSubPushEnvelope struct {
	Message struct {
		Data []byte `json:"data"`
		ID   string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// OrderEvent is one POS order as published by the POS vendor. Amounts are
// wire strings, never floats.
type OrderEvent struct {
	OrderNumber    string `json:"order_number"`
	OutletId       string `json:"outlet_id"`
	OrderType      string `json:"order_type"`
	PaymentMethod  string `json:"payment_method"`
	OrderDate      string `json:"order_date"`
	GrossAmount    string `json:"gross_amount"`
	DiscountAmount string `json:"discount_amount"`
	Status         string `json:"status"`
}
