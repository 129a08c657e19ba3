package handler

type quoteItemRequest struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity"    validate:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice"   validate:"gte=0"`
}

type createQuoteRequest struct {
	Type        string             `json:"type"        validate:"required,oneof=devis facture"`
	ClientName  string             `json:"clientName"  validate:"required"`
	ClientEmail string             `json:"clientEmail" validate:"required,email"`
	ClientPhone string             `json:"clientPhone"`
	Items       []quoteItemRequest `json:"items"       validate:"required,min=1,dive"`
	TaxRate     float64            `json:"taxRate"     validate:"gte=0"`
	Notes       string             `json:"notes"`
	ValidUntil  string             `json:"validUntil"`
	OrderID     int64              `json:"orderId"`
}
