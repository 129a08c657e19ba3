package handler

// --- Request types ---
// Responses serialize the domain entities directly; their JSON tags are the
// wire contract.

type createOrderRequest struct {
	Service     string `json:"service"     validate:"required,oneof=conteneurs domicile bureau travaux vitres"`
	ClientName  string `json:"clientName"  validate:"required"`
	ClientEmail string `json:"clientEmail" validate:"required,email"`
	ClientPhone string `json:"clientPhone" validate:"required"`
	Address     string `json:"address"     validate:"required"`
	Date        string `json:"date"        validate:"required"`
	TimeSlot    string `json:"timeSlot"    validate:"required"`
	SurfaceArea string `json:"surfaceArea"`
	Notes       string `json:"notes"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}
