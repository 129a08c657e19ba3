package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luminett/booking-api/internal/api/metrics"
	"github.com/luminett/booking-api/internal/core/ports"
)

// QuoteHandler handles HTTP requests for quotes and invoices.
type QuoteHandler struct {
	service ports.QuoteService
}

func NewQuoteHandler(service ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// Create handles POST /quotes (admin only).
//
// @Summary      Create a quote or invoice
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createQuoteRequest  true  "Quote details"
// @Success      201   {object}  domain.Quote
// @Failure      400   {object}  errorResponse
// @Router       /quotes [post]
func (h *QuoteHandler) Create(c echo.Context) error {
	var req createQuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]ports.QuoteItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.QuoteItemInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	quote, err := h.service.Create(c.Request().Context(), ports.CreateQuoteInput{
		Type:        req.Type,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Items:       items,
		TaxRate:     req.TaxRate,
		Notes:       req.Notes,
		ValidUntil:  req.ValidUntil,
		OrderID:     req.OrderID,
	})
	if err != nil {
		return err
	}

	metrics.QuotesCreatedTotal.WithLabelValues(string(quote.Type)).Inc()
	return c.JSON(http.StatusCreated, quote)
}

// List handles GET /quotes (admin only).
//
// @Summary      List all quotes and invoices
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Quote
// @Router       /quotes [get]
func (h *QuoteHandler) List(c echo.Context) error {
	quotes, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quotes)
}

// ListMine handles GET /client/quotes for the authenticated client.
//
// @Summary      List the authenticated client's quotes
// @Tags         client
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Quote
// @Failure      401  {object}  errorResponse
// @Router       /client/quotes [get]
func (h *QuoteHandler) ListMine(c echo.Context) error {
	email, err := clientEmail(c)
	if err != nil {
		return err
	}
	quotes, err := h.service.ListByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quotes)
}

// UpdateStatus handles PATCH /quotes/:id/status (admin only).
//
// @Summary      Transition a quote's status
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Quote id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Quote
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /quotes/{id}/status [patch]
func (h *QuoteHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	quote, err := h.service.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quote)
}

// Sign handles PATCH /client/quotes/:id/sign. Only the client the quote is
// addressed to may sign it, and only once.
//
// @Summary      Electronically sign a quote
// @Tags         client
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Quote id"
// @Success      200  {object}  domain.Quote
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /client/quotes/{id}/sign [patch]
func (h *QuoteHandler) Sign(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	email, err := clientEmail(c)
	if err != nil {
		return err
	}

	quote, err := h.service.Sign(c.Request().Context(), id, email)
	if err != nil {
		return err
	}

	metrics.QuotesSignedTotal.Inc()
	return c.JSON(http.StatusOK, quote)
}

// Delete handles DELETE /quotes/:id (admin only).
//
// @Summary      Delete a quote
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Quote id"
// @Success      200  {object}  deleteResponse
// @Failure      404  {object}  errorResponse
// @Router       /quotes/{id} [delete]
func (h *QuoteHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{Success: true})
}
