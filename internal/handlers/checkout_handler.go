package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/winshop/winshop/internal/models"
	"github.com/winshop/winshop/internal/payment"
)

// CheckoutHandler creates card checkout sessions at the payment gateway.
type CheckoutHandler struct {
	client payment.CheckoutClient
}

func NewCheckoutHandler(client payment.CheckoutClient) *CheckoutHandler {
	return &CheckoutHandler{client: client}
}

type checkoutSessionRequest struct {
	Items     []models.OrderItem `json:"items"`
	OrderData struct {
		Customer models.Customer `json:"customer"`
	} `json:"orderData"`
}

// CreateSession handles POST /api/checkout/session. Gateway failures come
// back as a generic error; there is no retry.
func (h *CheckoutHandler) CreateSession(c echo.Context) error {
	var req checkoutSessionRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Corps de requête vide")
	}
	if len(req.Items) == 0 {
		return respondError(c, http.StatusBadRequest, "Panier vide")
	}

	session, err := h.client.CreateSession(c.Request().Context(), req.Items, req.OrderData.Customer)
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			return respondError(c, http.StatusInternalServerError, "paiement par carte indisponible")
		}
		return respondError(c, http.StatusInternalServerError, "internal server error")
	}

	return respondData(c, http.StatusOK, session)
}
