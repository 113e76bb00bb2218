package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"eventify-api/domain"
)

type vendorRequest struct {
	Name          string  `json:"name"`
	ServiceType   string  `json:"serviceType"`
	ContactPhone  string  `json:"contactPhone"`
	ContactEmail  string  `json:"contactEmail"`
	Amount        float64 `json:"amount"`
	PaymentStatus string  `json:"paymentStatus"`
	Notes         string  `json:"notes"`
	EventID       string  `json:"eventId"`
}

func (r vendorRequest) validate() string {
	if r.Name == "" {
		return "name is required"
	}
	if r.ServiceType == "" {
		return "service type is required"
	}
	if r.Amount < 0 {
		return "amount must not be negative"
	}
	if !domain.ValidPaymentStatus(r.PaymentStatus) {
		return "invalid payment status"
	}
	return ""
}

func getVendors(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		vendors, err := store.FetchVendorsForUser(ctx, userID)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, vendors)
	}
}

func postVendor(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req vendorRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if msg := req.validate(); msg != "" {
			return c.String(http.StatusBadRequest, msg)
		}
		v := domain.Vendor{
			ID:            uuid.NewString(),
			Name:          req.Name,
			ServiceType:   req.ServiceType,
			ContactPhone:  req.ContactPhone,
			ContactEmail:  req.ContactEmail,
			Amount:        req.Amount,
			PaymentStatus: req.PaymentStatus,
			Notes:         req.Notes,
			EventID:       req.EventID,
			CreatedAt:     time.Now().UTC(),
		}
		if err := store.InsertVendor(ctx, userID, v); err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusCreated, v)
	}
}

func putVendor(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req vendorRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if msg := req.validate(); msg != "" {
			return c.String(http.StatusBadRequest, msg)
		}
		v := domain.Vendor{
			ID:            c.Param("vendorId"),
			Name:          req.Name,
			ServiceType:   req.ServiceType,
			ContactPhone:  req.ContactPhone,
			ContactEmail:  req.ContactEmail,
			Amount:        req.Amount,
			PaymentStatus: req.PaymentStatus,
			Notes:         req.Notes,
			EventID:       req.EventID,
		}
		if err := store.UpdateVendor(ctx, userID, v); err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, v)
	}
}

func deleteVendor(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		if err := store.DeleteVendor(ctx, userID, c.Param("vendorId")); err != nil {
			return storeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
