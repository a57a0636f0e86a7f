package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"course-marketplace/internal/domain"
	"course-marketplace/internal/domain/model"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeDomainError maps the error taxonomy to HTTP statuses. Messages stay
// generic; in particular a signature mismatch never echoes anything derived
// from the expected digest.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "missing or invalid credentials")
	case errors.Is(err, domain.ErrCourseNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidSignature):
		writeError(w, http.StatusBadRequest, "Invalid signature")
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrPaymentsEnabled):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, domain.ErrGatewayError):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// basketRequest is the loose client shape: exactly one of courseId /
// courseIds populated. NewBasket normalizes it.
type basketRequest struct {
	CourseID  string   `json:"courseId"`
	CourseIDs []string `json:"courseIds"`
}

func (r basketRequest) basket() (*model.Basket, error) {
	return model.NewBasket(r.CourseID, r.CourseIDs)
}

type verifyRequest struct {
	RazorpayOrderID   string   `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string   `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string   `json:"razorpay_signature" validate:"required"`
	CourseID          string   `json:"courseId"`
	CourseIDs         []string `json:"courseIds"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFrom(r.Context())

	var req basketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	basket, err := req.basket()
	if err != nil {
		writeError(w, http.StatusBadRequest, "courseId or courseIds required")
		return
	}

	if s.limiter != nil {
		ok, lerr := s.limiter.AllowOrder(r.Context(), ident.UserID)
		if lerr != nil {
			// Limiter outage must not block checkout; log and continue.
			s.log.Warn().Err(lerr).Msg("order rate limiter unavailable")
		} else if !ok {
			writeDomainError(w, domain.ErrRateLimited)
			return
		}
	}

	order, err := s.checkoutUC.CreateOrder(r.Context(), basket)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFrom(r.Context())

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeDomainError(w, domain.ErrMissingFields)
		return
	}
	basket, err := model.NewBasket(req.CourseID, req.CourseIDs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "courseId or courseIds required")
		return
	}

	cb := model.PaymentCallback{
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
	}
	if err := s.entitlementUC.VerifyAndGrant(r.Context(), ident.UserID, cb, basket); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleFreeEnroll(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFrom(r.Context())

	var req basketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	basket, err := req.basket()
	if err != nil {
		writeError(w, http.StatusBadRequest, "courseId or courseIds required")
		return
	}

	if err := s.entitlementUC.FreeEnroll(r.Context(), ident.UserID, basket); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.catalogUC.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	type courseOut struct {
		ID    string  `json:"id"`
		Title string  `json:"title"`
		Price float64 `json:"price"`
	}
	out := make([]courseOut, 0, len(courses))
	for _, c := range courses {
		out = append(out, courseOut{ID: c.ID, Title: c.Title, Price: c.Price})
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsUC.Get(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	settings, err := s.settingsUC.Update(r.Context(), fields)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "unknown or malformed settings field")
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleMyEntitlements(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFrom(r.Context())

	set, err := s.entitlementUC.EntitlementsFor(r.Context(), ident.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleAccessCheck(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFrom(r.Context())

	courseID := chi.URLParam(r, "courseID")
	if courseID == "" {
		writeError(w, http.StatusBadRequest, "course id required")
		return
	}
	allowed, err := s.entitlementUC.HasAccess(r.Context(), ident.UserID, courseID, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"allowed": allowed})
}
