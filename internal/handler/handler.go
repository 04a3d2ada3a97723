// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mehedihasan-dev/house-hunters-server/internal/auth"
	"github.com/mehedihasan-dev/house-hunters-server/internal/metrics"
	"github.com/mehedihasan-dev/house-hunters-server/internal/model"
	"github.com/mehedihasan-dev/house-hunters-server/internal/repository"
	"github.com/mehedihasan-dev/house-hunters-server/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: true, Message: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// requireEmailMatch enforces the ownership check: the verified token email
// must equal the path-parameter email. It writes 403 and reports false on a
// mismatch.
func requireEmailMatch(w http.ResponseWriter, r *http.Request) bool {
	if ClaimEmail(r.Context()) != chi.URLParam(r, "email") {
		writeError(w, http.StatusForbidden, "Forbidden Access")
		return false
	}
	return true
}

// ─── Root & health ────────────────────────────────────────────────────────────

// Root handles GET / with a plain-text liveness response.
func Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("House Hunters' Server is Running."))
}

// HealthCheck handles GET /health.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─── Identity handlers ────────────────────────────────────────────────────────

// AuthHandler holds the HTTP handlers for signup, login, and token issuing.
type AuthHandler struct {
	svc    *service.AuthService
	tokens *auth.TokenService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc *service.AuthService, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens}
}

// Signup handles POST /signup. A taken email yields 409 with the
// isEmailRegistered flag; success returns the stored user without the
// password hash.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			metrics.IncSignup("conflict")
			writeJSON(w, http.StatusConflict, model.SignupConflictResponse{IsEmailRegistered: true})
			return
		}
		metrics.IncSignup("invalid")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics.IncSignup("created")
	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /login. Failures carry no detail beyond
// isLoginSuccess:false.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	role, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.IncLogin("failure")
			writeJSON(w, http.StatusUnauthorized, model.LoginResponse{IsLoginSuccess: false})
			return
		}
		metrics.IncLogin("error")
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	metrics.IncLogin("success")
	writeJSON(w, http.StatusOK, model.LoginResponse{IsLoginSuccess: true, Role: role})
}

// IssueToken handles POST /jwt, signing a 1-hour token for the supplied
// email claim.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req model.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	token, err := h.tokens.Issue(req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, model.TokenResponse{Token: token})
}

// ─── House handlers ───────────────────────────────────────────────────────────

// HouseHandler holds the HTTP handlers for house CRUD.
type HouseHandler struct {
	svc *service.HouseService
}

// NewHouseHandler constructs a HouseHandler.
func NewHouseHandler(svc *service.HouseService) *HouseHandler {
	return &HouseHandler{svc: svc}
}

// Create handles POST /house-details.
func (h *HouseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateHouseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	house, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, house)
}

// ListPage handles GET /houses-details?skipNumber=N, returning a page of 12
// house cards ordered most-recent-first plus the total count of all houses.
func (h *HouseHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	skip := 0
	if raw := r.URL.Query().Get("skipNumber"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "skipNumber must be an integer")
			return
		}
		skip = n
	}

	cards, total, err := h.svc.ListPage(r.Context(), skip)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list houses")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if cards == nil {
		cards = []model.HouseCard{}
	}

	writeJSON(w, http.StatusOK, model.HousePage{Houses: cards, TotalCount: total})
}

// Get handles GET /house-details/{id}.
func (h *HouseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	house, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "house not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get house")
		return
	}

	writeJSON(w, http.StatusOK, house)
}

// ListByOwner handles GET /houses-details/{email}. The route is guarded by
// RequireToken; the handler enforces that the token email owns the path.
func (h *HouseHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	if !requireEmailMatch(w, r) {
		return
	}

	houses, err := h.svc.ListByOwner(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list houses")
		return
	}

	if houses == nil {
		houses = []model.House{}
	}
	writeJSON(w, http.StatusOK, houses)
}

// Update handles PUT /house-details/{id}, a full-field replace. An absent id
// matches zero records and still responds 200.
func (h *HouseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.CreateHouseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	modified, err := h.svc.Replace(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.UpdateResult{ModifiedCount: modified})
}

// Delete handles DELETE /house-details/{id}. An absent id deletes zero
// records and still responds 200.
func (h *HouseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete house")
		return
	}

	writeJSON(w, http.StatusOK, model.DeleteResult{DeletedCount: deleted})
}

// ─── Booking handlers ─────────────────────────────────────────────────────────

// BookingHandler holds the HTTP handlers for the booking workflow.
type BookingHandler struct {
	svc *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// Create handles POST /booked-house-details. Policy rejections keep their
// flag field names but ride on 409 rather than a flat 200.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.BookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	booking, err := h.svc.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTooManyBookings):
			metrics.IncBooking("too_many")
			writeJSON(w, http.StatusConflict, model.TooManyBookingsResponse{IsMoreThanTwo: true})
		case errors.Is(err, repository.ErrHouseBooked):
			metrics.IncBooking("house_booked")
			writeJSON(w, http.StatusConflict, model.HouseBookedResponse{IsHouseBooked: true})
		case errors.Is(err, repository.ErrNotFound):
			metrics.IncBooking("not_found")
			writeError(w, http.StatusNotFound, "renter or house not found")
		default:
			metrics.IncBooking("invalid")
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	metrics.IncBooking("created")
	writeJSON(w, http.StatusCreated, booking)
}

// ListByRenter handles GET /booked-houses-details/{email}. The route is
// guarded by RequireToken; the handler enforces the ownership check.
func (h *BookingHandler) ListByRenter(w http.ResponseWriter, r *http.Request) {
	if !requireEmailMatch(w, r) {
		return
	}

	bookings, err := h.svc.ListByRenter(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}

	if bookings == nil {
		bookings = []model.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// Delete handles DELETE /booked-house-details/{id}. An absent id deletes
// zero records and still responds 200.
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete booking")
		return
	}

	writeJSON(w, http.StatusOK, model.DeleteResult{DeletedCount: deleted})
}

// ─── Router ───────────────────────────────────────────────────────────────────

// NewRouter builds the full route table with the global middleware stack.
func NewRouter(authH *AuthHandler, houseH *HouseHandler, bookingH *BookingHandler, tokens *auth.TokenService) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger)                  // structured access log
	r.Use(CORS)                    // permissive CORS for the frontend

	r.Get("/", Root)
	r.Get("/health", HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/jwt", authH.IssueToken)
	r.Post("/signup", authH.Signup)
	r.Post("/login", authH.Login)

	r.Post("/house-details", houseH.Create)
	r.Get("/houses-details", houseH.ListPage)
	r.Get("/house-details/{id}", houseH.Get)
	r.With(RequireToken(tokens)).Get("/houses-details/{email}", houseH.ListByOwner)
	r.Put("/house-details/{id}", houseH.Update)
	r.Delete("/house-details/{id}", houseH.Delete)

	r.Post("/booked-house-details", bookingH.Create)
	r.With(RequireToken(tokens)).Get("/booked-houses-details/{email}", bookingH.ListByRenter)
	r.Delete("/booked-house-details/{id}", bookingH.Delete)

	return r
}
