package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eagd-org/donation-server/internal/domain"
	"github.com/eagd-org/donation-server/internal/middleware"
	"github.com/eagd-org/donation-server/internal/store"
)

type donationCreateRequest struct {
	FullName        string   `json:"full_name"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email"`
	City            string   `json:"city"`
	Address         string   `json:"address"`
	HelpOptions     []string `json:"help_options"`
	DeviceType      string   `json:"device_type"`
	DeviceCondition string   `json:"device_condition"`
	DeviceBrand     string   `json:"device_brand"`
	DeviceModel     string   `json:"device_model"`
	DeviceContent   string   `json:"device_content"`
	EstimatedValue  string   `json:"estimated_value"`
	DeviceAge       string   `json:"device_age"`
	Message         string   `json:"message"`
	PrivacyPolicy   bool     `json:"privacy_policy"`
}

func (req *donationCreateRequest) validate() *domain.ValidationError {
	if len(strings.TrimSpace(req.FullName)) < 2 {
		return domain.NewValidationError("full_name", "min_length")
	}
	if len(strings.TrimSpace(req.Phone)) < 10 {
		return domain.NewValidationError("phone", "min_length")
	}
	if !req.PrivacyPolicy {
		return domain.NewValidationError("privacy_policy", "required")
	}
	for _, opt := range req.HelpOptions {
		if !domain.HelpOption(opt).Valid() {
			return domain.NewValidationError("help_options", "invalid")
		}
	}
	if !domain.DeviceType(req.DeviceType).Valid() {
		return domain.NewValidationError("device_type", "invalid")
	}
	if !domain.DeviceCondition(req.DeviceCondition).Valid() {
		return domain.NewValidationError("device_condition", "invalid")
	}
	if !domain.EstimatedValue(req.EstimatedValue).Valid() {
		return domain.NewValidationError("estimated_value", "invalid")
	}
	if !domain.DeviceAge(req.DeviceAge).Valid() {
		return domain.NewValidationError("device_age", "invalid")
	}
	return nil
}

// DonationsCreate handles the public submission endpoint. Every accepted
// record starts in pending status with equal creation and update timestamps.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if ve := req.validate(); ve != nil {
		a.validationError(w, r, ve)
		return
	}

	now := time.Now().UTC()
	donation := &domain.Donation{
		ID:              uuid.NewString(),
		FullName:        strings.TrimSpace(req.FullName),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		City:            req.City,
		Address:         req.Address,
		HelpOptions:     req.HelpOptions,
		DeviceType:      domain.DeviceType(req.DeviceType),
		DeviceCondition: domain.DeviceCondition(req.DeviceCondition),
		DeviceBrand:     req.DeviceBrand,
		DeviceModel:     req.DeviceModel,
		DeviceContent:   req.DeviceContent,
		EstimatedValue:  domain.EstimatedValue(req.EstimatedValue),
		DeviceAge:       domain.DeviceAge(req.DeviceAge),
		Message:         req.Message,
		PrivacyPolicy:   req.PrivacyPolicy,
		Status:          domain.StatusPending,
		SourceCountry:   a.resolveCountry(r),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if donation.HelpOptions == nil {
		donation.HelpOptions = []string{}
	}

	if err := a.Donations.Create(r.Context(), donation); err != nil {
		a.Logger.Error().Err(err).Msg("create donation failed")
		a.error(w, http.StatusInternalServerError, "Failed to create donation")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"success":     true,
		"message":     "Donation submitted successfully",
		"donation_id": donation.ID,
	})
}

// resolveCountry stamps the submission with a best-effort source country.
// Lookup failures are ignored; the field is a triage aid, not data the donor
// supplied.
func (a *App) resolveCountry(r *http.Request) string {
	if a.GeoIP == nil {
		return ""
	}
	ip := middleware.ClientIP(r)
	if ip == "" {
		return ""
	}
	country, err := a.GeoIP.CountryCode(ip)
	if err != nil {
		return ""
	}
	return country
}

type paginationDTO struct {
	Current int   `json:"current"`
	Pages   int64 `json:"pages"`
	Total   int64 `json:"total"`
}

// DonationsList returns one page of records plus pagination math for the
// admin console.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := store.ListDonationsParams{
		Page:   parseIntDefault(q.Get("page"), 1),
		Limit:  parseIntDefault(q.Get("limit"), 10),
		SortBy: q.Get("sortBy"),
	}
	if q.Get("sortOrder") == "asc" {
		params.SortOrder = store.SortAsc
	} else {
		params.SortOrder = store.SortDesc
	}
	if status := q.Get("status"); status != "" {
		if !domain.Status(status).Valid() {
			a.validationError(w, r, domain.NewValidationError("status", "invalid"))
			return
		}
		params.Status = domain.Status(status)
	}

	donations, total, err := a.Donations.List(r.Context(), params)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "Failed to fetch donations")
		return
	}

	limit := params.Limit
	if limit < 1 {
		limit = 10
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	pages := (total + int64(limit) - 1) / int64(limit)

	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    donations,
		"pagination": paginationDTO{
			Current: page,
			Pages:   pages,
			Total:   total,
		},
	})
}

// DonationsGet returns a single record by id.
func (a *App) DonationsGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	donation, err := a.Donations.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "Donation not found")
			return
		}
		a.Logger.Error().Err(err).Str("id", id).Msg("get donation failed")
		a.error(w, http.StatusInternalServerError, "Failed to fetch donation")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true, "data": donation})
}

type donationUpdateRequest struct {
	FullName        *string   `json:"full_name"`
	Phone           *string   `json:"phone"`
	Email           *string   `json:"email"`
	City            *string   `json:"city"`
	Address         *string   `json:"address"`
	HelpOptions     *[]string `json:"help_options"`
	DeviceType      *string   `json:"device_type"`
	DeviceCondition *string   `json:"device_condition"`
	DeviceBrand     *string   `json:"device_brand"`
	DeviceModel     *string   `json:"device_model"`
	DeviceContent   *string   `json:"device_content"`
	EstimatedValue  *string   `json:"estimated_value"`
	DeviceAge       *string   `json:"device_age"`
	Message         *string   `json:"message"`
	Status          *string   `json:"status"`
	AdminNotes      *string   `json:"admin_notes"`
}

func (req *donationUpdateRequest) validate() *domain.ValidationError {
	if req.Status != nil && !domain.Status(*req.Status).Valid() {
		return domain.NewValidationError("status", "invalid")
	}
	if req.AdminNotes != nil && len(*req.AdminNotes) > domain.MaxAdminNotesLen {
		return domain.NewValidationError("admin_notes", "max_length")
	}
	if req.FullName != nil && len(strings.TrimSpace(*req.FullName)) < 2 {
		return domain.NewValidationError("full_name", "min_length")
	}
	if req.Phone != nil && len(strings.TrimSpace(*req.Phone)) < 10 {
		return domain.NewValidationError("phone", "min_length")
	}
	if req.HelpOptions != nil {
		for _, opt := range *req.HelpOptions {
			if !domain.HelpOption(opt).Valid() {
				return domain.NewValidationError("help_options", "invalid")
			}
		}
	}
	if req.DeviceType != nil && !domain.DeviceType(*req.DeviceType).Valid() {
		return domain.NewValidationError("device_type", "invalid")
	}
	if req.DeviceCondition != nil && !domain.DeviceCondition(*req.DeviceCondition).Valid() {
		return domain.NewValidationError("device_condition", "invalid")
	}
	if req.EstimatedValue != nil && !domain.EstimatedValue(*req.EstimatedValue).Valid() {
		return domain.NewValidationError("estimated_value", "invalid")
	}
	if req.DeviceAge != nil && !domain.DeviceAge(*req.DeviceAge).Valid() {
		return domain.NewValidationError("device_age", "invalid")
	}
	return nil
}

func (req *donationUpdateRequest) toParams() store.UpdateDonationParams {
	params := store.UpdateDonationParams{
		FullName:      req.FullName,
		Phone:         req.Phone,
		Email:         req.Email,
		City:          req.City,
		Address:       req.Address,
		HelpOptions:   req.HelpOptions,
		DeviceBrand:   req.DeviceBrand,
		DeviceModel:   req.DeviceModel,
		DeviceContent: req.DeviceContent,
		Message:       req.Message,
		AdminNotes:    req.AdminNotes,
	}
	if req.DeviceType != nil {
		v := domain.DeviceType(*req.DeviceType)
		params.DeviceType = &v
	}
	if req.DeviceCondition != nil {
		v := domain.DeviceCondition(*req.DeviceCondition)
		params.DeviceCondition = &v
	}
	if req.EstimatedValue != nil {
		v := domain.EstimatedValue(*req.EstimatedValue)
		params.EstimatedValue = &v
	}
	if req.DeviceAge != nil {
		v := domain.DeviceAge(*req.DeviceAge)
		params.DeviceAge = &v
	}
	if req.Status != nil {
		v := domain.Status(*req.Status)
		params.Status = &v
	}
	return params
}

// DonationsUpdate merges the provided fields into a record. The update
// timestamp is refreshed even when the payload changes nothing else.
func (a *App) DonationsUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req donationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if ve := req.validate(); ve != nil {
		a.validationError(w, r, ve)
		return
	}

	donation, err := a.Donations.Update(r.Context(), id, req.toParams())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "Donation not found")
			return
		}
		a.Logger.Error().Err(err).Str("id", id).Msg("update donation failed")
		a.error(w, http.StatusInternalServerError, "Failed to update donation")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Donation updated successfully",
		"data":    donation,
	})
}

// DonationsDelete removes a record.
func (a *App) DonationsDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.Donations.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "Donation not found")
			return
		}
		a.Logger.Error().Err(err).Str("id", id).Msg("delete donation failed")
		a.error(w, http.StatusInternalServerError, "Failed to delete donation")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Donation deleted successfully",
	})
}

// DonationsStatsSummary returns counts grouped by lifecycle status.
func (a *App) DonationsStatsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Donations.StatsSummary(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("stats summary failed")
		a.error(w, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true, "data": summary})
}

func parseIntDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
