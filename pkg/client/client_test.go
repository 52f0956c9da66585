package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eagd-org/donation-server/internal/domain"
)

func validSubmission() DonationSubmission {
	return DonationSubmission{
		FullName:      "Ayşe Yılmaz",
		Phone:         "+905551112233",
		HelpOptions:   []string{"donate_device"},
		DeviceType:    "laptop",
		PrivacyPolicy: true,
	}
}

// newFakeAPI runs a scripted HTTP server standing in for the donation API.
func newFakeAPI(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginStoresTokenInMemory(t *testing.T) {
	srv := newFakeAPI(t, map[string]http.HandlerFunc{
		"/api/admin/login": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ops", body["username"])

			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"token":   "issued-token",
				"admin":   AdminInfo{ID: "adm-1", Username: "ops", Role: "super_admin"},
			})
		},
	})

	c := New(Config{BaseURL: srv.URL})
	require.Empty(t, c.Token())

	admin, err := c.Login(context.Background(), "ops", "Directory1!")
	require.NoError(t, err)
	assert.Equal(t, "ops", admin.Username)
	assert.Equal(t, "issued-token", c.Token())

	c.Logout()
	assert.Empty(t, c.Token())
}

func TestLoginFailureLeavesNoToken(t *testing.T) {
	srv := newFakeAPI(t, map[string]http.HandlerFunc{
		"/api/admin/login": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		},
	})

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Login(context.Background(), "ops", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Empty(t, c.Token())
}

func TestAdminRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	srv := newFakeAPI(t, map[string]http.HandlerFunc{
		"/api/admin/verify": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"admin":   AdminInfo{Username: "ops"},
			})
		},
	})

	c := New(Config{BaseURL: srv.URL})
	c.setToken("held-token")

	admin, err := c.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ops", admin.Username)
	assert.Equal(t, "Bearer held-token", gotAuth)
}

func TestSubmitDonation(t *testing.T) {
	srv := newFakeAPI(t, map[string]http.HandlerFunc{
		"/api/donations": func(w http.ResponseWriter, r *http.Request) {
			var body DonationSubmission
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Ayşe Yılmaz", body.FullName)
			// Public endpoint: no token should be attached.
			assert.Empty(t, r.Header.Get("Authorization"))

			writeJSON(w, http.StatusCreated, map[string]any{
				"success":     true,
				"donation_id": "don-1",
			})
		},
	})

	c := New(Config{BaseURL: srv.URL})
	id, err := c.SubmitDonation(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, "don-1", id)
}

func TestSubmitDonationRejectedLocally(t *testing.T) {
	// No server: local validation must fail before any request is made.
	c := New(Config{BaseURL: "http://127.0.0.1:1"})

	sub := validSubmission()
	sub.PrivacyPolicy = false
	_, err := c.SubmitDonation(context.Background(), sub)
	assert.ErrorContains(t, err, "privacy_policy")

	sub = validSubmission()
	sub.FullName = "A"
	_, err = c.SubmitDonation(context.Background(), sub)
	assert.ErrorContains(t, err, "full_name")

	sub = validSubmission()
	sub.DeviceType = "fridge"
	_, err = c.SubmitDonation(context.Background(), sub)
	assert.ErrorContains(t, err, "device type")
}

func TestListDonations(t *testing.T) {
	srv := newFakeAPI(t, map[string]http.HandlerFunc{
		"/api/donations": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "pending", q.Get("status"))
			assert.Equal(t, "2", q.Get("page"))
			assert.Equal(t, "25", q.Get("limit"))
			assert.Equal(t, "updated_at", q.Get("sortBy"))
			assert.Equal(t, "asc", q.Get("sortOrder"))

			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"data":    []domain.Donation{{ID: "don-1"}, {ID: "don-2"}},
				"pagination": Pagination{Current: 2, Pages: 4, Total: 80},
			})
		},
	})

	c := New(Config{BaseURL: srv.URL})
	page, err := c.ListDonations(context.Background(), ListOptions{
		Status:    "pending",
		Page:      2,
		Limit:     25,
		SortBy:    "updated_at",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "don-1", page.Data[0].ID)
	assert.EqualValues(t, 80, page.Pagination.Total)
}

func TestGetUpdateDeleteDonation(t *testing.T) {
	status := "completed"
	deleted := false
	srv := newFakeAPI(t, map[string]http.HandlerFunc{
		"/api/donations/don-1": func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				writeJSON(w, http.StatusOK, map[string]any{
					"success": true,
					"data":    domain.Donation{ID: "don-1", Status: domain.StatusPending},
				})
			case http.MethodPut:
				var body DonationUpdate
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				require.NotNil(t, body.Status)
				assert.Equal(t, "completed", *body.Status)
				assert.Nil(t, body.AdminNotes)
				writeJSON(w, http.StatusOK, map[string]any{
					"success": true,
					"data":    domain.Donation{ID: "don-1", Status: domain.StatusCompleted},
				})
			case http.MethodDelete:
				deleted = true
				writeJSON(w, http.StatusOK, map[string]any{"success": true})
			}
		},
	})

	c := New(Config{BaseURL: srv.URL})

	donation, err := c.GetDonation(context.Background(), "don-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, donation.Status)

	donation, err = c.UpdateDonation(context.Background(), "don-1", DonationUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, donation.Status)

	require.NoError(t, c.DeleteDonation(context.Background(), "don-1"))
	assert.True(t, deleted)
}

func TestGetDonationNotFound(t *testing.T) {
	srv := newFakeAPI(t, map[string]http.HandlerFunc{
		"/api/donations/missing": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Donation not found"})
		},
	})

	c := New(Config{BaseURL: srv.URL})
	_, err := c.GetDonation(context.Background(), "missing")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Donation not found", apiErr.Message)
}

func TestStats(t *testing.T) {
	srv := newFakeAPI(t, map[string]http.HandlerFunc{
		"/api/donations/stats/summary": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"data":    domain.StatsSummary{Total: 10, Pending: 4, Completed: 6},
			})
		},
	})

	c := New(Config{BaseURL: srv.URL})
	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 10, stats.Total)
	assert.EqualValues(t, 4, stats.Pending)
	assert.EqualValues(t, 6, stats.Completed)
}

func TestLocaleHeader(t *testing.T) {
	var gotLocale string
	srv := newFakeAPI(t, map[string]http.HandlerFunc{
		"/api/donations": func(w http.ResponseWriter, r *http.Request) {
			gotLocale = r.Header.Get("X-Locale")
			writeJSON(w, http.StatusCreated, map[string]any{"success": true, "donation_id": "don-1"})
		},
	})

	c := New(Config{BaseURL: srv.URL, Locale: "en"})
	_, err := c.SubmitDonation(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, "en", gotLocale)
}
