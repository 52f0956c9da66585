package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eagd-org/donation-server/internal/domain"
	"github.com/eagd-org/donation-server/internal/middleware"
	"github.com/eagd-org/donation-server/internal/store"
)

// fakeDonationRepo is an in-memory DonationRepository with a stable insertion
// order, enough to exercise the handler layer without a database.
type fakeDonationRepo struct {
	donations []domain.Donation
	failWith  error
}

func (f *fakeDonationRepo) Create(_ context.Context, donation *domain.Donation) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.donations = append(f.donations, *donation)
	return nil
}

func (f *fakeDonationRepo) List(_ context.Context, params store.ListDonationsParams) ([]domain.Donation, int64, error) {
	if f.failWith != nil {
		return nil, 0, f.failWith
	}

	matched := []domain.Donation{}
	for _, d := range f.donations {
		if params.Status != "" && d.Status != params.Status {
			continue
		}
		matched = append(matched, d)
	}
	total := int64(len(matched))

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return []domain.Donation{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeDonationRepo) Get(_ context.Context, id string) (*domain.Donation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i := range f.donations {
		if f.donations[i].ID == id {
			d := f.donations[i]
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDonationRepo) Update(_ context.Context, id string, params store.UpdateDonationParams) (*domain.Donation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i := range f.donations {
		if f.donations[i].ID != id {
			continue
		}
		d := &f.donations[i]
		if params.Status != nil {
			d.Status = *params.Status
		}
		if params.AdminNotes != nil {
			d.AdminNotes = *params.AdminNotes
		}
		if params.FullName != nil {
			d.FullName = *params.FullName
		}
		if params.Phone != nil {
			d.Phone = *params.Phone
		}
		d.UpdatedAt = time.Now().UTC()
		copied := *d
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDonationRepo) Delete(_ context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	for i := range f.donations {
		if f.donations[i].ID == id {
			f.donations = append(f.donations[:i], f.donations[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeDonationRepo) StatsSummary(context.Context) (domain.StatsSummary, error) {
	if f.failWith != nil {
		return domain.StatsSummary{}, f.failWith
	}
	var summary domain.StatsSummary
	for _, d := range f.donations {
		switch d.Status {
		case domain.StatusPending:
			summary.Pending++
		case domain.StatusProcessing:
			summary.Processing++
		case domain.StatusCompleted:
			summary.Completed++
		case domain.StatusCancelled:
			summary.Cancelled++
		}
		summary.Total++
	}
	return summary, nil
}

// fakeGate scripts the auth service behind the handler layer.
type fakeGate struct {
	loginToken string
	loginAdmin *domain.Admin
	loginErr   error
	setupAdmin *domain.Admin
	setupErr   error
}

func (f *fakeGate) Login(context.Context, string, string) (string, *domain.Admin, error) {
	return f.loginToken, f.loginAdmin, f.loginErr
}

func (f *fakeGate) Verify(context.Context, string) (*domain.Admin, error) {
	return f.loginAdmin, f.loginErr
}

func (f *fakeGate) Setup(context.Context, string, string, string) (*domain.Admin, error) {
	return f.setupAdmin, f.setupErr
}

func newTestApp(donations *fakeDonationRepo, gate *fakeGate) *App {
	if gate == nil {
		gate = &fakeGate{}
	}
	return NewApp(donations, nil, gate, nil, zerolog.Nop())
}

// testRouter mounts the handlers the way the production router does, so
// chi URL params resolve.
func testRouter(app *App) chi.Router {
	r := chi.NewRouter()
	r.Post("/donations", app.DonationsCreate)
	r.Get("/donations", app.DonationsList)
	r.Get("/donations/stats/summary", app.DonationsStatsSummary)
	r.Get("/donations/{id}", app.DonationsGet)
	r.Put("/donations/{id}", app.DonationsUpdate)
	r.Delete("/donations/{id}", app.DonationsDelete)
	r.Post("/admin/login", app.AdminLogin)
	r.Post("/admin/setup", app.AdminSetup)
	r.Get("/admin/verify", app.AdminVerify)
	return r
}

func doJSON(t *testing.T, handler http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func newRawRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func validCreatePayload() map[string]any {
	return map[string]any{
		"full_name":        "Ayşe Yılmaz",
		"phone":            "+905551112233",
		"email":            "Ayse@Example.ORG",
		"city":             "İzmir",
		"help_options":     []string{"donate_device"},
		"device_type":      "laptop",
		"device_condition": "working",
		"estimated_value":  "500-1000",
		"device_age":       "1-3",
		"privacy_policy":   true,
	}
}

func seededDonation(id string, status domain.Status) domain.Donation {
	now := time.Now().UTC()
	return domain.Donation{
		ID:            id,
		FullName:      "Ayşe Yılmaz",
		Phone:         "+905551112233",
		HelpOptions:   []string{"donate_device"},
		PrivacyPolicy: true,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

var _ store.DonationRepository = (*fakeDonationRepo)(nil)
var _ AuthGate = (*fakeGate)(nil)
var _ middleware.AdminVerifier = (*fakeGate)(nil)
