package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/queue"
)

type fakeLeadRepo struct {
	created []*entity.Lead
	failing bool
}

func (f *fakeLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	if f.failing {
		return errors.New("db down")
	}
	f.created = append(f.created, lead)
	return nil
}

func (f *fakeLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	for _, l := range f.created {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, entity.ErrLeadNotFound
}

func (f *fakeLeadRepo) FindByUserID(ctx context.Context, userID string) ([]*entity.Lead, error) {
	return f.created, nil
}

func (f *fakeLeadRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }

type fakeWebsiteRepo struct {
	settings map[string]*entity.WebsiteSettings
}

func (f *fakeWebsiteRepo) FindSettingsBySlug(ctx context.Context, slug string) (*entity.WebsiteSettings, error) {
	s, ok := f.settings[slug]
	if !ok {
		return nil, entity.ErrSiteNotFound
	}
	return s, nil
}

func (f *fakeWebsiteRepo) FindSettingsByUserID(ctx context.Context, userID string) (*entity.WebsiteSettings, error) {
	return nil, entity.ErrSiteNotFound
}

func (f *fakeWebsiteRepo) UpsertSettings(ctx context.Context, s *entity.WebsiteSettings) error {
	return nil
}

func (f *fakeWebsiteRepo) FindHomepage(ctx context.Context, userID string) (*entity.WebsitePage, error) {
	return nil, entity.ErrPageNotFound
}

func (f *fakeWebsiteRepo) FindPageBySlug(ctx context.Context, userID, slug string) (*entity.WebsitePage, error) {
	return nil, entity.ErrPageNotFound
}

func (f *fakeWebsiteRepo) FindPagesByUserID(ctx context.Context, userID string) ([]*entity.WebsitePage, error) {
	return nil, nil
}

func (f *fakeWebsiteRepo) UpsertPage(ctx context.Context, p *entity.WebsitePage) error { return nil }

type fakeProducer struct {
	published []queue.LeadCapturedPayload
	failing   bool
}

func (f *fakeProducer) PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error {
	if f.failing {
		return errors.New("broker down")
	}
	f.published = append(f.published, payload)
	return nil
}

func captureFixture() (*LeadHandler, *fakeLeadRepo, *fakeProducer) {
	leads := &fakeLeadRepo{}
	producer := &fakeProducer{}
	sites := &fakeWebsiteRepo{settings: map[string]*entity.WebsiteSettings{
		"ace-plumbing": {UserID: "user-1", Slug: "ace-plumbing", Published: true},
		"hidden-site":  {UserID: "user-2", Slug: "hidden-site", Published: false},
	}}
	profiles := &fakeProfileRepo{profiles: map[string]*entity.Profile{
		"acct_1": {ID: "user-1"},
	}}
	handler := NewLeadHandler(leads, &fakeMessageRepo{}, sites, profiles, producer)
	return handler, leads, producer
}

type fakeMessageRepo struct{}

func (f *fakeMessageRepo) Create(ctx context.Context, msg *entity.LeadMessage) error { return nil }

func (f *fakeMessageRepo) FindByLeadID(ctx context.Context, leadID string) ([]*entity.LeadMessage, error) {
	return nil, nil
}

func captureRequest(slug, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/public/sites/"+slug+"/leads", bytes.NewBufferString(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("siteSlug", slug)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCaptureFromSite_CreatesLeadAndPublishes(t *testing.T) {
	handler, leads, producer := captureFixture()

	w := httptest.NewRecorder()
	handler.CaptureFromSite(w, captureRequest("ace-plumbing", `{"name":"Dana","email":"dana@example.com","service_requested":"water heater"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, leads.created, 1)
	assert.Equal(t, "user-1", leads.created[0].UserID)
	assert.Equal(t, "water heater", leads.created[0].ServiceRequested)
	assert.Len(t, producer.published, 1)
	assert.Equal(t, leads.created[0].ID, producer.published[0].LeadID)
}

func directCaptureRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewBufferString(body))
}

func TestCapture_CreatesLeadForUser(t *testing.T) {
	handler, leads, producer := captureFixture()

	w := httptest.NewRecorder()
	handler.Capture(w, directCaptureRequest(`{"user_id":"user-1","name":"Dana","email":"dana@example.com","service_requested":"water heater"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, leads.created, 1)
	assert.Equal(t, "user-1", leads.created[0].UserID)
	assert.Len(t, producer.published, 1)

	var body map[string]*entity.Lead
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, leads.created[0].ID, body["lead"].ID)
	assert.Equal(t, entity.LeadStatusNew, body["lead"].Status)
}

func TestCapture_UnknownUserIs404(t *testing.T) {
	handler, leads, _ := captureFixture()

	w := httptest.NewRecorder()
	handler.Capture(w, directCaptureRequest(`{"user_id":"user-ghost","name":"Dana","email":"dana@example.com"}`))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, leads.created)
}

func TestCapture_MissingUserIDRejected(t *testing.T) {
	handler, leads, _ := captureFixture()

	w := httptest.NewRecorder()
	handler.Capture(w, directCaptureRequest(`{"name":"Dana","email":"dana@example.com"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, leads.created)
}

func TestCapture_WorksWithoutPublishedSite(t *testing.T) {
	handler, leads, _ := captureFixture()
	handler.Sites = &fakeWebsiteRepo{settings: map[string]*entity.WebsiteSettings{}}

	// Direct intake does not depend on the merchant having a site.
	w := httptest.NewRecorder()
	handler.Capture(w, directCaptureRequest(`{"user_id":"user-1","name":"Dana","email":"dana@example.com"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, leads.created, 1)
}

func TestCaptureFromSite_UnpublishedSiteIs404(t *testing.T) {
	handler, leads, _ := captureFixture()

	w := httptest.NewRecorder()
	handler.CaptureFromSite(w, captureRequest("hidden-site", `{"name":"Dana","email":"dana@example.com"}`))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, leads.created)
}

func TestCaptureFromSite_BrokerOutageStillCapturesLead(t *testing.T) {
	handler, leads, producer := captureFixture()
	producer.failing = true

	w := httptest.NewRecorder()
	handler.CaptureFromSite(w, captureRequest("ace-plumbing", `{"name":"Dana","email":"dana@example.com"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, leads.created, 1)
}

func TestCaptureFromSite_MissingEmailRejected(t *testing.T) {
	handler, leads, _ := captureFixture()

	w := httptest.NewRecorder()
	handler.CaptureFromSite(w, captureRequest("ace-plumbing", `{"name":"Dana"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, leads.created)
}

func TestCaptureFromSite_RateLimited(t *testing.T) {
	handler, _, _ := captureFixture()

	var lastCode int
	for i := 0; i < 12; i++ {
		w := httptest.NewRecorder()
		req := captureRequest("ace-plumbing", `{"name":"Dana","email":"dana@example.com"}`)
		req.RemoteAddr = "203.0.113.9:1234"
		handler.CaptureFromSite(w, req)
		lastCode = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
