package controller_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/unclebandit/mailerbot-backend/internal/controller"
	"github.com/unclebandit/mailerbot-backend/internal/mailer"
	"github.com/unclebandit/mailerbot-backend/internal/model"
	"github.com/unclebandit/mailerbot-backend/internal/service"
)

// --- Mock repositories ---

type mockCampaignRepo struct {
	campaigns []*model.ScheduledCampaign
	processed map[int]int
}

func (m *mockCampaignRepo) ListPending(ctx context.Context) ([]*model.ScheduledCampaign, error) {
	return m.campaigns, nil
}

func (m *mockCampaignRepo) MarkProcessed(ctx context.Context, id, totalSentMails int) error {
	if m.processed == nil {
		m.processed = map[int]int{}
	}
	m.processed[id] = totalSentMails
	return nil
}

func (m *mockCampaignRepo) AcquireDispatchLock(ctx context.Context) (func(), bool, error) {
	return func() {}, true, nil
}

type mockRecipientRepo struct {
	recipients map[string][]model.Recipient
}

func (m *mockRecipientRepo) ListEligible(ctx context.Context, campaignID string) ([]model.Recipient, error) {
	return m.recipients[campaignID], nil
}

func (m *mockRecipientRepo) StampProcessed(ctx context.Context, campaignID, contentID, salesPersonName string) (int64, error) {
	return int64(len(m.recipients[campaignID])), nil
}

type mockContentRepo struct {
	contents map[string]*model.Content
}

func (m *mockContentRepo) GetByID(ctx context.Context, contentID string) (*model.Content, error) {
	return m.contents[contentID], nil
}

type mockSalesPersonRepo struct {
	people map[string]*model.SalesPerson
}

func (m *mockSalesPersonRepo) GetByName(ctx context.Context, name string) (*model.SalesPerson, error) {
	return m.people[name], nil
}

type mockSender struct {
	bulkCalls int
	reports   int
}

func (m *mockSender) SendBulk(ctx context.Context, msgs []model.OutboundMessage) error {
	m.bulkCalls++
	return nil
}

func (m *mockSender) SendDispatchReport(ctx context.Context, campaignID, contentID string, mailCount int, senderAddr string) error {
	m.reports++
	return nil
}

type mockProvider struct {
	notifications []mailer.Notification
}

func (m *mockProvider) SendChunk(ctx context.Context, msgs []model.OutboundMessage) error {
	return nil
}

func (m *mockProvider) SendNotification(ctx context.Context, n mailer.Notification) error {
	m.notifications = append(m.notifications, n)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Tests ---

func TestExtractDataNoCampaigns(t *testing.T) {
	svc := &service.DispatchService{
		Campaigns:   &mockCampaignRepo{},
		Recipients:  &mockRecipientRepo{},
		Contents:    &mockContentRepo{},
		SalesPeople: &mockSalesPersonRepo{},
		Sender:      &mockSender{},
		Log:         discardLogger(),
	}
	ctrl := &controller.DispatchController{DispatchService: svc}

	req := httptest.NewRequest("POST", "/extract-Data-send-Mail", nil)
	w := httptest.NewRecorder()
	ctrl.ExtractDataAndSendMail(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "Error" || body["message"] != "No campaigns found" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestExtractDataSuccess(t *testing.T) {
	now := time.Now()
	campaigns := &mockCampaignRepo{campaigns: []*model.ScheduledCampaign{{
		ID:              1,
		CampaignID:      "CAMP-1",
		ContentID:       "CT-1",
		SalesPersonName: "Jordan",
		StartDate:       now.Add(-time.Hour).Format("2006-01-02"),
		StartTime:       now.Add(-time.Hour).Format("15:04"),
	}}}
	svc := &service.DispatchService{
		Campaigns: campaigns,
		Recipients: &mockRecipientRepo{recipients: map[string][]model.Recipient{
			"CAMP-1": {
				{EmailAddress: "a@x.example", FirstName: "Ann"},
				{EmailAddress: "b@x.example", FirstName: "Ben"},
				{EmailAddress: "c@x.example", FirstName: "Cat"},
			},
		}},
		Contents: &mockContentRepo{contents: map[string]*model.Content{
			"CT-1": {ContentID: "CT-1", Subject: "Hi [NAME]", Body: "Body"},
		}},
		SalesPeople: &mockSalesPersonRepo{people: map[string]*model.SalesPerson{
			"Jordan": {SalesPersonName: "Jordan", EmailID: "jordan@sender.example"},
		}},
		Sender: &mockSender{},
		Log:    discardLogger(),
	}
	ctrl := &controller.DispatchController{DispatchService: svc}

	req := httptest.NewRequest("POST", "/extract-Data-send-Mail", nil)
	w := httptest.NewRecorder()
	ctrl.ExtractDataAndSendMail(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Count   int    `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Success || body.Count != 3 {
		t.Errorf("expected success with count 3, got %+v", body)
	}
	if body.Message != "Emails sent successfully" {
		t.Errorf("unexpected message %q", body.Message)
	}
}

func TestTestMail(t *testing.T) {
	provider := &mockProvider{}
	ctrl := &controller.DispatchController{
		Provider:      provider,
		TestRecipient: "ops@team.example",
		TestSender:    "bot@team.example",
	}

	req := httptest.NewRequest("POST", "/test-mail", nil)
	w := httptest.NewRecorder()
	ctrl.TestMail(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(provider.notifications) != 1 {
		t.Fatalf("expected one notification, got %d", len(provider.notifications))
	}
	n := provider.notifications[0]
	if len(n.To) != 1 || n.To[0] != "ops@team.example" || n.From != "bot@team.example" {
		t.Errorf("unexpected addressing: %+v", n)
	}
}

func TestTestMailNoRecipientConfigured(t *testing.T) {
	provider := &mockProvider{}
	ctrl := &controller.DispatchController{
		Provider:   provider,
		TestSender: "bot@team.example",
	}

	req := httptest.NewRequest("POST", "/test-mail", nil)
	w := httptest.NewRecorder()
	ctrl.TestMail(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if len(provider.notifications) != 0 {
		t.Errorf("no notification must reach the provider without a recipient, got %d", len(provider.notifications))
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["success"] != false || body["message"] != "No notification recipient configured" {
		t.Errorf("unexpected body: %v", body)
	}
}
