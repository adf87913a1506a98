package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/perf-tools/lightaudit/pkg/models/api"
	"github.com/perf-tools/lightaudit/pkg/models/domain"
	"github.com/perf-tools/lightaudit/pkg/services/triage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuditor struct{ mock.Mock }

func (m *mockAuditor) AuditSite(ctx context.Context, siteURL string) (domain.TriageReport, error) {
	args := m.Called(ctx, siteURL)
	return args.Get(0).(domain.TriageReport), args.Error(1)
}

func newTestServer(t *testing.T) (*httptest.Server, *mockAuditor) {
	t.Helper()

	auditor := new(mockAuditor)
	router := ConfigureRouter(Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Auditor: auditor,
			Logger:  zerolog.New(zerolog.NewTestWriter(t)),
		},
	})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, auditor
}

func sampleReport() domain.TriageReport {
	return domain.TriageReport{
		Findings: []domain.Finding{{
			AuditID:        "modern-image-formats",
			Title:          "Serve images in next-gen formats",
			Priority:       domain.PriorityMedium,
			SavingsMs:      500,
			Classification: domain.ClassificationAddressable,
			Remediation: []string{
				"Convert the images: Use an image conversion tool to parse the image URLs and convert the images to the WebP format.",
				"Update the Codebase: Replace the original image URLs with the WebP image URLs for improved performance.",
			},
		}},
		AdminSavedMs: 500,
	}
}

func TestIndexPage(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Lighthouse Audit Tool")
	assert.Contains(t, string(body), `form method="post" action="/audits"`)
}

func TestRunAPI_Success(t *testing.T) {
	ts, auditor := newTestServer(t)
	auditor.On("AuditSite", mock.Anything, "https://example.com").
		Return(sampleReport(), nil).Once()

	resp, err := http.Post(ts.URL+"/api/v1/audits", "application/json",
		strings.NewReader(`{"url": "https://example.com"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response api.AuditResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))

	assert.Equal(t, "https://example.com", response.URL)
	require.Len(t, response.Findings, 1)
	assert.Equal(t, "modern-image-formats", response.Findings[0].AuditID)
	assert.Equal(t, "Medium", response.Findings[0].Priority)
	assert.True(t, response.Findings[0].Addressable)
	assert.Equal(t, 0.5, response.AdminSavedSeconds)
	assert.Equal(t, 0.0, response.ManualSavedSeconds)
	assert.Equal(t, 0.5, response.CombinedSavedSeconds)
	assert.Contains(t, response.Report, "Potential Savings: 500.00 ms")
	assert.Contains(t, response.Report, "Total Admin Panel Savings: 0.50 seconds")

	auditor.AssertExpectations(t)
}

func TestRunAPI_FetchFailure(t *testing.T) {
	ts, auditor := newTestServer(t)
	auditor.On("AuditSite", mock.Anything, "https://example.com").
		Return(domain.TriageReport{}, errors.New("connection refused")).Once()

	resp, err := http.Post(ts.URL+"/api/v1/audits", "application/json",
		strings.NewReader(`{"url": "https://example.com"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response api.AuditResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))

	assert.Equal(t, triage.NoDataMessage, response.Report)
	assert.Empty(t, response.Findings)
}

func TestRunAPI_BadRequests(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"url": `},
		{"missing url", `{}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/v1/audits", "application/json", strings.NewReader(tc.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRunForm_RendersReport(t *testing.T) {
	ts, auditor := newTestServer(t)
	auditor.On("AuditSite", mock.Anything, "https://example.com").
		Return(sampleReport(), nil).Once()

	resp, err := http.PostForm(ts.URL+"/audits", url.Values{"url": {"https://example.com"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Audit Results")
	assert.Contains(t, string(body), "Potential Savings: 500.00 ms")
	assert.Contains(t, string(body), "Total Admin Panel Savings: 0.50 seconds")
}

func TestRunForm_MissingURL(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.PostForm(ts.URL+"/audits", url.Values{})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
