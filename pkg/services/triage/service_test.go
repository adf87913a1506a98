package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/perf-tools/lightaudit/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockFetcher struct{ mock.Mock }

func (m *mockFetcher) Run(ctx context.Context, siteURL string) (*domain.AuditReport, error) {
	args := m.Called(ctx, siteURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditReport), args.Error(1)
}

func TestAuditSite_FetchFailureSkipsProcessing(t *testing.T) {
	ctx := context.Background()
	fetcher := new(mockFetcher)
	gen := new(mockGenerator)
	fetcher.On("Run", mock.Anything, "https://example.com").
		Return(nil, errors.New("connection refused")).Once()

	_, err := NewService(fetcher, gen).AuditSite(ctx, "https://example.com")

	assert.Error(t, err)
	gen.AssertNotCalled(t, "Question", mock.Anything, mock.Anything)
	fetcher.AssertExpectations(t)
}

func TestAuditSite_EmptyReportReturnsErrNoData(t *testing.T) {
	ctx := context.Background()
	fetcher := new(mockFetcher)
	fetcher.On("Run", mock.Anything, "https://example.com").
		Return(&domain.AuditReport{}, nil).Once()

	_, err := NewService(fetcher, new(mockGenerator)).AuditSite(ctx, "https://example.com")

	assert.ErrorIs(t, err, ErrNoData)
}

func TestAuditSite_ClassifiesFetchedAudits(t *testing.T) {
	ctx := context.Background()
	fetcher := new(mockFetcher)
	fetcher.On("Run", mock.Anything, "https://example.com").
		Return(&domain.AuditReport{Audits: []domain.Audit{
			{ID: "modern-image-formats", Title: "Images", MetricSavings: map[string]float64{"LCP": 250}},
		}}, nil).Once()

	report, err := NewService(fetcher, new(mockGenerator)).AuditSite(ctx, "https://example.com")

	assert.NoError(t, err)
	assert.Len(t, report.Findings, 1)
	assert.Equal(t, 250.0, report.AdminSavedMs)
}
