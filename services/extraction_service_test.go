package services

import (
	"context"
	"testing"
	"time"

	"github.com/GarageLog/garage-log-backend/config"
	apperrors "github.com/GarageLog/garage-log-backend/errors"
	"github.com/GarageLog/garage-log-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockVisionClient struct {
	mock.Mock
}

func (m *MockVisionClient) ExtractVehicleEvent(ctx context.Context, req types.ExtractionRequest) (*types.ExtractionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ExtractionResponse), args.Error(1)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) CheckLimit(ctx context.Context, key string, limit int, duration time.Duration) (bool, time.Duration, error) {
	args := m.Called(ctx, key, limit, duration)
	return args.Bool(0), args.Get(1).(time.Duration), args.Error(2)
}

func newExtractionFixture() (*ExtractionService, *MockVisionClient, *MockRateLimiter) {
	client := new(MockVisionClient)
	limiter := new(MockRateLimiter)
	svc := NewExtractionService(client, limiter, config.ExtractionConfig{
		RequestsPerHour: 10,
		TimeoutSeconds:  30,
	})
	return svc, client, limiter
}

func TestExtractNormalizesCostStrings(t *testing.T) {
	svc, client, limiter := newExtractionFixture()

	limiter.On("CheckLimit", mock.Anything, ExtractionRateKey("user-1"), 10, time.Hour).
		Return(true, time.Duration(0), nil)
	client.On("ExtractVehicleEvent", mock.Anything, mock.Anything).
		Return(&types.ExtractionResponse{
			ExtractedData: types.ExtractedData{
				"cost":       "$42.50",
				"gallons":    13.2,
				"station":    "Shell",
				"labor_cost": "not a number",
			},
			SuggestedType: types.EventTypeFuel,
			Confidence:    0.9,
		}, nil)

	resp, err := svc.Extract(context.Background(), "user-1", types.ExtractionRequest{OCRText: "receipt"})
	require.NoError(t, err)

	assert.Equal(t, 42.5, resp.ExtractedData["cost"])
	assert.Equal(t, 13.2, resp.ExtractedData["gallons"])
	// Unparseable money stays as-is; renderers degrade over it.
	assert.Equal(t, "not a number", resp.ExtractedData["labor_cost"])
	assert.Equal(t, types.ReviewLevelAutofill, resp.ReviewLevel)
}

func TestExtractionRateKey(t *testing.T) {
	assert.Equal(t, "extraction:user-1", ExtractionRateKey("user-1"))
}

func TestExtractSetsReviewLevel(t *testing.T) {
	cases := []struct {
		name       string
		confidence float64
		want       types.ReviewLevel
	}{
		{"low confidence needs manual entry", 0.3, types.ReviewLevelManual},
		{"mid confidence gets review screen", 0.6, types.ReviewLevelReview},
		{"boundary at low threshold", 0.5, types.ReviewLevelReview},
		{"high confidence auto-fills", 0.9, types.ReviewLevelAutofill},
		{"boundary at high threshold", 0.8, types.ReviewLevelAutofill},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, client, limiter := newExtractionFixture()
			limiter.On("CheckLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(true, time.Duration(0), nil)
			client.On("ExtractVehicleEvent", mock.Anything, mock.Anything).
				Return(&types.ExtractionResponse{
					ExtractedData: types.ExtractedData{"cost": 10.0},
					SuggestedType: types.EventTypeService,
					Confidence:    tc.confidence,
				}, nil)

			resp, err := svc.Extract(context.Background(), "user-1", types.ExtractionRequest{OCRText: "receipt"})
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.ReviewLevel)
		})
	}
}

func TestExtractRateLimited(t *testing.T) {
	svc, client, limiter := newExtractionFixture()

	limiter.On("CheckLimit", mock.Anything, ExtractionRateKey("user-1"), 10, time.Hour).
		Return(false, 20*time.Minute, nil)

	_, err := svc.Extract(context.Background(), "user-1", types.ExtractionRequest{OCRText: "receipt"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.RateLimitError, appErr.Type)
	client.AssertNotCalled(t, "ExtractVehicleEvent")
}

func TestExtractRequiresInput(t *testing.T) {
	svc, _, limiter := newExtractionFixture()

	_, err := svc.Extract(context.Background(), "user-1", types.ExtractionRequest{})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
	limiter.AssertNotCalled(t, "CheckLimit")
}

func TestExtractFallsBackToTypeHint(t *testing.T) {
	svc, client, limiter := newExtractionFixture()

	limiter.On("CheckLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(true, time.Duration(0), nil)
	client.On("ExtractVehicleEvent", mock.Anything, mock.Anything).
		Return(&types.ExtractionResponse{
			ExtractedData: types.ExtractedData{"reading": 50000},
			Confidence:    0.6,
		}, nil)

	resp, err := svc.Extract(context.Background(), "user-1", types.ExtractionRequest{
		OCRText:  "50000",
		TypeHint: types.EventTypeOdometer,
	})
	require.NoError(t, err)
	assert.Equal(t, types.EventTypeOdometer, resp.SuggestedType)
}

func TestExtractVisionFailure(t *testing.T) {
	svc, client, limiter := newExtractionFixture()

	limiter.On("CheckLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(true, time.Duration(0), nil)
	client.On("ExtractVehicleEvent", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	_, err := svc.Extract(context.Background(), "user-1", types.ExtractionRequest{OCRText: "x"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ExtractionError, appErr.Type)
}
