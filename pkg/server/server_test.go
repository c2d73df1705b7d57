package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/audit-atlas/pkg/models/api"
)

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) ListRuns(ctx context.Context) ([]api.Run, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Run), args.Error(1)
}

func (m *mockExplorer) GetRun(ctx context.Context, name string) (*api.RunSummary, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.RunSummary), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	timestamp := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		path           string
		setupMocks     func(exp *mockExplorer)
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name: "ListRuns",
			path: "/api/v1/runs",
			setupMocks: func(exp *mockExplorer) {
				exp.On("ListRuns", mock.Anything).
					Return([]api.Run{{Name: "audit_123456789012_20260314T093000Z", Timestamp: timestamp, Percent: 75}}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       []api.Run{{Name: "audit_123456789012_20260314T093000Z", Timestamp: timestamp, Percent: 75}},
			parseResponse:  unmarshalResponse[[]api.Run](),
		},
		{
			name: "ListRuns_Error",
			path: "/api/v1/runs",
			setupMocks: func(exp *mockExplorer) {
				exp.On("ListRuns", mock.Anything).
					Return(nil, errors.New("directory unreadable"))
			},
			expectedStatus: http.StatusInternalServerError,
			expected:       "failed to list runs\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name: "GetRun",
			path: "/api/v1/runs/audit_123456789012_20260314T093000Z",
			setupMocks: func(exp *mockExplorer) {
				exp.On("GetRun", mock.Anything, "audit_123456789012_20260314T093000Z").
					Return(&api.RunSummary{
						Title:     "AWS Compliance Assessment",
						AccountID: "123456789012",
						Timestamp: timestamp,
						Percent:   75,
						Counters:  api.Counters{Total: 4, Passed: 3, Failed: 1},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.RunSummary{
				Title:     "AWS Compliance Assessment",
				AccountID: "123456789012",
				Timestamp: timestamp,
				Percent:   75,
				Counters:  api.Counters{Total: 4, Passed: 3, Failed: 1},
			},
			parseResponse: unmarshalResponse[api.RunSummary](),
		},
		{
			name: "GetRun_NotFound",
			path: "/api/v1/runs/absent",
			setupMocks: func(exp *mockExplorer) {
				exp.On("GetRun", mock.Anything, "absent").
					Return(nil, errors.New("run absent not found"))
			},
			expectedStatus: http.StatusNotFound,
			expected:       "run not found\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			exp := new(mockExplorer)
			tc.setupMocks(exp)

			router := ConfigureRouter(Config{Dependencies: Dependencies{
				Explorer: exp,
				Logger:   logger,
			}})
			testServer := httptest.NewServer(router)
			defer testServer.Close()

			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
			exp.AssertExpectations(t)
		})
	}
}

func TestWebAPI_ServesReportDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "audit.html"), []byte("<html>report</html>"), 0o644))

	router := ConfigureRouter(Config{Dependencies: Dependencies{
		Explorer:  new(mockExplorer),
		ReportDir: dir,
		Logger:    zerolog.New(zerolog.NewTestWriter(t)),
	}})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/reports/audit.html")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<html>report</html>", string(body))
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
