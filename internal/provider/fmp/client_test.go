package fmp_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"metaldash/internal/provider/fmp"
)

func jsonBody(t *testing.T, v any) io.ReadCloser {
	t.Helper()
	buffer := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buffer).Encode(v))
	return io.NopCloser(buffer)
}

func TestGetQuotes_ParsesBatchResponse(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			// one comma-joined request carrying the api key
			require.Contains(t, req.URL.Path, "GCUSD,SIUSD")
			require.Equal(t, "test", req.URL.Query().Get("apikey"))

			return &http.Response{
				StatusCode: http.StatusOK,
				Body: jsonBody(t, []map[string]any{
					{"symbol": "GCUSD", "price": 2063.45, "change": 25.1, "changesPercentage": 1.23, "previousClose": 2038.35, "timestamp": 1700000000},
					{"symbol": "SIUSD", "price": 24.18, "change": 0.51, "changesPercentage": 2.15, "previousClose": 23.67, "timestamp": 1700000000},
				}),
			}, nil
		}).
		Times(1)

	client := fmp.NewClient("test", fmp.WithHTTPClient(httpClient))
	rows, err := client.GetQuotes(t.Context(), []string{"GCUSD", "SIUSD"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "GCUSD", rows[0].Symbol)
	require.Equal(t, 2063.45, rows[0].Price)
	require.Equal(t, 2038.35, rows[0].PreviousClose)
}

func TestGetQuotes_EmptySymbols_NoRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	// no EXPECT: any call to Do would fail the test

	client := fmp.NewClient("test", fmp.WithHTTPClient(httpClient))
	rows, err := client.GetQuotes(t.Context(), nil)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestGetQuotes_ErrorStatuses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		want   string
	}{
		{http.StatusUnauthorized, "unauthorized"},
		{http.StatusForbidden, "unauthorized"},
		{http.StatusTooManyRequests, "rate limited"},
		{http.StatusBadGateway, "unexpected status code"},
	}
	for _, tc := range cases {
		ctrl := gomock.NewController(t)
		httpClient := NewMockHTTPClient(ctrl)
		httpClient.EXPECT().
			Do(gomock.Any()).
			Return(&http.Response{StatusCode: tc.status, Body: io.NopCloser(strings.NewReader("{}"))}, nil).
			Times(1)

		client := fmp.NewClient("test", fmp.WithHTTPClient(httpClient))
		_, err := client.GetQuotes(t.Context(), []string{"GCUSD"})
		require.ErrorContains(t, err, tc.want, "status %d", tc.status)
	}
}

func TestWithBaseURL(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	baseURL := "http://localhost:8080"
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Truef(t, strings.HasPrefix(req.URL.String(), baseURL), "expected url to start with base url, received: %s", req.URL.String())
			return &http.Response{StatusCode: http.StatusOK, Body: jsonBody(t, []map[string]any{})}, nil
		}).
		Times(1)

	client := fmp.NewClient("test", fmp.WithHTTPClient(httpClient), fmp.WithBaseURL(baseURL))
	_, err := client.GetQuotes(t.Context(), []string{"GCUSD"})
	require.NoError(t, err)
}

func TestWithHeader(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "metaldash/1.0", req.Header.Get("User-Agent"))
			return &http.Response{StatusCode: http.StatusOK, Body: jsonBody(t, []map[string]any{})}, nil
		}).
		Times(1)

	client := fmp.NewClient("test",
		fmp.WithHTTPClient(httpClient),
		fmp.WithHeader(http.Header{"User-Agent": []string{"metaldash/1.0"}}),
	)
	_, err := client.GetQuotes(t.Context(), []string{"GCUSD"})
	require.NoError(t, err)
}
