package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func TestClarify(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/clarify", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "milk", req["item"])
		assert.Equal(t, []interface{}{"eggs"}, req["context"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"suggested": {"name": "Whole Milk"},
			"alternatives": [{"name": "2% Milk"}, {"name": "Oat Milk"}]
		}`))
	})

	res, err := client.Clarify(context.Background(), "milk", []string{"eggs"})
	require.NoError(t, err)
	require.NotNil(t, res.Suggested)
	assert.Equal(t, "Whole Milk", res.Suggested.Name)
	require.Len(t, res.Alternatives, 2)
	assert.Equal(t, "2% Milk", res.Alternatives[0].Name)
}

func TestClarifyNoSuggestion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "no idea what that is"}`))
	})

	// A 2xx response with no suggested name is a valid degenerate result,
	// not an error.
	res, err := client.Clarify(context.Background(), "xyzzy", nil)
	require.NoError(t, err)
	assert.Nil(t, res.Suggested)
	assert.Empty(t, res.Alternatives)
}

func TestClarifyServerFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	res, err := client.Clarify(context.Background(), "milk", nil)
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestSubmitCart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/cart", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []interface{}{"bread"}, req["items"])
		assert.Equal(t, "02139", req["zipcode"])
		assert.Equal(t, true, req["prioritize_nearby"])

		w.Write([]byte(`{"job_id": "abc123"}`))
	})

	jobID, err := client.SubmitCart(context.Background(), []string{"bread"}, "02139", true)
	require.NoError(t, err)
	assert.Equal(t, "abc123", jobID)
}

func TestSubmitCartMissingJobID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	_, err := client.SubmitCart(context.Background(), []string{"bread"}, "02139", false)
	assert.Error(t, err)
}

func TestJobStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/results/abc123", r.URL.Path)
		w.Write([]byte(`{
			"status": "complete",
			"zip_code": "02139",
			"total_time": 12.5,
			"results": {
				"milk": [
					{"name": "Whole Milk", "merchant": "A", "price": 3.50, "location": "2 mi"},
					{"name": "Whole Milk", "merchant": "B", "price": 3.5}
				]
			}
		}`))
	})

	status, err := client.JobStatus(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, status.Status)
	require.NotNil(t, status.TotalTime)
	assert.Equal(t, 12.5, *status.TotalTime)

	products := status.Results["milk"]
	require.Len(t, products, 2)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("3.50")))
	assert.True(t, products[0].Price.Equal(products[1].Price))
	assert.Equal(t, "2 mi", products[0].Location)
	assert.Empty(t, products[1].Location)
}

func TestJobStatusQueuePosition(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "queued", "queue_position": 3}`))
	})

	status, err := client.JobStatus(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, StatusQueued, status.Status)
	require.NotNil(t, status.QueuePosition)
	assert.Equal(t, 3, *status.QueuePosition)
}

func TestJobStatusServerFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	_, err := client.JobStatus(context.Background(), "abc123")
	assert.Error(t, err)
}
