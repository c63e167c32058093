package response_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"smartpark/shared/failure"
	"smartpark/transport/http/response"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusOK, map[string]string{"parking_id": "A1F1S1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]any{"data": map[string]any{"parking_id": "A1F1S1"}}, decode(t, rec))
}

func TestWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	sentinel := &failure.Failure{Code: http.StatusConflict, Message: "vehicle is already parked"}

	response.WithError(rec, fmt.Errorf("%w: B1 holds A1F1S1", sentinel))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "vehicle is already parked: B1 holds A1F1S1", decode(t, rec)["error"])
}

func TestWithErrorData(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithErrorData(rec, &failure.Failure{Code: http.StatusConflict, Message: "no available slot"}, []string{"A1F1S2"})

	body := decode(t, rec)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "no available slot", body["error"])
	assert.Equal(t, []any{"A1F1S2"}, body["data"])
}

func TestDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithRequestLimitExceeded(rec)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	response.WithPreparingShutdown(rec)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "SERVER PREPARING TO SHUT DOWN", decode(t, rec)["message"])
}
