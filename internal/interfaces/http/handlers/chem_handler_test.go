package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appchem "github.com/turtacn/SmilesKit/internal/application/chem"
	"github.com/turtacn/SmilesKit/internal/config"
	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/logging"
	routerhttp "github.com/turtacn/SmilesKit/internal/interfaces/http"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Defaults()
	cfg.Metrics.Enabled = false
	svc := appchem.NewService(cfg.Chem, appchem.WithLogger(logging.NewNopLogger()))
	return routerhttp.NewRouter(cfg, svc, nil, logging.NewNopLogger())
}

func postJSON(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestParseEndpoint(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)
	rec := postJSON(t, h, "/api/v1/smiles/parse", map[string]string{"smiles": "c1ccccc1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Molecules []struct {
			Atoms     int  `json:"atoms"`
			Bonds     int  `json:"bonds"`
			RingCount int  `json:"ring_count"`
			Invalid   bool `json:"invalid"`
		} `json:"molecules"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Molecules, 1)
	assert.Equal(t, 6, resp.Molecules[0].Atoms)
	assert.Equal(t, 6, resp.Molecules[0].Bonds)
	assert.Equal(t, 1, resp.Molecules[0].RingCount)
	assert.False(t, resp.Molecules[0].Invalid)
}

func TestCanonicalEndpoint(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)
	rec := postJSON(t, h, "/api/v1/smiles/canonical", map[string]string{"smiles": "OCC"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Canonical string `json:"canonical"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CCO", resp.Canonical)
}

func TestCanonicalEndpoint_BadInput(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)
	rec := postJSON(t, h, "/api/v1/smiles/canonical", map[string]string{"smiles": "C1CC"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Code        int `json:"code"`
		Diagnostics []struct {
			Severity string `json:"severity"`
			Offset   int    `json:"offset"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.Code)
	assert.NotEmpty(t, resp.Diagnostics)
}

func TestCanonicalEndpoint_MissingBody(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)
	rec := postJSON(t, h, "/api/v1/smiles/canonical", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRingsEndpoint(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)
	rec := postJSON(t, h, "/api/v1/smiles/rings", map[string]string{"smiles": "c1ccc2ccccc2c1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Molecules []struct {
			SSSR []struct {
				Atoms []int `json:"atoms"`
				Size  int   `json:"size"`
			} `json:"sssr"`
			Relations [][]string `json:"relations"`
		} `json:"molecules"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Molecules, 1)
	require.Len(t, resp.Molecules[0].SSSR, 2)
	assert.Equal(t, 6, resp.Molecules[0].SSSR[0].Size)
	assert.Equal(t, "fused", resp.Molecules[0].Relations[0][1])
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
