// Package integration provides end-to-end tests for the document similarity API.
// Every flow runs against the in-memory store and, when available, PostgreSQL and MySQL.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/docsim/internal/app"
	"github.com/allisson/docsim/internal/config"
	cryptoDTO "github.com/allisson/docsim/internal/crypto/http/dto"
	documentDTO "github.com/allisson/docsim/internal/document/http/dto"
	keycacheDTO "github.com/allisson/docsim/internal/keycache/http/dto"
	similarityDTO "github.com/allisson/docsim/internal/similarity/http/dto"
	"github.com/allisson/docsim/internal/testutil"
)

const (
	ownerPrincipal = "owner"
	userPrincipal  = "alice"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	dbDriver  string
}

// makeRequest performs an HTTP request as principal and returns the response and body.
// An empty principal sends no identity header.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	principal string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if principal != "" {
		req.Header.Set("X-Principal", principal)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// baseConfig returns the settings shared by every driver.
func baseConfig() *config.Config {
	return &config.Config{
		LogLevel:                 "error",
		ServerHost:               "localhost",
		ServerPort:               8080,
		DBMaxOpenConnections:     10,
		DBMaxIdleConnections:     5,
		DBConnMaxLifetime:        time.Hour,
		OwnerIdentity:            ownerPrincipal,
		PaillierKeyBits:          256,
		BudgetCeilingUnits:       5_000_000_000,
		BudgetSafetyFraction:     0.9,
		TokenSize:                32,
		EncryptMaxTokens:         50,
		MaxDocuments:             1000,
		MaxTokens:                10000,
		DuplicateThreshold:       95,
		FingerprintSize:          50,
		FingerprintThreshold:     80,
		KeyCacheCapacity:         100,
		KeyCacheTTL:              5 * time.Minute,
		KeyCacheFallbackEnabled:  true,
		KeyCacheBatchConcurrency: 4,
		MetricsNamespace:         "docsim",
	}
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := baseConfig()
	cfg.DBDriver = dbDriver

	var db *sql.DB
	switch dbDriver {
	case "postgres":
		testutil.SkipIfNoPostgres(t)
		db = testutil.SetupPostgresDB(t)
		cfg.DBConnectionString = testutil.GetPostgresTestDSN()
	case "mysql":
		testutil.SkipIfNoMySQL(t)
		db = testutil.SetupMySQLDB(t)
		cfg.DBConnectionString = testutil.GetMySQLTestDSN()
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	testServer := httptest.NewServer(handler)

	t.Logf("Integration test setup complete for %s", dbDriver)

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}
}

// pad32 right-aligns word in a 32-byte token so it stays below any test modulus.
func pad32(word string) []byte {
	token := make([]byte, 32)
	copy(token[32-len(word):], word)
	return token
}

var drivers = []struct {
	name     string
	dbDriver string
}{
	{"Memory", "memory"},
	{"PostgreSQL", "postgres"},
	{"MySQL", "mysql"},
}

func TestIntegration_Health_BasicChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_HealthCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "healthy", response["status"])
			})

			t.Run("02_ReadinessCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]interface{}
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "ready", response["status"])
			})

			t.Run("03_MissingPrincipal", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/documents", nil, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})
		})
	}
}

// TestIntegration_Documents_CompleteFlow covers key setup, storage, server-side
// encryption, similarity and administration in one lifecycle.
func TestIntegration_Documents_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	rawTokens := [][]byte{[]byte("the"), []byte("quick"), []byte("brown"), []byte("fox")}
	plainTokens := [][]byte{pad32("the"), pad32("quick"), pad32("brown")}

	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			var storedID string

			t.Run("01_PublicKeyBeforeInit", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/paillier/public-key", nil, userPrincipal)
				assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
			})

			t.Run("02_InitPaillier", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/paillier/init", nil, ownerPrincipal)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var response cryptoDTO.InitializeResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.NotEmpty(t, response.PublicKey.N)
				assert.NotEmpty(t, response.PublicKey.G)
			})

			t.Run("03_InitPaillierTwice", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/paillier/init", nil, ownerPrincipal)
				assert.Equal(t, http.StatusConflict, resp.StatusCode)
			})

			t.Run("04_GetPublicKey", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/paillier/public-key", nil, userPrincipal)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response cryptoDTO.PublicKeyResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.NotEmpty(t, response.N)
			})

			t.Run("05_StoreDocument", func(t *testing.T) {
				title := "Fox"
				req := documentDTO.StoreDocumentRequest{Title: &title, Tokens: rawTokens}
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/documents", req, userPrincipal)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var response documentDTO.StoreResultResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.True(t, response.Success)
				assert.NotEmpty(t, response.ID)
				storedID = response.ID
			})

			t.Run("06_StoreSameContent", func(t *testing.T) {
				req := documentDTO.StoreDocumentRequest{Tokens: rawTokens}
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/documents", req, userPrincipal)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response documentDTO.StoreResultResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, storedID, response.ID)
			})

			t.Run("07_StoreEmptyDocument", func(t *testing.T) {
				req := documentDTO.StoreDocumentRequest{Tokens: [][]byte{}}
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/documents", req, userPrincipal)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			t.Run("08_GetDocument", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/documents/"+storedID, nil, userPrincipal)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response documentDTO.DocumentResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "Fox", response.Title)
				assert.Equal(t, userPrincipal, response.Owner)
				assert.Equal(t, rawTokens, response.Tokens)
			})

			t.Run("09_GetMissingDocument", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/documents/missing", nil, userPrincipal)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})

			t.Run("10_EncryptDocuments", func(t *testing.T) {
				for _, id := range []string{"enc-a", "enc-b"} {
					req := documentDTO.EncryptDocumentRequest{Tokens: plainTokens}
					resp, body := ctx.makeRequest(
						t, http.MethodPost, "/v1/documents/"+id+"/encrypt", req, userPrincipal,
					)
					require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

					var response documentDTO.EncryptResultResponse
					require.NoError(t, json.Unmarshal(body, &response))
					assert.True(t, response.Success, response.Error)
					assert.Equal(t, 3, response.TokensEncrypted)
					assert.Equal(t, "fallback", response.KeySource)
				}
			})

			t.Run("10b_EncryptWrongTokenSize", func(t *testing.T) {
				req := documentDTO.EncryptDocumentRequest{Tokens: rawTokens}
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/documents/enc-c/encrypt", req, userPrincipal)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			t.Run("11_ListDocuments", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/documents?scope=mine", nil, userPrincipal)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response documentDTO.ListDocumentsResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Len(t, response.Data, 3)

				resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/documents?scope=mine", nil, "bob")
				require.Equal(t, http.StatusOK, resp.StatusCode)
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Empty(t, response.Data)
			})

			t.Run("12_CheckDuplicate", func(t *testing.T) {
				req := similarityDTO.CheckRequest{DocumentID: storedID, Tokens: rawTokens, Mode: "duplicate"}
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/similarity/check", req, userPrincipal)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response similarityDTO.CheckResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.False(t, response.Success)
				require.NotNil(t, response.SimilarityScore)
				assert.InDelta(t, 100.0, *response.SimilarityScore, 0.001)
			})

			t.Run("13_CheckInvalidMode", func(t *testing.T) {
				req := similarityDTO.CheckRequest{DocumentID: storedID, Tokens: rawTokens, Mode: "fuzzy"}
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/similarity/check", req, userPrincipal)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			t.Run("14_Compare", func(t *testing.T) {
				req := similarityDTO.PairRequest{DocumentID1: "enc-a", DocumentID2: "enc-b"}
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/similarity/compare", req, userPrincipal)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response similarityDTO.CompareResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.True(t, response.Success)
				assert.Equal(t, 3, response.TokensCompared)
				assert.NotNil(t, response.SimilarityScore)
			})

			t.Run("15_Combine", func(t *testing.T) {
				req := similarityDTO.PairRequest{DocumentID1: "enc-a", DocumentID2: "enc-b"}
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/similarity/combine", req, userPrincipal)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response similarityDTO.CombineResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.True(t, response.Success, response.Error)
				assert.Equal(t, 3, response.TokensCombined)
				assert.NotEmpty(t, response.Aggregate)
			})

			t.Run("16_CombineLengthMismatch", func(t *testing.T) {
				req := similarityDTO.PairRequest{DocumentID1: "enc-a", DocumentID2: storedID}
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/similarity/combine", req, userPrincipal)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			t.Run("17_DeriveKey", func(t *testing.T) {
				req := keycacheDTO.DeriveKeyRequest{DocumentID: "enc-a"}
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/keys/derive", req, userPrincipal)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response keycacheDTO.KeySourceResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "fallback", response.Source)
				assert.NotEmpty(t, response.Key)
			})

			t.Run("18_SecurityEvents", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/keys/events", nil, userPrincipal)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)

				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/keys/events", nil, ownerPrincipal)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response keycacheDTO.ListSecurityEventsResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.NotEmpty(t, response.Data)
			})

			t.Run("19_AdminStats", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/admin/stats", nil, userPrincipal)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)

				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/admin/stats", nil, ownerPrincipal)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response documentDTO.StatsResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, 3, response.TotalDocuments)
				assert.True(t, response.Initialized)
			})

			t.Run("20_UpdateConfig", func(t *testing.T) {
				maxDocuments := 3
				req := documentDTO.UpdateConfigRequest{MaxDocuments: &maxDocuments}
				resp, body := ctx.makeRequest(t, http.MethodPatch, "/v1/admin/config", req, ownerPrincipal)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response documentDTO.ConfigResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, 3, response.MaxDocuments)
				assert.InDelta(t, 95.0, response.DuplicateThreshold, 0.001)
			})

			t.Run("21_StoreAtCapacity", func(t *testing.T) {
				req := documentDTO.StoreDocumentRequest{Tokens: [][]byte{[]byte("new")}}
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/documents", req, userPrincipal)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			t.Run("22_ClearAll", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodDelete, "/v1/documents", nil, userPrincipal)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)

				resp, body := ctx.makeRequest(t, http.MethodDelete, "/v1/documents", nil, ownerPrincipal)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response documentDTO.ClearResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, 3, response.Cleared)
			})

			t.Run("23_AdminHealth", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/admin/health", nil, ownerPrincipal)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response documentDTO.HealthResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, 0, response.Documents)
			})
		})
	}
}
