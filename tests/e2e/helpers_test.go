//go:build e2e

package e2e_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/docuchain/docuchain-backend/internal/adapter/ipfs"
	"github.com/docuchain/docuchain-backend/internal/adapter/ledger"
	"github.com/docuchain/docuchain-backend/internal/adapter/postgres"
	activityrepo "github.com/docuchain/docuchain-backend/internal/adapter/postgres/activity"
	documentrepo "github.com/docuchain/docuchain-backend/internal/adapter/postgres/document"
	mirrorrepo "github.com/docuchain/docuchain-backend/internal/adapter/postgres/mirror"
	"github.com/docuchain/docuchain-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/docuchain/docuchain-backend/internal/adapter/postgres/user"
	jwtauth "github.com/docuchain/docuchain-backend/internal/auth"
	"github.com/docuchain/docuchain-backend/internal/config"
	"github.com/docuchain/docuchain-backend/internal/cryptostore"
	authsvc "github.com/docuchain/docuchain-backend/internal/service/auth"
	documentsvc "github.com/docuchain/docuchain-backend/internal/service/document"
	"github.com/docuchain/docuchain-backend/internal/transport/middleware"
	"github.com/docuchain/docuchain-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// Fake IPFS node: in-memory blob map behind the /api/v0 HTTP surface.
// ---------------------------------------------------------------------------

type fakeIPFS struct {
	mu    sync.Mutex
	blobs map[string][]byte
	srv   *httptest.Server
}

func newFakeIPFS(t *testing.T) *fakeIPFS {
	t.Helper()

	f := &fakeIPFS{blobs: make(map[string][]byte)}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v0/add", func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sum := sha256.Sum256(data)
		cid := "Qm" + hex.EncodeToString(sum[:16])
		f.mu.Lock()
		f.blobs[cid] = data
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"Hash": cid}) //nolint:errcheck
	})
	mux.HandleFunc("/api/v0/cat", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		data, ok := f.blobs[r.URL.Query().Get("arg")]
		f.mu.Unlock()
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Write(data) //nolint:errcheck
	})
	mux.HandleFunc("/api/v0/version", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"Version": "0.29.0"}) //nolint:errcheck
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

// storedBlobs returns a copy of all blob contents.
func (f *fakeIPFS) storedBlobs() map[string][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string][]byte, len(f.blobs))
	for k, v := range f.blobs {
		out[k] = append([]byte(nil), v...)
	}
	return out
}

// ---------------------------------------------------------------------------
// Fake ledger relay: records submitted transactions and returns receipts.
// ---------------------------------------------------------------------------

type relayTx struct {
	Contract string `json:"contract"`
	Method   string `json:"method"`
	Params   []any  `json:"params"`
}

type fakeRelay struct {
	mu        sync.Mutex
	txs       []relayTx
	srv       *httptest.Server
	closeOnce sync.Once
}

// close shuts the relay down; safe to call more than once so outage tests
// can kill it before the registered cleanup runs.
func (f *fakeRelay) close() {
	f.closeOnce.Do(f.srv.Close)
}

func newFakeRelay(t *testing.T) *fakeRelay {
	t.Helper()

	f := &fakeRelay{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/transactions", func(w http.ResponseWriter, r *http.Request) {
		var tx relayTx
		if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.txs = append(f.txs, tx)
		n := len(f.txs)
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"txHash":      fmt.Sprintf("0xe2e%04d", n),
			"blockNumber": n,
		})
	})
	mux.HandleFunc("POST /v1/calls", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"result": true}) //nolint:errcheck
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.close)
	return f
}

// methods returns the method names of all submitted transactions, in order.
func (f *fakeRelay) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.txs))
	for _, tx := range f.txs {
		out = append(out, tx.Method)
	}
	return out
}

// ---------------------------------------------------------------------------
// Test server: full stack over a real postgres container plus the fakes.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	IPFS   *fakeIPFS
	Relay  *fakeRelay
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fIPFS := newFakeIPFS(t)
	fRelay := newFakeRelay(t)

	documentRepo := documentrepo.New(pool)
	activityRepo := activityrepo.New(pool)
	userRepo := userrepo.New(pool)
	mirrorRepo := mirrorrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	ipfsClient := ipfs.NewClient(config.IPFSConfig{
		Endpoint: fIPFS.srv.URL,
		Timeout:  5 * time.Second,
	}, logger)
	store := cryptostore.New(ipfsClient)
	ledgerClient := ledger.NewClient(config.LedgerConfig{
		RelayURL:        fRelay.srv.URL,
		ContractAddress: "0xcontract",
		Timeout:         5 * time.Second,
	}, logger)

	jwtManager := jwtauth.NewJWTManager("e2e-test-secret", "docuchain-e2e", time.Hour)

	authService := authsvc.NewService(logger, userRepo, jwtManager)
	documentService := documentsvc.NewService(
		logger, documentRepo, activityRepo, userRepo, store, ledgerClient, mirrorRepo, txManager,
		config.VaultConfig{MaxUploadBytes: 1 << 20, PublicPageSize: 10, ActivityPageMax: 200},
	)

	authHandler := rest.NewAuthHandler(authService, logger)
	documentHandler := rest.NewDocumentHandler(documentService, logger, 1<<20)
	healthHandler := rest.NewHealthHandler(pool, ipfsClient, "e2e")

	common := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.ClientInfo(),
		middleware.Auth(authService),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/v1/auth/me", authHandler.Me)
	mux.HandleFunc("POST /api/v1/documents", documentHandler.Upload)
	mux.HandleFunc("GET /api/v1/documents", documentHandler.List)
	mux.HandleFunc("GET /api/v1/documents/{id}", documentHandler.Get)
	mux.HandleFunc("DELETE /api/v1/documents/{id}", documentHandler.Delete)
	mux.HandleFunc("GET /api/v1/documents/{id}/download", documentHandler.Download)
	mux.HandleFunc("POST /api/v1/documents/{id}/share", documentHandler.Share)
	mux.HandleFunc("DELETE /api/v1/documents/{id}/share/{userId}", documentHandler.Revoke)
	mux.HandleFunc("GET /api/v1/documents/{id}/logs", documentHandler.Logs)
	mux.HandleFunc("GET /api/v1/activity", documentHandler.Activity)

	srv := httptest.NewServer(common(mux))
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		IPFS:   fIPFS,
		Relay:  fRelay,
	}
}

// ---------------------------------------------------------------------------
// Request helpers.
// ---------------------------------------------------------------------------

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	result := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &result), "body: %s", raw)
	}
	return resp.StatusCode, result
}

// registerUser creates an account through the API and returns (userID, token).
func (ts *testServer) registerUser(t *testing.T, username string, wallet string) (string, string) {
	t.Helper()

	status, body := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":         username + "@example.com",
		"username":      username,
		"password":      "correct-horse-battery",
		"walletAddress": wallet,
	})
	require.Equal(t, http.StatusCreated, status, "register response: %v", body)

	user := body["user"].(map[string]any)
	return user["id"].(string), body["accessToken"].(string)
}

// uploadDocument uploads content through the API and returns the decoded
// document response.
func (ts *testServer) uploadDocument(t *testing.T, token, title string, content []byte, public bool) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", title))
	require.NoError(t, w.WriteField("is_public", fmt.Sprintf("%t", public)))
	part, err := w.CreateFormFile("file", title)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/documents", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, http.StatusCreated, resp.StatusCode, "upload response: %v", body)
	return body
}

// downloadDocument fetches decrypted content; returns status and raw bytes.
func (ts *testServer) downloadDocument(t *testing.T, token, docID string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/documents/"+docID+"/download", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}
