package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/flashsync/pkg/api"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	assert.Equal(t, "http://localhost:8080", client.baseURL)
	require.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_Signup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/signup", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req api.SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)
		assert.Equal(t, "password123", req.Password)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.SignupResponse{UserID: "user-123", Message: "created"})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Signup(context.Background(), api.SignupRequest{
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-123", resp.UserID)
}

func TestClient_Signin(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/signin", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.SessionResponse{
			SignedIn:    true,
			Expiration:  &exp,
			AccessToken: "token-abc",
		})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Signin(context.Background(), api.SigninRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.True(t, resp.SignedIn)
	assert.Equal(t, "token-abc", resp.AccessToken)
	require.NotNil(t, resp.Expiration)
	assert.Equal(t, exp, *resp.Expiration)
}

func TestClient_Sync_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/sync", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

		var req api.SyncRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(3), req.LastSync)
		require.Len(t, req.Operations, 1)
		assert.Equal(t, "decks", req.Operations[0].Table)

		_ = json.NewEncoder(w).Encode(api.SyncResponse{
			Remote: []api.Operation{},
			Local: []api.Operation{{
				Table: "decks",
				Row:   json.RawMessage(`{"deck_id":"d1","deck_name":"Spanish","created_at":1,"server_seq":4}`),
			}},
		})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Sync(context.Background(), "token-abc", api.SyncRequest{
		LastSync: 3,
		Operations: []api.Operation{{
			Table: "decks",
			Row:   json.RawMessage(`{"deck_id":"d1","deck_name":"Spanish","created_at":1,"server_seq":0}`),
		}},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Remote)
	require.Len(t, resp.Local, 1)

	meta, err := resp.Local[0].Meta()
	require.NoError(t, err)
	assert.Equal(t, int64(4), meta.ServerSeq)
}

func TestClient_SyncStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/sync/status", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(api.SyncStatusResponse{MaxSeq: 12})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).SyncStatus(context.Background(), "token-abc")
	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.MaxSeq)
}

func TestClient_Session(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/status", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(api.SessionResponse{SignedIn: true})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Session(context.Background(), "token-abc")
	require.NoError(t, err)
	assert.True(t, resp.SignedIn)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		body         string
		name         string
		wantMsg      string
		status       int
		unauthorized bool
	}{
		{
			name:    "error response with message",
			status:  http.StatusConflict,
			body:    `{"error":"Conflict","message":"user already exists"}`,
			wantMsg: "server error (409): user already exists",
		},
		{
			name:    "error response without message",
			status:  http.StatusInternalServerError,
			body:    `{"error":"Internal Server Error"}`,
			wantMsg: "server error (500): Internal Server Error",
		},
		{
			name:         "empty 401",
			status:       http.StatusUnauthorized,
			body:         ``,
			wantMsg:      "server error (401)",
			unauthorized: true,
		},
		{
			name:    "plain text body",
			status:  http.StatusBadGateway,
			body:    "bad gateway\n",
			wantMsg: "server error (502): bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Sync(context.Background(), "token", api.SyncRequest{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, tt.unauthorized, errors.Is(err, ErrUnauthorized))

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.StatusCode)
		})
	}
}

func TestClient_InvalidJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).SyncStatus(context.Background(), "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL).SyncStatus(ctx, "token")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_ServerUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url).Signin(context.Background(), api.SigninRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}
