package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewClient_MissingCredentials(t *testing.T) {
	tests := []struct {
		name         string
		clientID     string
		clientSecret string
		wantErr      bool
	}{
		{"both present", "id", "secret", false},
		{"missing id", "", "secret", true},
		{"missing secret", "id", "", true},
		{"both missing", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.clientID, tt.clientSecret, zap.NewNop())
			if (err != nil) != tt.wantErr {
				t.Errorf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClient_ExtractPlaylistID(t *testing.T) {
	client, err := NewClient("id", "secret", zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "url with query parameters",
			url:  "https://open.spotify.com/playlist/37i9dQZEVXbNG2KDcFcKOF?si=1333723a6eff4b7f",
			want: "37i9dQZEVXbNG2KDcFcKOF",
		},
		{
			name: "url without query parameters",
			url:  "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
			want: "37i9dQZF1DXcBWIGoYBM5M",
		},
		{
			name: "spotify uri",
			url:  "spotify:playlist:37i9dQZEVXbNG2KDcFcKOF",
			want: "37i9dQZEVXbNG2KDcFcKOF",
		},
		{
			name:    "unsupported format",
			url:     "https://example.com/some/path",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.ExtractPlaylistID(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractPlaylistID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractPlaylistID() = %q, want %q", got, tt.want)
			}
		})
	}
}

// newTestServers поднимает тестовые серверы авторизации и API
func newTestServers(t *testing.T, apiHandler http.HandlerFunc) (*Client, *httptest.Server, *httptest.Server) {
	t.Helper()

	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "id" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`)
	}))

	apiServer := httptest.NewServer(apiHandler)

	client, err := NewClient("id", "secret", zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	client.authURL = authServer.URL
	client.baseURL = apiServer.URL

	return client, authServer, apiServer
}

func TestClient_GetRawPlaylistTracks_SinglePage(t *testing.T) {
	page := map[string]interface{}{
		"href":  "https://api.spotify.com/v1/playlists/37i9dQZEVXbNG2KDcFcKOF/tracks",
		"total": 2,
		"next":  nil,
		"items": []interface{}{
			map[string]interface{}{"track": map[string]interface{}{"id": "a"}},
			map[string]interface{}{"track": map[string]interface{}{"id": "b"}},
		},
	}

	client, authServer, apiServer := newTestServers(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "/playlists/37i9dQZEVXbNG2KDcFcKOF/tracks", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(page); err != nil {
			t.Errorf("Failed to encode page: %v", err)
		}
	})
	defer authServer.Close()
	defer apiServer.Close()

	got, err := client.GetRawPlaylistTracks(context.Background(),
		"https://open.spotify.com/playlist/37i9dQZEVXbNG2KDcFcKOF?si=1333723a6eff4b7f", false)
	assert.NoError(t, err)

	items, ok := got["items"].([]interface{})
	if !ok {
		t.Fatalf("Expected items array, got %T", got["items"])
	}
	assert.Len(t, items, 2)
	assert.Equal(t, json.Number("2"), got["total"])
}

func TestClient_GetRawPlaylistTracks_AllPages(t *testing.T) {
	var apiServer *httptest.Server

	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("offset") == "1" {
			fmt.Fprint(w, `{"items":[{"track":{"id":"b"}}],"next":null,"total":2}`)
			return
		}
		// Первая страница указывает на вторую
		fmt.Fprintf(w, `{"items":[{"track":{"id":"a"}}],"next":"%s/playlists/37i9dQZEVXbNG2KDcFcKOF/tracks?offset=1","total":2}`, apiServer.URL)
	}

	client, authServer, server := newTestServers(t, handler)
	apiServer = server
	defer authServer.Close()
	defer apiServer.Close()

	got, err := client.GetRawPlaylistTracks(context.Background(),
		"spotify:playlist:37i9dQZEVXbNG2KDcFcKOF", true)
	assert.NoError(t, err)

	items, ok := got["items"].([]interface{})
	if !ok {
		t.Fatalf("Expected items array, got %T", got["items"])
	}
	assert.Len(t, items, 2)
}

func TestClient_GetRawPlaylistTracks_AuthFailure(t *testing.T) {
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_client"}`)
	}))
	defer authServer.Close()

	client, err := NewClient("id", "wrong-secret", zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	client.authURL = authServer.URL

	_, err = client.GetRawPlaylistTracks(context.Background(),
		"spotify:playlist:37i9dQZEVXbNG2KDcFcKOF", false)
	assert.Error(t, err)
}

func TestClient_GetRawPlaylistTracks_UpstreamError(t *testing.T) {
	client, authServer, apiServer := newTestServers(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer authServer.Close()
	defer apiServer.Close()

	_, err := client.GetRawPlaylistTracks(context.Background(),
		"spotify:playlist:37i9dQZEVXbNG2KDcFcKOF", false)
	assert.Error(t, err)
}
