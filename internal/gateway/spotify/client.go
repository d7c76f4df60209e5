// Package spotify реализует клиент для работы с Spotify Web API.
package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
)

const (
	defaultAuthURL = "https://accounts.spotify.com/api/token"
	defaultBaseURL = "https://api.spotify.com/v1"
)

// tokenTransport добавляет токен к каждому запросу
type tokenTransport struct {
	base      http.RoundTripper
	token     string
	tokenType string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", t.tokenType+" "+t.token)

	// Используем DefaultTransport если base равен nil
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(req)
}

// Client представляет клиент для работы с Spotify API
type Client struct {
	clientID     string
	clientSecret string
	authURL      string
	baseURL      string
	logger       *zap.Logger
}

var _ Interface = (*Client)(nil)

// NewClient создает новый Spotify клиент с использованием Client Credentials Flow
func NewClient(clientID, clientSecret string, logger *zap.Logger) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("spotify client ID and secret are required")
	}

	logger.Info("Spotify client created successfully with client credentials flow")

	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		authURL:      defaultAuthURL,
		baseURL:      defaultBaseURL,
		logger:       logger,
	}, nil
}

// authorizedHTTPClient выполняет обмен учетных данных на токен и возвращает
// HTTP клиент, который добавляет токен к каждому запросу
func (c *Client) authorizedHTTPClient(ctx context.Context) (*http.Client, error) {
	httpClient := &http.Client{}

	// Подготавливаем данные для запроса токена согласно документации Spotify
	data := url.Values{}
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, "POST", c.authURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	// Устанавливаем заголовки согласно документации
	credentials := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	if tokenResponse.AccessToken == "" {
		return nil, fmt.Errorf("no access token received")
	}

	return &http.Client{
		Transport: &tokenTransport{
			base:      http.DefaultTransport,
			token:     tokenResponse.AccessToken,
			tokenType: tokenResponse.TokenType,
		},
	}, nil
}

// ExtractPlaylistID извлекает ID плейлиста из URL
func (c *Client) ExtractPlaylistID(playlistURL string) (string, error) {
	// Поддерживаем разные форматы URL:
	// https://open.spotify.com/playlist/37i9dQZEVXbNG2KDcFcKOF?si=...
	// spotify:playlist:37i9dQZEVXbNG2KDcFcKOF

	if strings.HasPrefix(playlistURL, "spotify:playlist:") {
		return strings.TrimPrefix(playlistURL, "spotify:playlist:"), nil
	}

	if strings.Contains(playlistURL, "open.spotify.com/playlist/") {
		parts := strings.Split(playlistURL, "/playlist/")
		if len(parts) != 2 {
			return "", fmt.Errorf("invalid playlist URL format")
		}
		// Убираем возможные параметры после ID
		playlistID := strings.Split(parts[1], "?")[0]
		return playlistID, nil
	}

	return "", fmt.Errorf("unsupported playlist URL format")
}

// GetRawPlaylistTracks получает ответ эндпоинта треков плейлиста как
// непроверяемое JSON-дерево. При allPages страницы после первой
// дописываются в массив items первой страницы.
func (c *Client) GetRawPlaylistTracks(ctx context.Context, playlistURL string, allPages bool) (RawPage, error) {
	playlistID, err := c.ExtractPlaylistID(playlistURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract playlist ID: %w", err)
	}

	httpClient, err := c.authorizedHTTPClient(ctx)
	if err != nil {
		c.logger.Error("Failed to authorize Spotify client", zap.Error(err))
		return nil, fmt.Errorf("failed to authorize spotify client: %w", err)
	}

	pageURL := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, playlistID)

	first, err := c.fetchRawPage(ctx, httpClient, pageURL)
	if err != nil {
		return nil, err
	}

	if !allPages {
		return first, nil
	}

	// Дописываем последующие страницы в items первой страницы
	items, _ := first["items"].([]interface{})
	next, _ := first["next"].(string)

	for next != "" {
		c.logger.Debug("Requesting next playlist page", zap.String("url", next))

		page, err := c.fetchRawPage(ctx, httpClient, next)
		if err != nil {
			return nil, err
		}

		pageItems, ok := page["items"].([]interface{})
		if !ok {
			c.logger.Warn("Playlist page without items array, stopping pagination")
			break
		}
		items = append(items, pageItems...)

		next, _ = page["next"].(string)
	}

	first["items"] = items

	c.logger.Info("Retrieved playlist tracks",
		zap.String("playlist_id", playlistID),
		zap.Int("items", len(items)))

	return first, nil
}

// fetchRawPage выполняет один GET запрос и декодирует тело как JSON-дерево
func (c *Client) fetchRawPage(ctx context.Context, httpClient *http.Client, pageURL string) (RawPage, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracks request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist tracks: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tracks request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	// UseNumber сохраняет числовые литералы без потери точности
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var page RawPage
	if err := decoder.Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode tracks response: %w", err)
	}

	return page, nil
}

// GetPlaylistInfo получает информацию о плейлисте
func (c *Client) GetPlaylistInfo(ctx context.Context, playlistURL string) (*PlaylistInfo, error) {
	playlistID, err := c.ExtractPlaylistID(playlistURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract playlist ID: %w", err)
	}

	httpClient, err := c.authorizedHTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize spotify client: %w", err)
	}

	client := spotify.New(httpClient)

	c.logger.Debug("Requesting playlist info from Spotify API")
	playlist, err := client.GetPlaylist(ctx, spotify.ID(playlistID))
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	return &PlaylistInfo{
		ID:          string(playlist.ID),
		Name:        playlist.Name,
		Description: playlist.Description,
		TotalTracks: int(playlist.Tracks.Total),
		Public:      playlist.IsPublic,
		Owner:       playlist.Owner.DisplayName,
	}, nil
}
