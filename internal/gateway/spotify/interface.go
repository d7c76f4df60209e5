// Package spotify реализует интерфейсы для работы с Spotify Web API.
package spotify

import "context"

// Interface определяет интерфейс для работы с Spotify API
type Interface interface {
	// ExtractPlaylistID извлекает ID плейлиста из URL
	ExtractPlaylistID(playlistURL string) (string, error)

	// GetRawPlaylistTracks получает необработанный ответ эндпоинта треков плейлиста
	GetRawPlaylistTracks(ctx context.Context, playlistURL string, allPages bool) (RawPage, error)

	// GetPlaylistInfo получает информацию о плейлисте
	GetPlaylistInfo(ctx context.Context, playlistURL string) (*PlaylistInfo, error)
}
