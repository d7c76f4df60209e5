// Package spotify содержит типы для работы с Spotify API.
package spotify

// RawPage представляет необработанный ответ эндпоинта треков плейлиста.
// Структура ответа принадлежит Spotify API и не моделируется типами.
type RawPage = map[string]interface{}

// PlaylistInfo содержит информацию о плейлисте Spotify
type PlaylistInfo struct {
	ID          string
	Name        string
	Description string
	TotalTracks int
	Public      bool
	Owner       string
}
