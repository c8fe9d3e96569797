package server

import (
	"net/http"

	"billed/internal"
)

// cookieStorage is the per-browser key-value store. It lives in one
// securecookie encoded cookie and is written back with save.
type cookieStorage struct {
	items map[string]string
}

func (c *cookieStorage) GetItem(key string) (string, bool) {
	value, ok := c.items[key]
	return value, ok
}

func (c *cookieStorage) SetItem(key, value string) {
	c.items[key] = value
}

func (c *cookieStorage) RemoveItem(key string) {
	delete(c.items, key)
}

func (s *Service) loadLocalStorage(r *http.Request) (*cookieStorage, error) {
	cookie, err := r.Cookie(internal.COOKIE_LOCAL_STORAGE_NAME)
	if err != nil {
		return nil, err
	}

	var items = make(map[string]string)
	if err := s.cookie.Decode(internal.COOKIE_LOCAL_STORAGE_NAME, cookie.Value, &items); err != nil {
		return nil, err
	}

	return &cookieStorage{items: items}, nil
}

func (s *Service) saveLocalStorage(w http.ResponseWriter, storage *cookieStorage) error {
	encoded, err := s.cookie.Encode(internal.COOKIE_LOCAL_STORAGE_NAME, storage.items)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_LOCAL_STORAGE_NAME,
		Value:    encoded,
		HttpOnly: true,
		Secure:   s.config.Environment != "development",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.config.SessionMaxAgeSec,
		Path:     "/",
	})

	return nil
}

func (s *Service) clearLocalStorage(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_LOCAL_STORAGE_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   s.config.Environment != "development",
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
