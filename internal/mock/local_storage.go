package mock

// LocalStorage is an in-memory key-value store.
type LocalStorage map[string]string

func (s LocalStorage) GetItem(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

func (s LocalStorage) SetItem(key, value string) {
	s[key] = value
}

func (s LocalStorage) RemoveItem(key string) {
	delete(s, key)
}
