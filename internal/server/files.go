package server

import (
	"bytes"
	"net/http"
	"path"
	"strings"
	"time"

	"billed/internal/backend"
)

// memoryFilesPrefix serves attachments uploaded to the in-memory backend.
const memoryFilesPrefix = "/files/"

func (s *Service) handleGetMemoryFile(memory *backend.Memory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, memoryFilesPrefix)

		data, ok := memory.File(key)
		if !ok {
			http.NotFound(w, r)
			return
		}

		http.ServeContent(w, r, path.Base(key), time.Time{}, bytes.NewReader(data))
	}
}
