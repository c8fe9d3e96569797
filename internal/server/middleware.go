package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"billed/internal/container"
	"billed/pkg/types"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	contextKeyStorage contextKey = "local_storage"
	contextKeyEmail   contextKey = "email"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireEmployee loads the local storage cookie and lets the request
// through only when it holds an employee user.
func (s *Service) RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storage, err := s.loadLocalStorage(r)
		if err != nil {
			s.logger.WithError(err).Debug("no usable local storage cookie")
			s.redirectToLogin(w, r)
			return
		}

		user, err := container.CurrentUser(storage)
		if err != nil {
			s.logger.WithError(err).Debug("no user in local storage")
			s.redirectToLogin(w, r)
			return
		}

		if user.Type != types.UserTypeEmployee {
			s.logger.WithField("type", user.Type).Debug("user is not an employee")
			s.redirectToLogin(w, r)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, contextKeyStorage, storage)
		if user.Email != "" {
			ctx = context.WithValue(ctx, contextKeyEmail, user.Email)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func localStorageFromContext(ctx context.Context) container.LocalStorage {
	storage, ok := ctx.Value(contextKeyStorage).(*cookieStorage)
	if !ok {
		return nil
	}
	return storage
}
