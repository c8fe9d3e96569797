package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"billed/internal"
	"billed/internal/backend"
	"billed/internal/container"
	"billed/internal/views"
	"billed/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

//go:embed static
var staticFS embed.FS
var decoder = form.NewDecoder()

// backendTimeout bounds every backend call made while serving a request.
const backendTimeout = 15 * time.Second

// modalWidth is the width in pixels of the attachment modal.
const modalWidth = 800

type authClient interface {
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
}

type Service struct {
	logger  *logrus.Logger
	config  *types.Config
	views   *views.Renderer
	backend container.Backend
	cookie  *securecookie.SecureCookie

	// nil when no identity provider is configured, login then trusts the
	// typed email.
	cognitoClient authClient
	jwksCache     *jwk.Cache
	jwksURL       string

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	billsBackend container.Backend,
	cognitoClient authClient,
	jwkCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie hash key: %w", err)
	}
	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie block key: %w", err)
	}

	renderer, err := views.Load()
	if err != nil {
		return nil, err
	}

	cookie := securecookie.New(hashKey, blockKey)
	cookie.MaxAge(config.SessionMaxAgeSec)

	s := &Service{
		logger:  logger,
		config:  config,
		views:   renderer,
		backend: billsBackend,
		cookie:  cookie,

		cognitoClient: cognitoClient,
		jwksCache:     jwkCache,
		jwksURL:       jwksURL,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	if err := s.buildRouter(mux); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) error {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc(internal.ROUTE_LOGIN, s.handleGetLogin, http.MethodGet)
	r.HandleFunc(internal.ROUTE_LOGIN, s.handlePostLogin, http.MethodPost)
	r.HandleFunc(internal.ROUTE_LOGOUT, s.handleLogout, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireEmployee)

		r.HandleFunc(internal.ROUTE_BILLS, s.handleGetBills, http.MethodGet)
		r.HandleFunc(internal.ROUTE_BILLS, s.handlePostBills, http.MethodPost)
		r.HandleFunc(internal.ROUTE_NEW_BILL, s.handleGetNewBill, http.MethodGet)
		r.HandleFunc(internal.ROUTE_NEW_BILL, s.handlePostNewBill, http.MethodPost)

		if memory, ok := s.backend.(*backend.Memory); ok {
			r.HandleFunc(memoryFilesPrefix+"...", s.handleGetMemoryFile(memory), http.MethodGet)
		}
	})

	staticRoot, err := fs.Sub(staticFS, "static")
	if err != nil {
		return fmt.Errorf("mount static assets: %w", err)
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)

	return nil
}

// deps wires a container to the current request: navigating redirects.
func (s *Service) deps(w http.ResponseWriter, r *http.Request) container.Deps {
	return container.Deps{
		OnNavigate: func(pathname string) {
			http.Redirect(w, r, pathname, http.StatusSeeOther)
		},
		Backend:      s.backend,
		LocalStorage: localStorageFromContext(r.Context()),
		Logger:       s.logger.WithField("path", r.URL.Path),
	}
}
