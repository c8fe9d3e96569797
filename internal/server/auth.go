package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"slices"
	"strings"

	"billed/internal"
	"billed/internal/container"
	"billed/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cognitotypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

const (
	loginTitle = "Billed"

	loginErrorInvalid  = "Email ou mot de passe incorrect."
	loginErrorEmployee = "Cet espace est réservé aux employés."

	// adminGroup is the Cognito group of back office users.
	adminGroup = "admin"
)

var errInvalidCredentials = errors.New("invalid credentials")

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (s *Service) handleGetLogin(w http.ResponseWriter, r *http.Request) {
	if storage, err := s.loadLocalStorage(r); err == nil {
		user, err := container.CurrentUser(storage)
		if err == nil && user.Type == types.UserTypeEmployee {
			s.logger.Debug("user is already logged in, redirecting to bills")
			http.Redirect(w, r, internal.ROUTE_BILLS, http.StatusSeeOther)
			return
		}
	}

	data := &types.LoginPageData{BasePageData: types.BasePageData{Title: loginTitle}}
	s.renderPage(w, r, http.StatusOK, data, func(w io.Writer) error {
		return s.views.LoginUI(w, data)
	})
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	var form loginForm
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}
	form.Email = strings.TrimSpace(form.Email)

	data := &types.LoginPageData{
		BasePageData: types.BasePageData{Title: loginTitle},
		Email:        form.Email,
	}

	user, err := s.authenticate(r.Context(), form)
	if err != nil {
		s.logger.WithError(err).WithField("email", form.Email).Info("login failed")
		data.Error = loginErrorInvalid
		s.renderPage(w, r, http.StatusUnauthorized, data, func(w io.Writer) error {
			return s.views.LoginUI(w, data)
		})
		return
	}

	if user.Type != types.UserTypeEmployee {
		data.Error = loginErrorEmployee
		s.renderPage(w, r, http.StatusForbidden, data, func(w io.Writer) error {
			return s.views.LoginUI(w, data)
		})
		return
	}

	record, err := json.Marshal(user)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode user")
		s.internalServerError(w)
		return
	}

	storage := &cookieStorage{items: make(map[string]string)}
	storage.SetItem(internal.LOCAL_STORAGE_USER_KEY, string(record))
	if err := s.saveLocalStorage(w, storage); err != nil {
		s.logger.WithError(err).Error("failed to encode local storage")
		s.internalServerError(w)
		return
	}

	s.logger.WithField("email", user.Email).Info("user logged in")

	http.Redirect(w, r, internal.ROUTE_BILLS, http.StatusSeeOther)
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearLocalStorage(w)
	http.Redirect(w, r, internal.ROUTE_LOGIN, http.StatusSeeOther)
}

// authenticate resolves the user record for the submitted credentials. Without
// an identity provider the typed email is trusted.
func (s *Service) authenticate(ctx context.Context, form loginForm) (*types.User, error) {
	if s.cognitoClient == nil {
		addr, err := mail.ParseAddress(form.Email)
		if err != nil {
			return nil, errInvalidCredentials
		}
		return &types.User{Type: types.UserTypeEmployee, Email: addr.Address}, nil
	}

	input := &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: cognitotypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(s.config.CognitoClientID),
		AuthParameters: map[string]string{
			"USERNAME": form.Email,
			"PASSWORD": form.Password,
		},
	}

	resp, err := s.cognitoClient.InitiateAuth(ctx, input)
	if err != nil {
		// NotAuthorizedException, UserNotConfirmedException, etc.
		return nil, fmt.Errorf("%w: %w", errInvalidCredentials, err)
	}

	if resp.AuthenticationResult == nil || resp.AuthenticationResult.IdToken == nil {
		return nil, errInvalidCredentials
	}

	return s.userFromIDToken(ctx, aws.ToString(resp.AuthenticationResult.IdToken))
}

func (s *Service) userFromIDToken(ctx context.Context, idToken string) (*types.User, error) {
	set, err := s.jwksCache.Lookup(ctx, s.jwksURL)
	if err != nil {
		return nil, fmt.Errorf("fetch JWKS: %w", err)
	}

	token, err := jwt.Parse(
		[]byte(idToken),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, fmt.Errorf("parse id token: %w", err)
	}

	var email string
	if err := token.Get("email", &email); err != nil || email == "" {
		return nil, errors.New("no email claim in id token")
	}

	user := &types.User{Type: types.UserTypeEmployee, Email: email}

	var groups []any
	if err := token.Get("cognito:groups", &groups); err == nil {
		if slices.ContainsFunc(groups, func(g any) bool {
			name, _ := g.(string)
			return name == adminGroup
		}) {
			user.Type = types.UserTypeAdmin
		}
	}

	return user, nil
}
