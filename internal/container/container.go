// Package container binds user actions on the employee pages to the backend.
// A container is built per request from explicit collaborators and holds no
// state beyond that request.
package container

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"billed/internal"
	"billed/pkg/types"

	"github.com/sirupsen/logrus"
)

var ErrNoUser = errors.New("no user in local storage")

// Backend is the document store and file storage the containers delegate to.
type Backend interface {
	// Get lists every stored bill.
	Get(ctx context.Context) ([]types.Bill, error)
	// Post stores the bill, assigning its ID, and returns the collection
	// including it.
	Post(ctx context.Context, bill *types.Bill) ([]types.Bill, error)
	// Upload stores an attachment under key and returns its URL.
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// LocalStorage is the client side key-value store holding the current user.
type LocalStorage interface {
	GetItem(key string) (string, bool)
}

type Deps struct {
	OnNavigate   func(pathname string)
	Backend      Backend
	LocalStorage LocalStorage
	Logger       logrus.FieldLogger
}

func (d Deps) navigate(pathname string) {
	if d.OnNavigate != nil {
		d.OnNavigate(pathname)
	}
}

func (d Deps) logger() logrus.FieldLogger {
	if d.Logger == nil {
		return logrus.StandardLogger()
	}
	return d.Logger
}

// CurrentUser decodes the user record kept under the "user" key.
func CurrentUser(storage LocalStorage) (*types.User, error) {
	if storage == nil {
		return nil, ErrNoUser
	}

	raw, ok := storage.GetItem(internal.LOCAL_STORAGE_USER_KEY)
	if !ok || raw == "" {
		return nil, ErrNoUser
	}

	var user = new(types.User)
	if err := json.Unmarshal([]byte(raw), user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	return user, nil
}
