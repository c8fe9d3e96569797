// Package backend provides the document store and file storage the employee
// pages delegate to.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"

	"billed/internal"
	"billed/pkg/types"
)

// billIDSize matches the length of the ids of the demo bills.
const billIDSize = 20

type BillRepository interface {
	Bills(ctx context.Context) ([]types.Bill, error)
	CreateBill(ctx context.Context, bill *types.Bill) error
}

type FileStorage interface {
	UploadFile(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	FileURL(ctx context.Context, key string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}

// Store persists bills in a repository and attachments in file storage.
type Store struct {
	bills BillRepository
	files FileStorage
}

func NewStore(bills BillRepository, files FileStorage) *Store {
	return &Store{bills: bills, files: files}
}

func (s *Store) Get(ctx context.Context) ([]types.Bill, error) {
	bills, err := s.bills.Bills(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

// Post inserts the bill. When the insert fails the attachment uploaded for it
// is removed, the bill being the only thing referencing it.
func (s *Store) Post(ctx context.Context, bill *types.Bill) ([]types.Bill, error) {
	if err := s.bills.CreateBill(ctx, bill); err != nil {
		err = fmt.Errorf("failed to create bill: %w", err)
		if bill.FileName == "" {
			return nil, err
		}

		key := internal.STORAGE_KEY_PREFIX + bill.FileName
		if delErr := s.files.DeleteFile(ctx, key); delErr != nil {
			return nil, errors.Join(err, fmt.Errorf("failed to remove attachment %s: %w", key, delErr))
		}
		return nil, err
	}
	return s.Get(ctx)
}

func (s *Store) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	key, err := s.files.UploadFile(ctx, key, body, contentType)
	if err != nil {
		return "", err
	}

	return s.files.FileURL(ctx, key)
}
