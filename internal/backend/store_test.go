package backend_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billed/internal/backend"
	"billed/internal/fixtures"
	"billed/pkg/types"
)

type fakeRepository struct {
	bills []types.Bill
	err   error
}

func (r *fakeRepository) Bills(ctx context.Context) ([]types.Bill, error) {
	return r.bills, r.err
}

func (r *fakeRepository) CreateBill(ctx context.Context, bill *types.Bill) error {
	if r.err != nil {
		return r.err
	}
	bill.ID = "created"
	r.bills = append(r.bills, *bill)
	return nil
}

type fakeFiles struct {
	uploaded  map[string]string
	deleted   []string
	err       error
	deleteErr error
}

func (f *fakeFiles) UploadFile(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(body)
	f.uploaded[key] = string(b)
	return key, nil
}

func (f *fakeFiles) DeleteFile(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	delete(f.uploaded, key)
	return nil
}

func (f *fakeFiles) FileURL(ctx context.Context, key string) (string, error) {
	return "https://files.test/" + key, nil
}

func TestStore(t *testing.T) {
	repo := &fakeRepository{bills: fixtures.Bills()}
	files := &fakeFiles{uploaded: map[string]string{}}
	s := backend.NewStore(repo, files)

	bills, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, bills, 4)

	bills, err = s.Post(context.Background(), &types.Bill{Email: "a@a"})
	require.NoError(t, err)
	assert.Len(t, bills, 5)
	assert.Equal(t, "created", bills[4].ID)

	url, err := s.Upload(context.Background(), "justificatifs/image.jpg", strings.NewReader("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://files.test/justificatifs/image.jpg", url)
	assert.Equal(t, "jpeg", files.uploaded["justificatifs/image.jpg"])
}

func TestStoreFailures(t *testing.T) {
	repo := &fakeRepository{err: errors.New("Erreur 500")}
	files := &fakeFiles{uploaded: map[string]string{}, err: errors.New("Erreur 404")}
	s := backend.NewStore(repo, files)

	_, err := s.Get(context.Background())
	assert.ErrorContains(t, err, "Erreur 500")

	_, err = s.Post(context.Background(), &types.Bill{})
	assert.ErrorContains(t, err, "Erreur 500")
	assert.Empty(t, files.deleted)

	_, err = s.Upload(context.Background(), "k", strings.NewReader(""), "image/png")
	assert.ErrorContains(t, err, "Erreur 404")
}

func TestStorePostRemovesAttachmentOnFailure(t *testing.T) {
	repo := &fakeRepository{}
	files := &fakeFiles{uploaded: map[string]string{}}
	s := backend.NewStore(repo, files)

	_, err := s.Upload(context.Background(), "justificatifs/image.jpg", strings.NewReader("jpeg"), "image/jpeg")
	require.NoError(t, err)

	repo.err = errors.New("Erreur 500")
	_, err = s.Post(context.Background(), &types.Bill{Email: "a@a", FileName: "image.jpg"})
	assert.ErrorContains(t, err, "Erreur 500")
	assert.Equal(t, []string{"justificatifs/image.jpg"}, files.deleted)
	assert.NotContains(t, files.uploaded, "justificatifs/image.jpg")

	files.deleteErr = errors.New("access denied")
	_, err = s.Post(context.Background(), &types.Bill{Email: "a@a", FileName: "image.jpg"})
	assert.ErrorContains(t, err, "Erreur 500")
	assert.ErrorContains(t, err, "access denied")
}
