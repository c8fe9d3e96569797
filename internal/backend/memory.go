package backend

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"billed/internal/fixtures"
	"billed/internal/utils"
	"billed/pkg/types"
)

// Memory keeps bills and attachments in process. It starts with the demo
// bills and is what `serve` runs on when BACKEND=memory.
type Memory struct {
	mu      sync.RWMutex
	bills   []types.Bill
	files   map[string][]byte
	baseURL string
}

func NewMemory(baseURL string) *Memory {
	return &Memory{
		bills:   fixtures.Bills(),
		files:   make(map[string][]byte),
		baseURL: baseURL,
	}
}

func (m *Memory) Get(ctx context.Context) ([]types.Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Bill, len(m.bills))
	copy(out, m.bills)

	return out, nil
}

func (m *Memory) Post(ctx context.Context, bill *types.Bill) ([]types.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bill.ID = utils.NanoIDSize(billIDSize)
	bill.CreatedAt = time.Now()
	m.bills = append(m.bills, *bill)

	out := make([]types.Bill, len(m.bills))
	copy(out, m.bills)

	return out, nil
}

func (m *Memory) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	m.mu.Lock()
	m.files[key] = data
	m.mu.Unlock()

	return m.baseURL + "/" + url.PathEscape(key), nil
}

// File returns an uploaded attachment.
func (m *Memory) File(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[key]
	return data, ok
}
