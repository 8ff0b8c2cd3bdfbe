package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/flashsync/internal/server/storage"
)

// Provider opens one SQLite record store per account under dir.
// Stores are created on first use and cached; a store with no active
// users is closed once more than maxIdle stores are cached.
type Provider struct {
	logger  *slog.Logger
	stores  map[string]*accountEntry
	dir     string
	maxIdle int
	mu      sync.Mutex
	closed  bool
}

type accountEntry struct {
	store *RecordStore
	err   error
	ready chan struct{}
	refs  int
}

// NewProvider creates a provider keeping account databases in dir
func NewProvider(dir string, maxIdle int, logger *slog.Logger) (*Provider, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create accounts directory: %w", err)
	}

	if maxIdle < 1 {
		maxIdle = 1
	}

	return &Provider{
		logger:  logger,
		stores:  make(map[string]*accountEntry),
		dir:     dir,
		maxIdle: maxIdle,
	}, nil
}

// Acquire returns the record store of accountID, creating it on first use.
// The returned release func must be called when the caller is done.
func (p *Provider) Acquire(ctx context.Context, accountID string) (storage.AccountStore, func(), error) {
	// Имя файла строится из account id, поэтому принимаем только UUID
	parsed, err := uuid.Parse(accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q", storage.ErrInvalidAccountID, accountID)
	}
	key := parsed.String()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, nil, storage.ErrProviderClosed
	}

	entry, ok := p.stores[key]
	if !ok {
		entry = &accountEntry{ready: make(chan struct{})}
		p.stores[key] = entry
	}
	entry.refs++
	p.mu.Unlock()

	if !ok {
		entry.store, entry.err = OpenRecordStore(ctx, p.path(key))
		close(entry.ready)
		if entry.err == nil {
			p.logger.Debug("Account store opened", "account_id", key)
		}
	} else {
		select {
		case <-entry.ready:
		case <-ctx.Done():
			p.release(key, entry)
			return nil, nil, ctx.Err()
		}
	}

	if entry.err != nil {
		p.release(key, entry)
		return nil, nil, fmt.Errorf("failed to open account store: %w", entry.err)
	}

	var once sync.Once
	release := func() {
		once.Do(func() { p.release(key, entry) })
	}

	return entry.store, release, nil
}

// Close closes every cached account store.
// Stores still held by callers are closed on their last release.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true

	var errs []error
	for key, entry := range p.stores {
		// Используемые store закроет последний release
		if entry.refs > 0 {
			continue
		}
		if isReady(entry) && entry.store != nil {
			if err := entry.store.Close(); err != nil {
				errs = append(errs, fmt.Errorf("account %s: %w", key, err))
			}
		}
		delete(p.stores, key)
	}

	return errors.Join(errs...)
}

func (p *Provider) release(key string, entry *accountEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry.refs--

	// Store еще открывается, решение примет открывающая горутина
	if !isReady(entry) {
		return
	}

	// Неудачное открытие не кешируем, следующий Acquire попробует снова
	if entry.err != nil {
		if p.stores[key] == entry {
			delete(p.stores, key)
		}
		return
	}

	if entry.refs > 0 || (!p.closed && len(p.stores) <= p.maxIdle) {
		return
	}

	if p.stores[key] == entry {
		delete(p.stores, key)
	}
	if entry.store != nil {
		if err := entry.store.Close(); err != nil {
			p.logger.Warn("Failed to close account store", "account_id", key, "error", err)
		}
	}
}

func (p *Provider) path(key string) string {
	return filepath.Join(p.dir, key+".db")
}

func isReady(entry *accountEntry) bool {
	select {
	case <-entry.ready:
		return true
	default:
		return false
	}
}
