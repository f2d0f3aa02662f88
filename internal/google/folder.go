package google

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// AppFolder owns the identity of the application's folder at the Drive root.
// The id is resolved lazily on first use and cached for the process lifetime;
// resolution runs at most once at a time, so concurrent first callers share a
// single find-or-create round-trip and can never provision duplicates.
type AppFolder struct {
	name   string
	client *Client
	logger *slog.Logger

	group singleflight.Group

	mu sync.Mutex
	id string // empty until resolved; never reset once set
}

// NewAppFolder returns an unresolved folder handle for the given display name.
func NewAppFolder(client *Client, name string, logger *slog.Logger) *AppFolder {
	if logger == nil {
		logger = slog.Default()
	}

	return &AppFolder{
		name:   name,
		client: client,
		logger: logger,
	}
}

// Name returns the configured display name.
func (f *AppFolder) Name() string {
	return f.name
}

// ID returns the folder's Drive id, resolving it on first call: the root
// listing is scanned for a folder with the configured name, and the folder is
// created when absent. Late concurrent callers wait on the in-flight
// resolution and observe its result without issuing any remote call. On
// failure the folder stays unresolved and a later call retries.
func (f *AppFolder) ID(ctx context.Context, token string) (string, error) {
	f.mu.Lock()
	if f.id != "" {
		id := f.id
		f.mu.Unlock()

		return id, nil
	}
	f.mu.Unlock()

	id, err, _ := f.group.Do("app-folder", func() (any, error) {
		return f.resolve(ctx, token)
	})
	if err != nil {
		return "", err
	}

	return id.(string), nil
}

// resolve performs the find-or-create sequence. Runs inside the single-flight
// group, so at most one execution is in flight.
func (f *AppFolder) resolve(ctx context.Context, token string) (string, error) {
	// A resolution that finished between the caller's fast-path check and
	// joining the group already cached the id.
	f.mu.Lock()
	if f.id != "" {
		id := f.id
		f.mu.Unlock()

		return id, nil
	}
	f.mu.Unlock()

	f.logger.Info("resolving app folder", slog.String("name", f.name))

	folder, err := f.client.FindInRoot(ctx, f.name, TypeFolder, token)
	if err != nil {
		return "", err
	}

	if folder == nil {
		f.logger.Info("app folder not found, creating", slog.String("name", f.name))

		folder, err = f.client.CreateFolder(ctx, f.name, token)
		if err != nil {
			return "", err
		}
	}

	f.mu.Lock()
	f.id = folder.ID
	f.mu.Unlock()

	f.logger.Info("app folder resolved",
		slog.String("name", f.name),
		slog.String("id", folder.ID),
	)

	return folder.ID, nil
}
