// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/tubesync/internal/models"
	"github.com/desertthunder/tubesync/internal/storage"
)

// Call is one recorded [MockGateway] invocation.
type Call struct {
	Op   string
	Args []string
}

func (c Call) String() string {
	return c.Op + "(" + strings.Join(c.Args, ", ") + ")"
}

// MockGateway is a scripted test double for services.Gateway.
//
// Playlists and Items are served as-is. Errors keyed by "op" or "op:arg" are returned instead of calling through.
// Created playlists get IDs "new-1", "new-2", ... and receive added videos in Added.
type MockGateway struct {
	mu        sync.Mutex
	Playlists []models.PlaylistSummary
	Items     map[string][]models.PlaylistItem
	Errors    map[string]error
	Channel   *models.Channel
	Added     map[string][]string
	Created   []models.PlaylistSummary
	Calls     []Call
	created   int

	// OnCall runs after a call is recorded; tests use it to cancel contexts or inspect state mid-run.
	OnCall func(Call)
}

// NewMockGateway creates a [MockGateway] serving playlists.
func NewMockGateway(playlists ...models.PlaylistSummary) *MockGateway {
	return &MockGateway{
		Playlists: playlists,
		Items:     make(map[string][]models.PlaylistItem),
		Errors:    make(map[string]error),
		Added:     make(map[string][]string),
	}
}

// FailOn scripts err for op, or for op with a specific first argument when arg is given.
func (m *MockGateway) FailOn(op string, err error, arg ...string) *MockGateway {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := op
	if len(arg) > 0 {
		key = op + ":" + arg[0]
	}
	m.Errors[key] = err
	return m
}

func (m *MockGateway) call(op string, args ...string) error {
	m.mu.Lock()
	c := Call{Op: op, Args: args}
	m.Calls = append(m.Calls, c)
	err := m.Errors[op]
	for _, a := range args {
		if e, ok := m.Errors[op+":"+a]; ok {
			err = e
		}
	}
	hook := m.OnCall
	m.mu.Unlock()

	if hook != nil {
		hook(c)
	}
	return err
}

// CallsTo returns the recorded calls of op.
func (m *MockGateway) CallsTo(op string) []Call {
	m.mu.Lock()
	defer m.mu.Unlock()

	var calls []Call
	for _, c := range m.Calls {
		if c.Op == op {
			calls = append(calls, c)
		}
	}
	return calls
}

func (m *MockGateway) ListPlaylists(ctx context.Context) ([]models.PlaylistSummary, error) {
	if err := m.call("ListPlaylists"); err != nil {
		return nil, err
	}
	return append([]models.PlaylistSummary(nil), m.Playlists...), nil
}

func (m *MockGateway) ListItems(ctx context.Context, playlistID string) ([]models.PlaylistItem, error) {
	if err := m.call("ListItems", playlistID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.PlaylistItem(nil), m.Items[playlistID]...), nil
}

func (m *MockGateway) CreatePlaylist(ctx context.Context, title, description string, privacy models.Privacy) (string, error) {
	if err := m.call("CreatePlaylist", title, description, string(privacy)); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
	id := fmt.Sprintf("new-%d", m.created)
	m.Created = append(m.Created, models.PlaylistSummary{ID: id, Title: title, Description: description, PrivacyStatus: string(privacy)})
	return id, nil
}

func (m *MockGateway) AddItem(ctx context.Context, playlistID, videoID string) error {
	if err := m.call("AddItem", playlistID, videoID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Added[playlistID] = append(m.Added[playlistID], videoID)
	return nil
}

func (m *MockGateway) Profile(ctx context.Context) (*models.Channel, error) {
	if err := m.call("Profile"); err != nil {
		return nil, err
	}
	if m.Channel == nil {
		return &models.Channel{ID: "UCmock", Title: "Mock Channel"}, nil
	}
	return m.Channel, nil
}

// MemFolder is an in-memory storage.Folder.
type MemFolder struct {
	mu       sync.Mutex
	name     string
	Files    map[string]string
	Dirs     []string
	ReadErr  map[string]error
	WriteErr map[string]error
	ListErr  error
}

// NewMemFolder creates an empty [MemFolder].
func NewMemFolder(name string) *MemFolder {
	return &MemFolder{
		name:     name,
		Files:    make(map[string]string),
		ReadErr:  make(map[string]error),
		WriteErr: make(map[string]error),
	}
}

func (f *MemFolder) Name() string { return f.name }

func (f *MemFolder) Entries(ctx context.Context) ([]storage.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ListErr != nil {
		return nil, f.ListErr
	}

	var entries []storage.Entry
	for name := range f.Files {
		entries = append(entries, storage.Entry{Name: name, Kind: storage.KindFile})
	}
	for _, name := range f.Dirs {
		entries = append(entries, storage.Entry{Name: name, Kind: storage.KindDir})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (f *MemFolder) ReadText(ctx context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ReadErr[name]; err != nil {
		return "", err
	}
	text, ok := f.Files[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, os.ErrNotExist)
	}
	return text, nil
}

func (f *MemFolder) WriteText(ctx context.Context, name, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.WriteErr[name]; err != nil {
		return err
	}
	f.Files[name] = text
	return nil
}

// CountingPacer records Wait calls without sleeping.
type CountingPacer struct {
	mu    sync.Mutex
	waits int
}

func (p *CountingPacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waits++
	return nil
}

// Waits returns how many times Wait was called.
func (p *CountingPacer) Waits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waits
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// AssertFileExists fails the test when path is missing.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("expected file %s to exist", path)
	}
}

// MustReadFile reads path or fails the test.
func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(content)
}
