// Package storage implements the folder capability used by extraction and restoration.
//
// A [Folder] is flat: entries are enumerated one level deep and files are addressed by bare name.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/desertthunder/tubesync/internal/shared"
)

// Kind distinguishes files from sub-folders.
type Kind string

const (
	KindFile Kind = "file"
	KindDir  Kind = "directory"
)

// Entry is one item of a folder listing.
type Entry struct {
	Name string
	Kind Kind
}

// Folder is a flat, text-oriented directory.
type Folder interface {
	// Name returns the folder's display name.
	Name() string

	// Entries lists the folder's immediate children.
	Entries(ctx context.Context) ([]Entry, error)

	// ReadText returns the contents of the named file.
	ReadText(ctx context.Context, name string) (string, error)

	// WriteText creates or truncates the named file and writes text to it.
	WriteText(ctx context.Context, name, text string) error
}

// Dir is a [Folder] on the local filesystem.
type Dir struct {
	path string
}

// OpenDir opens an existing directory.
//
// Returns [shared.ErrCapabilityUnavailable] when path does not exist or is not a directory.
func OpenDir(path string) (*Dir, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: folder %s: %v", shared.ErrCapabilityUnavailable, path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", shared.ErrCapabilityUnavailable, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Dir{path: abs}, nil
}

// Name returns the directory's base name.
func (d *Dir) Name() string { return filepath.Base(d.path) }

// Path returns the directory's absolute path.
func (d *Dir) Path() string { return d.path }

// Sub opens the named child directory, creating it when missing.
func (d *Dir) Sub(name string) (*Dir, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	path := filepath.Join(d.path, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create folder %s: %w", name, err)
	}
	return &Dir{path: path}, nil
}

// Entries lists the directory's immediate children sorted by name.
func (d *Dir) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder %s: %w", d.Name(), err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		kind := KindFile
		if de.IsDir() {
			kind = KindDir
		}
		entries = append(entries, Entry{Name: de.Name(), Kind: kind})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// ReadText reads the named file.
func (d *Dir) ReadText(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validName(name); err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(d.path, name))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

// WriteText creates or truncates the named file.
func (d *Dir) WriteText(ctx context.Context, name, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validName(name); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(d.path, name), []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

var errBadName = errors.New("invalid entry name")

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, os.PathSeparator) {
		return fmt.Errorf("%w: %w %q", shared.ErrInvalidArgument, errBadName, name)
	}
	return nil
}
