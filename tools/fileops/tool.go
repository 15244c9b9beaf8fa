package fileops

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/bububa/vexa/tools"
)

const (
	defaultName        = "file_ops"
	defaultDescription = "Basic file operations. Use 'list' to list files in current directory, 'list [path]' for specific directory, 'info [path]' for size and type of a file, or 'pwd' for current working directory."
	// Usage is returned for unsupported operations
	Usage = "Supported operations: 'list [path]' to list files, 'info [path]' for file details, 'pwd' for current directory"
	// DefaultListLimit entries shown by list
	DefaultListLimit = 10
)

// ErrOutsideRoot the requested path escapes the tool root
var ErrOutsideRoot = errors.New("path is outside the working directory")

// Tool answers simple read-only questions about the file system below a root
type Tool struct {
	tools.Config
	root     string
	realRoot string
	limit    int
}

var _ tools.Tool = (*Tool)(nil)

type Option func(t *Tool)

// WithRoot confines the tool to dir
func WithRoot(dir string) Option {
	return func(t *Tool) {
		t.root = dir
	}
}

// WithListLimit sets how many entries list shows
func WithListLimit(n int) Option {
	return func(t *Tool) {
		t.limit = n
	}
}

func New(opts []Option, toolOpts ...tools.Option) (*Tool, error) {
	ret := new(Tool)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		ret.root = wd
	}
	root, err := filepath.Abs(ret.root)
	if err != nil {
		return nil, err
	}
	ret.root = root
	if ret.realRoot, err = filepath.EvalSymlinks(root); err != nil {
		return nil, err
	}
	if ret.limit <= 0 {
		ret.limit = DefaultListLimit
	}
	tools.Apply(&ret.Config, defaultName, defaultDescription, toolOpts...)
	return ret, nil
}

// Root returns the absolute sandbox directory
func (t *Tool) Root() string {
	return t.root
}

func (t *Tool) Invoke(ctx context.Context, argument string) (string, error) {
	operation := strings.TrimSpace(argument)
	op, arg, _ := strings.Cut(operation, " ")
	arg = strings.Trim(strings.TrimSpace(arg), "\"'")
	switch strings.ToLower(op) {
	case "list", "ls":
		return t.list(arg)
	case "pwd":
		return "Current directory: " + t.root, nil
	case "info", "stat":
		return t.info(arg)
	default:
		return Usage, nil
	}
}

func (t *Tool) list(arg string) (string, error) {
	display := arg
	if display == "" {
		display = "."
	}
	path, err := t.resolve(arg)
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("listing '%s': %w", display, err)
	}
	names := make([]string, 0, min(len(entries), t.limit))
	for _, entry := range entries {
		if len(names) == t.limit {
			break
		}
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	var more string
	if len(entries) > t.limit {
		more = "..."
	}
	return fmt.Sprintf("Files in '%s': %s%s", display, strings.Join(names, ", "), more), nil
}

func (t *Tool) info(arg string) (string, error) {
	if arg == "" {
		return Usage, nil
	}
	path, err := t.resolve(arg)
	if err != nil {
		return "", err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("inspecting '%s': %w", arg, err)
	}
	if stat.IsDir() {
		return fmt.Sprintf("'%s' is a directory, modified %s", arg, stat.ModTime().Format("2006-01-02 15:04:05")), nil
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detecting type of '%s': %w", arg, err)
	}
	return fmt.Sprintf("'%s': %d bytes, %s, modified %s", arg, stat.Size(), mtype.String(), stat.ModTime().Format("2006-01-02 15:04:05")), nil
}

// resolve maps a user path onto the root and refuses anything outside it,
// following symlinks
func (t *Tool) resolve(arg string) (string, error) {
	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(t.root, path)
	}
	resolved, err := realPath(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolving '%s': %w", arg, err)
	}
	rel, err := filepath.Rel(t.realRoot, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, arg)
	}
	return resolved, nil
}

// realPath evaluates symlinks in path. A missing tail is kept as is
// below its nearest existing parent.
func realPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	parent := filepath.Dir(path)
	if parent == path {
		return path, nil
	}
	resolved, err = realPath(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolved, filepath.Base(path)), nil
}
