package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasgio/gam/internal/logger"
)

const configFileMode os.FileMode = 0600

// TextFile is a whole-file reader/writer for a text file this tool shares
// with others, such as ~/.ssh/config.
type TextFile struct {
	path string
}

func NewTextFile(path string) *TextFile {
	return &TextFile{path: path}
}

func (f *TextFile) Path() string {
	return f.path
}

// Read returns the file content; a missing file reads as empty with
// exists=false.
func (f *TextFile) Read() (content string, exists bool, err error) {
	logger.LogFileOpen(f.path)
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		logger.LogError("READ", f.path, err)
		return "", false, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	return string(data), true, nil
}

// Write replaces the file content atomically, keeping the existing file
// mode when there is one. When the path is a symlink the link is kept and
// its target is rewritten.
func (f *TextFile) Write(content string) error {
	target, err := resolveLink(f.path)
	if err != nil {
		logger.LogError("WRITE", f.path, err)
		return fmt.Errorf("failed to write %s: %w", f.path, err)
	}

	mode := configFileMode
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	logger.LogFileWrite(target)
	if err := writeFileAtomic(target, []byte(content), mode); err != nil {
		logger.LogError("WRITE", target, err)
		return fmt.Errorf("failed to write %s: %w", f.path, err)
	}
	return nil
}

const maxLinkHops = 40

// resolveLink follows path through any chain of symlinks, dangling ones
// included, and returns the final non-link path.
func resolveLink(path string) (string, error) {
	for hop := 0; hop < maxLinkHops; hop++ {
		info, err := os.Lstat(path)
		if os.IsNotExist(err) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}

		dest, err := os.Readlink(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	return "", fmt.Errorf("too many levels of symbolic links: %s", path)
}
