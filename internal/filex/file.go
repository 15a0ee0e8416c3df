// Package filex manages the local directories the CLI writes downloads to.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureSubdDir creates dirName under the current working directory if it
// does not exist yet and returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// CreateInSubdDir creates (or truncates) fileName inside the dirName
// subdirectory of the working directory. Only the base name of fileName is
// used, so a name coming from a remote key cannot escape the directory.
func CreateInSubdDir(dirName, fileName string) (*os.File, error) {
	dir, err := EnsureSubdDir(dirName)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(filepath.Clean("/" + fileName))
	if base == "/" || base == "." {
		return nil, fmt.Errorf("invalid file name %q", fileName)
	}

	path := filepath.Join(dir, base)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
