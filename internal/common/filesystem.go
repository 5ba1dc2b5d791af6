// Package common provides shared interfaces and utilities used across the
// checker packages.
//
//nolint:revive // var-naming: package name "common" is intentional for shared internal utilities
package common

import (
	"errors"
	"io/fs"
	"os"
)

// Error definitions for static error handling
var (
	ErrEmptyPath = errors.New("path cannot be empty")
)

// FileSystem defines the interface for the file system operations the
// checker needs. It allows for easy mocking in tests and provides a
// consistent API for file operations across packages.
type FileSystem interface {
	// ReadFile reads the whole file at path
	ReadFile(path string) ([]byte, error)

	// FileExists checks if a file or directory exists
	FileExists(path string) (bool, error)

	// IsDir checks if the path is a directory
	IsDir(path string) (bool, error)

	// Lstat returns file information without following symlinks
	Lstat(path string) (fs.FileInfo, error)
}

// DefaultFileSystem implements FileSystem using standard os package functions
type DefaultFileSystem struct{}

// NewDefaultFileSystem creates a new DefaultFileSystem
func NewDefaultFileSystem() *DefaultFileSystem {
	return &DefaultFileSystem{}
}

// ReadFile reads the whole file at path
func (f *DefaultFileSystem) ReadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	return os.ReadFile(path)
}

// FileExists checks if a file or directory exists
func (f *DefaultFileSystem) FileExists(path string) (bool, error) {
	if path == "" {
		return false, ErrEmptyPath
	}
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsDir checks if the path is a directory
func (f *DefaultFileSystem) IsDir(path string) (bool, error) {
	if path == "" {
		return false, ErrEmptyPath
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// Lstat returns file information without following symlinks
func (f *DefaultFileSystem) Lstat(path string) (fs.FileInfo, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	return os.Lstat(path)
}
