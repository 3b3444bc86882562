// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"fmt"
	"os"
)

// FileExists returns true if the given path exists and is a regular file.
func FileExists(filename string) bool {
	f, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !f.IsDir()
}

// FilesExist returns true only if every given path exists and is a regular file.
func FilesExist(filenames ...string) bool {
	for _, f := range filenames {
		if !FileExists(f) {
			return false
		}
	}
	return true
}

// DirExists returns true if the given path exists and is a directory.
func DirExists(path string) bool {
	f, err := os.Stat(path)
	if err != nil {
		return false
	}
	return f.IsDir()
}

// CreateFile writes content to a file by path `file` with the given mode.
func CreateFile(file, content string, mode os.FileMode) error {
	if err := os.WriteFile(file, []byte(content), mode); err != nil {
		return err
	}
	// tighten the mode in case the file already existed with a wider one
	return os.Chmod(file, mode)
}

// CreateDirectory creates a directory by a path with a mode/permission specified by perm.
// If directory exists, the function does not do anything.
func CreateDirectory(path string, perm os.FileMode) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, perm)
	}
	return nil
}

// ReadFileContent reads and returns the file content.
func ReadFileContent(file string) ([]byte, error) {
	// check file exists
	if !FileExists(file) {
		return nil, fmt.Errorf("file %s does not exist", file)
	}

	// read and return file content
	b, err := os.ReadFile(file)
	return b, err
}
