// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

// Package library finds raw photos on disk and extracts a metadata record
// for each, keyed by a content hash.
package library

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/photoshell/rawphoto"
	"github.com/pkg/errors"
)

// Discover walks root recursively and returns the paths of all regular files
// whose extension is one of exts, compared case-insensitively.
// If exts is empty, the extensions of all supported formats are used.
// The paths are returned sorted.
func Discover(root string, exts ...string) ([]string, error) {
	if len(exts) == 0 {
		exts = rawphoto.Extensions()
	}
	want := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		want[ext] = true
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "walk %s", path)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if want[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)

	return paths, nil
}
