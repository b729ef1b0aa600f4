// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package library

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/photoshell/rawphoto"
	"github.com/pkg/errors"
)

// Record is the metadata of one raw file.
type Record struct {
	Path   string `json:"path" yaml:"path" cbor:"path"`
	ID     ID     `json:"id" yaml:"id" cbor:"id"`
	Format string `json:"format" yaml:"format" cbor:"format"`

	rawphoto.Metadata `yaml:",inline"`
}

// Scanner extracts records from raw files.
type Scanner struct {
	// Logger receives decode warnings and per-file failures.
	// If nil, slog.Default is used.
	Logger *slog.Logger

	// Options is passed to rawphoto.Open.
	// Format is set per file from the extension and Warnf is bridged to Logger.
	Options rawphoto.Options

	// Extensions limits discovery, see Discover.
	Extensions []string
}

func (s *Scanner) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Scan discovers the raw files below root and returns a record for each
// file that could be decoded. Files that fail are logged and skipped.
func (s *Scanner) Scan(root string) ([]Record, error) {
	paths, err := Discover(root, s.Extensions...)
	if err != nil {
		return nil, err
	}

	logger := s.logger()
	records := make([]Record, 0, len(paths))
	for _, path := range paths {
		rec, err := s.ScanFile(path)
		if err != nil {
			logger.Error("skipping file", "path", path, "error", err)
			continue
		}
		records = append(records, rec)
	}

	logger.Debug("scan done", "root", root, "found", len(paths), "decoded", len(records))

	return records, nil
}

// ScanFile hashes and decodes a single file.
func (s *Scanner) ScanFile(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, errors.Wrap(err, "open")
	}

	id, err := HashReader(f)
	if err != nil {
		f.Close()
		return Record{}, errors.Wrapf(err, "%s", path)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return Record{}, errors.Wrapf(err, "%s: rewind", path)
	}

	logger := s.logger().With("path", path)
	opts := s.Options
	if opts.Format == rawphoto.FormatUnknown && opts.Dialect == nil {
		opts.Format = rawphoto.FormatFromPath(path)
	}
	opts.Warnf = func(format string, args ...any) {
		logger.Warn(fmt.Sprintf(format, args...))
	}

	// The container owns f from here on.
	c, err := rawphoto.Open(f, opts)
	if err != nil {
		return Record{}, errors.Wrapf(err, "%s: decode", path)
	}
	defer c.Close()

	return Record{
		Path:     path,
		ID:       id,
		Format:   opts.Format.String(),
		Metadata: c.Metadata(),
	}, nil
}
