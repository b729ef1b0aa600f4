// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package library

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

// ID is the BLAKE3 digest of a file's contents.
type ID [32]byte

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// HashReader returns the ID of everything read from r.
func HashReader(r io.Reader) (ID, error) {
	h := blake3.New()
	if _, err := io.Copy(h, r); err != nil {
		return ID{}, errors.Wrap(err, "hash")
	}
	var id ID
	copy(id[:], h.Sum(nil))
	return id, nil
}

// HashFile returns the ID of the named file.
func HashFile(filename string) (ID, error) {
	f, err := os.Open(filename)
	if err != nil {
		return ID{}, errors.Wrap(err, "open for hashing")
	}
	defer f.Close()
	return HashReader(f)
}
