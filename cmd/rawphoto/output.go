// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/photoshell/rawphoto/internal/config"
	"gopkg.in/yaml.v3"
)

// encodeOutput writes v to w in the given output format.
func encodeOutput(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case config.OutputCBOR:
		em, err := cborEncMode()
		if err != nil {
			return err
		}
		return em.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// cborEncMode returns a deterministic encoder. Rationals and ids are
// written as text strings.
func cborEncMode() (cbor.EncMode, error) {
	opts := cbor.CoreDetEncOptions()
	opts.TextMarshaler = cbor.TextMarshalerTextString
	opts.Time = cbor.TimeRFC3339
	return opts.EncMode()
}
