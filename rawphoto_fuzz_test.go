// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/photoshell/rawphoto"
	"github.com/photoshell/rawphoto/internal/rawtest"
)

func FuzzOpenCR2(f *testing.F) {
	f.Add(rawtest.CR2().Bytes())
	f.Fuzz(func(t *testing.T, b []byte) {
		fuzzOpenBytes(t, b, rawphoto.CR2)
	})
}

func FuzzOpenNEF(f *testing.F) {
	f.Add(rawtest.NEF().Bytes())
	f.Fuzz(func(t *testing.T, b []byte) {
		fuzzOpenBytes(t, b, rawphoto.NEF)
	})
}

func FuzzOpenTIFF(f *testing.F) {
	f.Add(rawtest.TIFF().Bytes())
	f.Fuzz(func(t *testing.T, b []byte) {
		fuzzOpenBytes(t, b, rawphoto.TIFF)
	})
}

func fuzzOpenBytes(t *testing.T, b []byte, format rawphoto.Format) {
	// Keep the images small, the input may claim any size.
	opts := rawphoto.Options{Format: format, LimitImageSize: 1 << 20, LimitValueSize: 1 << 16}
	ct, err := rawphoto.Open(bytes.NewReader(b), opts)
	if err != nil {
		if !rawphoto.IsInvalidFormat(err) {
			t.Fatalf("unknown error in Open: %v %T", err, err)
		}
		return
	}
	defer ct.Close()

	for _, dir := range ct.Directories {
		walkValues(t, ct, dir)
	}

	_ = ct.Metadata()

	for _, kind := range rawphoto.ImageKinds() {
		_, _, err := ct.Image(kind)
		if err == nil ||
			rawphoto.IsInvalidFormat(err) ||
			errors.Is(err, rawphoto.ErrUnsupportedImage) ||
			errors.Is(err, rawphoto.ErrIndexOutOfRange) {
			continue
		}
		t.Fatalf("unknown error in Image(%s): %v %T", kind, err, err)
	}
}

func walkValues(t *testing.T, ct *rawphoto.Container, dir *rawphoto.Directory) {
	for _, e := range dir.Entries {
		_, err := ct.Value(e)
		if err == nil || rawphoto.IsInvalidFormat(err) {
			continue
		}
		var serr *rawphoto.StringDecodeError
		if errors.As(err, &serr) {
			continue
		}
		t.Fatalf("unknown error in Value(%s): %v %T", e.Name, err, err)
	}
	for _, sub := range dir.SubDirectories {
		walkValues(t, ct, sub)
	}
}
