// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

import (
	"time"
)

// dateTimeLayout is the EXIF date/time layout.
const dateTimeLayout = "2006:01:02 15:04:05"

// Metadata is a flat record of commonly requested fields.
// Missing fields are left as the zero value.
type Metadata struct {
	DateTime time.Time `json:"datetime,omitzero" yaml:"datetime,omitempty" cbor:"datetime,omitempty"`
	Width    int       `json:"width,omitempty" yaml:"width,omitempty" cbor:"width,omitempty"`
	Height   int       `json:"height,omitempty" yaml:"height,omitempty" cbor:"height,omitempty"`
	Make     string    `json:"make,omitempty" yaml:"make,omitempty" cbor:"make,omitempty"`
	Model    string    `json:"model,omitempty" yaml:"model,omitempty" cbor:"model,omitempty"`
}

// Metadata extracts the flat metadata record from directory 0.
// Values that are missing or cannot be decoded are skipped with a warning.
// The date/time falls back to the EXIF original date/time.
func (c *Container) Metadata() Metadata {
	var m Metadata
	if len(c.Directories) == 0 {
		return m
	}
	dir := c.Directories[0]
	warnf := c.dec.opts.Warnf

	if v, ok := c.valueByID(dir, tagImageWidth); ok {
		m.Width, _ = toInt(v)
	}
	if v, ok := c.valueByID(dir, tagImageHeight); ok {
		m.Height, _ = toInt(v)
	}
	if v, ok := c.valueByID(dir, tagMake); ok {
		m.Make = stringValue(v)
	}
	if v, ok := c.valueByID(dir, tagModel); ok {
		m.Model = stringValue(v)
	}

	s, ok := c.valueByID(dir, tagDateTime)
	if !ok {
		if exif, found := dir.SubDirectories[c.dec.dialect.TagName(tagExifIFDPointer)]; found {
			s, ok = c.valueByID(exif, tagDateTimeOriginal)
		}
	}
	if ok {
		ds := stringValue(s)
		if ds != "" {
			t, err := time.ParseInLocation(dateTimeLayout, ds, time.Local)
			if err != nil {
				warnf("metadata: failed to parse date/time %q: %s", ds, err)
			} else {
				m.DateTime = t
			}
		}
	}

	return m
}

func (c *Container) valueByID(dir *Directory, id uint16) (any, bool) {
	e, ok := dir.EntryByID(id)
	if !ok {
		return nil, false
	}
	v, err := c.Value(e)
	if err != nil {
		c.dec.opts.Warnf("metadata: %s: %s", e.Name, err)
		return nil, false
	}
	return v, true
}

func stringValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return printableString(s)
}
