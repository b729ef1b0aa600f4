// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a supported container kind.
//
//go:generate stringer -type=Format
type Format int

const (
	// FormatUnknown signals that no format was provided or detected.
	FormatUnknown Format = iota
	// TIFF is a generic TIFF/EXIF container.
	TIFF
	// CR2 is the Canon Raw 2 format.
	CR2
	// NEF is the Nikon Electronic Format.
	NEF
)

var formatExtensions = map[string]Format{
	".tif":  TIFF,
	".tiff": TIFF,
	".cr2":  CR2,
	".nef":  NEF,
}

// FormatFromPath returns the format for the extension of filename,
// compared case-insensitively, or FormatUnknown.
func FormatFromPath(filename string) Format {
	return formatExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Extensions returns the file extensions of all supported formats, lower case with a leading dot.
func Extensions() []string {
	return []string{".cr2", ".nef", ".tif", ".tiff"}
}

// Dialect is the decoding configuration of one format: tag names,
// sub-directory tags, preamble size, next pointer width and image locations.
// The built-in dialects are shared and must not be modified.
type Dialect struct {
	// Tag names by id. Unknown tags are named UnknownPrefix followed by the hex id.
	Tags map[uint16]string

	// SubDirectories holds the tags whose value points to a nested directory.
	// The value optionally names the children of a multi-valued pointer tag by index.
	SubDirectories map[uint16][]string

	// HeaderSize is 8 for TIFF and 16 for the CR2 preamble.
	HeaderSize int

	// NextOffsetSize is the width in bytes of the trailing next directory pointer, 2 or 4.
	NextOffsetSize int

	// Images locates the embedded images by kind.
	Images map[ImageKind]ImageLocation
}

// TagName returns the name of tag id.
func (d *Dialect) TagName(id uint16) string {
	if name, ok := d.Tags[id]; ok {
		return name
	}
	return fmt.Sprintf("%s0x%04x", UnknownPrefix, id)
}

// IsSubDirectory reports whether id points to a nested directory.
func (d *Dialect) IsSubDirectory(id uint16) bool {
	_, ok := d.SubDirectories[id]
	return ok
}

func (d *Dialect) subDirectoryName(id uint16, name string, i, n int) string {
	names := d.SubDirectories[id]
	if i < len(names) {
		return names[i]
	}
	if n == 1 {
		return name
	}
	return fmt.Sprintf("%s_%d", name, i)
}

func (d *Dialect) validate() error {
	if d.HeaderSize != tiffHeaderSize && d.HeaderSize != cr2HeaderSize {
		return fmt.Errorf("dialect: header size must be %d or %d, got %d", tiffHeaderSize, cr2HeaderSize, d.HeaderSize)
	}
	if d.NextOffsetSize != 2 && d.NextOffsetSize != 4 {
		return fmt.Errorf("dialect: next offset size must be 2 or 4, got %d", d.NextOffsetSize)
	}
	return nil
}

var (
	stripPair = TagPair{Offset: tagStripOffsets, Length: tagStripByteCounts}
	jpegPair  = TagPair{Offset: tagJPEGOffset, Length: tagJPEGLength}
)

var (
	dialectTIFF = &Dialect{
		Tags:           fieldsTIFF,
		SubDirectories: subDirectoriesTIFF,
		HeaderSize:     tiffHeaderSize,
		NextOffsetSize: 4,
		Images: map[ImageKind]ImageLocation{
			ImageThumbnail: {Directory: 1, Pairs: []TagPair{jpegPair}},
		},
	}

	// CR2 directories use the legacy 2 byte next pointer.
	dialectCR2 = &Dialect{
		Tags:           fieldsCR2,
		SubDirectories: subDirectoriesCR2,
		HeaderSize:     cr2HeaderSize,
		NextOffsetSize: 2,
		Images: map[ImageKind]ImageLocation{
			ImageQuarterSizeRGB:  {Directory: 0, Pairs: []TagPair{stripPair}},
			ImageThumbnail:       {Directory: 1, Pairs: []TagPair{jpegPair}},
			ImageUncompressedRGB: {Directory: 2, Pairs: []TagPair{stripPair}},
			ImageRaw:             {Directory: 3, Pairs: []TagPair{stripPair}},
		},
	}

	dialectNEF = &Dialect{
		Tags:           fieldsNEF,
		SubDirectories: subDirectoriesNEF,
		HeaderSize:     tiffHeaderSize,
		NextOffsetSize: 4,
		Images: map[ImageKind]ImageLocation{
			ImagePreview: {Directory: 0, SubDirectory: "preview_image", Pairs: []TagPair{jpegPair, stripPair}},
			ImageRaw:     {Directory: 0, SubDirectory: "raw_data", Pairs: []TagPair{stripPair}},
		},
	}
)

// Dialect returns the built-in dialect of f, or nil for FormatUnknown.
func (f Format) Dialect() *Dialect {
	switch f {
	case TIFF:
		return dialectTIFF
	case CR2:
		return dialectCR2
	case NEF:
		return dialectNEF
	default:
		return nil
	}
}
