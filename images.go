// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

import (
	"fmt"
)

// ImageKind is a kind of image embedded in a container.
type ImageKind int

const (
	// ImageThumbnail is the small JPEG thumbnail.
	ImageThumbnail ImageKind = iota + 1
	// ImagePreview is the full or medium size JPEG preview.
	ImagePreview
	// ImageQuarterSizeRGB is the CR2 quarter size preview strip.
	ImageQuarterSizeRGB
	// ImageUncompressedRGB is the CR2 full size image without white balance.
	ImageUncompressedRGB
	// ImageRaw is the sensor data.
	ImageRaw
)

func (k ImageKind) String() string {
	switch k {
	case ImageThumbnail:
		return "thumbnail"
	case ImagePreview:
		return "preview"
	case ImageQuarterSizeRGB:
		return "quarter_size_rgb"
	case ImageUncompressedRGB:
		return "uncompressed_rgb"
	case ImageRaw:
		return "raw"
	default:
		return fmt.Sprintf("ImageKind(%d)", int(k))
	}
}

// ImageKinds returns all image kinds in declaration order.
func ImageKinds() []ImageKind {
	return []ImageKind{ImageThumbnail, ImagePreview, ImageQuarterSizeRGB, ImageUncompressedRGB, ImageRaw}
}

// TagPair names the offset tag and the byte count tag of an image region.
type TagPair struct {
	Offset uint16
	Length uint16
}

// ImageLocation tells where an image kind is stored.
type ImageLocation struct {
	// Directory is the index in the top level chain.
	Directory int

	// SubDirectory, if set, names the sub-directory of Directory holding the pair.
	SubDirectory string

	// Pairs are tried in order; the first pair with both tags present wins.
	Pairs []TagPair
}

// Image returns the bytes of the image of the given kind.
//
// It fails with ErrUnsupportedImage if the format does not carry kind,
// and with ErrIndexOutOfRange if the directory holding it is missing from the chain.
// If that directory exists but lacks the tag pair, the second return value
// is false, which is distinct from a zero-length image.
func (c *Container) Image(kind ImageKind) ([]byte, bool, error) {
	loc, ok := c.dec.dialect.Images[kind]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s in %s", ErrUnsupportedImage, kind, c.Format)
	}
	dir, err := c.Directory(loc.Directory)
	if err != nil {
		return nil, false, err
	}
	if loc.SubDirectory != "" {
		dir, ok = dir.SubDirectories[loc.SubDirectory]
		if !ok {
			return nil, false, nil
		}
	}
	for _, pair := range loc.Pairs {
		b, ok, err := c.readRegion(dir, pair)
		if err != nil || ok {
			return b, ok, err
		}
	}
	return nil, false, nil
}

// Thumbnail returns the JPEG thumbnail.
func (c *Container) Thumbnail() ([]byte, bool, error) {
	return c.Image(ImageThumbnail)
}

// Preview returns the JPEG preview.
func (c *Container) Preview() ([]byte, bool, error) {
	return c.Image(ImagePreview)
}

// QuarterSizeRGB returns the CR2 quarter size strip from directory 0.
func (c *Container) QuarterSizeRGB() ([]byte, bool, error) {
	return c.Image(ImageQuarterSizeRGB)
}

// UncompressedRGB returns the CR2 uncompressed strip from directory 2.
func (c *Container) UncompressedRGB() ([]byte, bool, error) {
	return c.Image(ImageUncompressedRGB)
}

// RawData returns the undecoded sensor data.
func (c *Container) RawData() ([]byte, bool, error) {
	return c.Image(ImageRaw)
}

// StripData returns the strip data of top level directory i.
func (c *Container) StripData(i int) ([]byte, bool, error) {
	dir, err := c.Directory(i)
	if err != nil {
		return nil, false, err
	}
	return c.readRegion(dir, stripPair)
}

// readRegion reads the region named by pair in dir.
// Multi-valued offsets and lengths are read strip by strip and concatenated.
func (c *Container) readRegion(dir *Directory, pair TagPair) ([]byte, bool, error) {
	offsetEntry, ok1 := dir.EntryByID(pair.Offset)
	lengthEntry, ok2 := dir.EntryByID(pair.Length)
	if !ok1 || !ok2 {
		return nil, false, nil
	}
	if c.closed {
		return nil, false, ErrClosed
	}

	offsets, err := c.regionValues(offsetEntry)
	if err != nil {
		return nil, false, err
	}
	lengths, err := c.regionValues(lengthEntry)
	if err != nil {
		return nil, false, err
	}
	if len(offsets) != len(lengths) {
		return nil, false, newInvalidFormatErrorf("%s: %d offsets but %d lengths", offsetEntry.Name, len(offsets), len(lengths))
	}

	var total uint64
	for _, l := range lengths {
		total += uint64(l)
	}
	if total > c.dec.opts.LimitImageSize {
		return nil, false, newInvalidFormatErrorf("%s: image of %d bytes exceeds limit %d", offsetEntry.Name, total, c.dec.opts.LimitImageSize)
	}

	for i, o := range offsets {
		l := uint64(lengths[i])
		if n := c.dec.available(uint64(o), l); n < l {
			return nil, false, newInvalidFormatErrorf("%s: region of %d bytes at %d extends past the end of the file (%d bytes available)", offsetEntry.Name, l, o, n)
		}
	}

	b := make([]byte, total)
	var pos uint64
	for i, o := range offsets {
		l := uint64(lengths[i])
		if _, err := c.dec.readAt(b[pos:pos+l], int64(o)); err != nil {
			if isInvalidFormatErrorCandidate(err) {
				err = newInvalidFormatErrorf("%s: reading %d bytes at %d: %w", offsetEntry.Name, l, o, err)
			}
			return nil, false, err
		}
		pos += l
	}

	return b, true, nil
}

func (c *Container) regionValues(e *Entry) ([]uint32, error) {
	if e.Type.opaque() {
		return nil, newInvalidFormatErrorf("%s: unexpected type %s", e.Name, e.Type)
	}
	v, fellBack, err := c.dec.resolve(e)
	if err != nil {
		if isInvalidFormatErrorCandidate(err) {
			err = newInvalidFormatError(err)
		}
		return nil, err
	}
	if fellBack {
		return nil, newInvalidFormatErrorf("%s: values truncated", e.Name)
	}
	vals, ok := toUint32s(v)
	if !ok {
		return nil, newInvalidFormatErrorf("%s: unexpected value type %T", e.Name, v)
	}
	return vals, nil
}
