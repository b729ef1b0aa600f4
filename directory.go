// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

import (
	"sort"
)

// Directory is a decoded image file directory (IFD).
type Directory struct {
	// Offset is the position of the entry count, relative to the start of the container.
	Offset int64

	// Entries by tag name. If two entries share a name, the last one wins.
	Entries map[string]*Entry

	// SubDirectories holds the nested directories pointed to by sub-directory tags.
	SubDirectories map[string]*Directory

	// NextOffset is the offset of the next directory in the chain, 0 at the end.
	NextOffset uint32
}

// Entry returns the entry named name.
func (d *Directory) Entry(name string) (*Entry, bool) {
	e, ok := d.Entries[name]
	return e, ok
}

// EntryByID returns the entry with the given tag id.
func (d *Directory) EntryByID(id uint16) (*Entry, bool) {
	for _, e := range d.Entries {
		if e.TagID == id {
			return e, true
		}
	}
	return nil, false
}

// SortedEntries returns the entries ordered by tag id.
func (d *Directory) SortedEntries() []*Entry {
	entries := make([]*Entry, 0, len(d.Entries))
	for _, e := range d.Entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].TagID < entries[j].TagID
	})
	return entries
}

type decoder struct {
	*streamReader
	dialect *Dialect
	opts    Options

	visited map[int64]bool
	numTags uint32
}

func newDecoder(sr *streamReader, dialect *Dialect, opts Options) *decoder {
	return &decoder{
		streamReader: sr,
		dialect:      dialect,
		opts:         opts,
		visited:      make(map[int64]bool),
	}
}

// decodeChain walks the linked list of top level directories starting at first.
func (d *decoder) decodeChain(first uint32) ([]*Directory, error) {
	var dirs []*Directory
	for offset := first; offset != 0; {
		pos := int64(offset)
		if len(dirs) >= d.opts.MaxDirectories {
			d.opts.Warnf("directory chain: stopping after %d directories", len(dirs))
			break
		}
		if d.visited[pos] {
			d.opts.Warnf("directory chain: offset %d already visited, stopping", pos)
			break
		}
		dir, err := d.decodeDirectory(pos, 0)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, dir)
		offset = dir.NextOffset
	}
	return dirs, nil
}

// decodeDirectory reads the entry count at offset, that many entries and
// the next directory pointer, recursing into sub-directories on the way.
func (d *decoder) decodeDirectory(offset int64, depth int) (*Directory, error) {
	d.visited[offset] = true

	count, err := d.read2At(offset)
	if err != nil {
		return nil, newInvalidFormatErrorf("directory at %d: reading entry count: %w", offset, err)
	}

	d.numTags += uint32(count)
	if d.numTags > d.opts.LimitNumTags {
		return nil, newInvalidFormatErrorf("directory at %d: more than %d tags in total", offset, d.opts.LimitNumTags)
	}

	// All entries and the next pointer are read in one chunk.
	entriesLen := int(count) * entrySize
	p := make([]byte, entriesLen+d.dialect.NextOffsetSize)
	n, err := d.readAt(p, offset+2)
	if err != nil && !isShortRead(err) {
		return nil, err
	}
	if n < entriesLen {
		return nil, newInvalidFormatErrorf("directory at %d: %d entries truncated after %d bytes", offset, count, n)
	}

	dir := &Directory{
		Offset:         offset,
		Entries:        make(map[string]*Entry, count),
		SubDirectories: make(map[string]*Directory),
	}

	for i := 0; i < entriesLen; i += entrySize {
		e, err := DecodeEntry(p[i:i+entrySize], d.byteOrder, d.dialect)
		if err != nil {
			return nil, err
		}
		dir.Entries[e.Name] = e

		if d.dialect.IsSubDirectory(e.TagID) {
			if err := d.decodeSubDirectories(dir, e, depth); err != nil {
				return nil, err
			}
		}
	}

	next := p[entriesLen:]
	switch {
	case n < len(p):
		d.opts.Warnf("directory at %d: next directory pointer truncated, ending chain", offset)
	case d.dialect.NextOffsetSize == 2:
		dir.NextOffset = uint32(d.byteOrder.Uint16(next))
	default:
		dir.NextOffset = d.byteOrder.Uint32(next)
	}

	return dir, nil
}

func (d *decoder) decodeSubDirectories(dir *Directory, e *Entry, depth int) error {
	offsets, err := d.subDirectoryOffsets(e)
	if err != nil {
		return err
	}

	for i, o := range offsets {
		if o == 0 {
			continue
		}
		pos := int64(o)
		name := d.dialect.subDirectoryName(e.TagID, e.Name, i, len(offsets))
		if depth+1 > d.opts.MaxDepth {
			d.opts.Warnf("sub-directory %s at %d: depth limit %d reached, skipping", name, pos, d.opts.MaxDepth)
			continue
		}
		if d.visited[pos] {
			d.opts.Warnf("sub-directory %s at %d: offset already visited, skipping", name, pos)
			continue
		}
		sub, err := d.decodeDirectory(pos, depth+1)
		if err != nil {
			return err
		}
		dir.SubDirectories[name] = sub
	}

	return nil
}

// subDirectoryOffsets returns the directory offsets a sub-directory tag points to.
// Opaque types (the makernote is stored as a byte sequence) point to the
// directory with the value slot itself.
func (d *decoder) subDirectoryOffsets(e *Entry) ([]uint32, error) {
	if e.Type.opaque() {
		return []uint32{e.Offset}, nil
	}
	v, fellBack, err := d.resolve(e)
	if err != nil {
		return nil, err
	}
	if fellBack {
		return nil, nil
	}
	offsets, ok := toUint32s(v)
	if !ok {
		d.opts.Warnf("sub-directory tag %s: unexpected value type %T, skipping", e.Name, v)
		return nil, nil
	}
	return offsets, nil
}
