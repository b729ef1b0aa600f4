// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

// rawphoto inspects camera raw files (CR2, NEF and TIFF).
//
// Usage:
//
//	rawphoto [flags] scan <dir>             metadata records of all raw files below dir
//	rawphoto [flags] dump <file>            the decoded directory tree of one file
//	rawphoto [flags] extract <file> <kind>  write an embedded image to --out
//
// Image kinds are thumbnail, preview, quarter_size_rgb, uncompressed_rgb and raw.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/photoshell/rawphoto"
	"github.com/photoshell/rawphoto/internal/config"
	"github.com/photoshell/rawphoto/library"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type command struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer

	out string
}

func run(args []string, stdout, stderr io.Writer) error {
	var (
		configPath string
		output     string
		logLevel   string
		out        string
	)

	flagSet := pflag.NewFlagSet("rawphoto", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "path to the YAML config file (default: $"+config.EnvVar+")")
	flagSet.StringVarP(&output, "output", "o", "", "output format: json, yaml or cbor (overrides the config file)")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides the config file)")
	flagSet.StringVar(&out, "out", "", "file to write the extracted image to (default: stdout)")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "usage: rawphoto [flags] scan <dir> | dump <file> | extract <file> <kind>\n\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if output != "" {
		cfg.Output = output
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cmd := &command{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()})),
		stdout: stdout,
		out:    out,
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		flagSet.Usage()
		return errors.New("no command given")
	}

	switch name, rest := rest[0], rest[1:]; name {
	case "scan":
		if len(rest) != 1 {
			return errors.New("scan: expected one directory")
		}
		return cmd.scan(rest[0])
	case "dump":
		if len(rest) != 1 {
			return errors.New("dump: expected one file")
		}
		return cmd.dump(rest[0])
	case "extract":
		if len(rest) != 2 {
			return errors.New("extract: expected a file and an image kind")
		}
		return cmd.extract(rest[0], rest[1])
	default:
		return fmt.Errorf("unknown command %q", name)
	}
}

func (c *command) options() rawphoto.Options {
	opts := c.cfg.Options()
	opts.Warnf = func(format string, args ...any) {
		c.logger.Warn(fmt.Sprintf(format, args...))
	}
	return opts
}

func (c *command) scan(root string) error {
	s := &library.Scanner{
		Logger:     c.logger,
		Options:    c.cfg.Options(),
		Extensions: c.cfg.ExtensionList(),
	}
	records, err := s.Scan(root)
	if err != nil {
		return err
	}
	c.logger.Info("scanned", "root", root, "records", len(records))
	return encodeOutput(c.stdout, c.cfg.Output, records)
}

func (c *command) dump(filename string) error {
	ct, err := rawphoto.OpenFile(filename, c.options())
	if err != nil {
		return err
	}
	defer ct.Close()

	d := dumpContainer{
		Format:    ct.Format.String(),
		ByteOrder: ct.Header.ByteOrder.String(),
		Metadata:  ct.Metadata(),
	}
	for _, dir := range ct.Directories {
		d.Directories = append(d.Directories, c.dumpDirectory(ct, dir))
	}

	return encodeOutput(c.stdout, c.cfg.Output, d)
}

func (c *command) extract(filename, kindName string) error {
	var kind rawphoto.ImageKind
	for _, k := range rawphoto.ImageKinds() {
		if strings.EqualFold(k.String(), kindName) {
			kind = k
		}
	}
	if kind == 0 {
		return fmt.Errorf("unknown image kind %q", kindName)
	}

	ct, err := rawphoto.OpenFile(filename, c.options())
	if err != nil {
		return err
	}
	defer ct.Close()

	b, ok, err := ct.Image(kind)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: no %s image", filename, kind)
	}

	if c.out == "" {
		_, err = c.stdout.Write(b)
		return err
	}
	if err := os.WriteFile(c.out, b, 0o644); err != nil {
		return err
	}
	c.logger.Info("extracted", "kind", kind.String(), "bytes", len(b), "out", c.out)
	return nil
}

type dumpContainer struct {
	Format      string            `json:"format" yaml:"format" cbor:"format"`
	ByteOrder   string            `json:"byte_order" yaml:"byte_order" cbor:"byte_order"`
	Metadata    rawphoto.Metadata `json:"metadata" yaml:"metadata" cbor:"metadata"`
	Directories []dumpDirectory   `json:"directories" yaml:"directories" cbor:"directories"`
}

type dumpDirectory struct {
	Offset         int64                    `json:"offset" yaml:"offset" cbor:"offset"`
	Entries        map[string]any           `json:"entries" yaml:"entries" cbor:"entries"`
	SubDirectories map[string]dumpDirectory `json:"sub_directories,omitempty" yaml:"sub_directories,omitempty" cbor:"sub_directories,omitempty"`
	NextOffset     uint32                   `json:"next_offset" yaml:"next_offset" cbor:"next_offset"`
}

// maxDumpBytes is the longest byte value printed in full.
const maxDumpBytes = 64

func (c *command) dumpDirectory(ct *rawphoto.Container, dir *rawphoto.Directory) dumpDirectory {
	d := dumpDirectory{
		Offset:     dir.Offset,
		Entries:    make(map[string]any, len(dir.Entries)),
		NextOffset: dir.NextOffset,
	}
	for _, e := range dir.SortedEntries() {
		v, err := ct.Value(e)
		if err != nil {
			c.logger.Warn("dump", "tag", e.Name, "error", err)
			v = fmt.Sprintf("<%s>", err)
		}
		if b, ok := v.([]byte); ok && len(b) > maxDumpBytes {
			v = fmt.Sprintf("<%d bytes>", len(b))
		}
		d.Entries[e.Name] = v
	}
	if len(dir.SubDirectories) > 0 {
		d.SubDirectories = make(map[string]dumpDirectory, len(dir.SubDirectories))
		for name, sub := range dir.SubDirectories {
			d.SubDirectories[name] = c.dumpDirectory(ct, sub)
		}
	}
	return d
}
