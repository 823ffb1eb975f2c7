// Package jsonl reads and writes newline-delimited JSON record files, one
// flat tree record per line, and provides the atomic file writer shared by
// the other record sources.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deadpixelstudio/treemendous/pkg/tree"
)

// ReadFile reads a JSONL file and returns each non-empty line as a
// json.RawMessage. A line that is not valid JSON fails the whole read with
// an error naming the line; a tree file is rewritten from what was loaded,
// so a skipped line would be lost.
func ReadFile(path string) ([]json.RawMessage, error) {
	var records []json.RawMessage
	err := scanLines(path, func(lineNo int, line []byte) error {
		if !json.Valid(line) {
			return fmt.Errorf("%w: %s line %d is not valid JSON", tree.ErrInvalidInput, path, lineNo)
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ReadRecords reads a JSONL file of flat tree records. Every non-empty line
// must be a JSON object.
func ReadRecords(path string) ([]tree.Record, error) {
	var records []tree.Record
	err := scanLines(path, func(lineNo int, line []byte) error {
		var rec tree.Record
		if err := json.Unmarshal(line, &rec); err != nil || rec == nil {
			return fmt.Errorf("%w: %s line %d is not a JSON object", tree.ErrInvalidInput, path, lineNo)
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// scanLines calls fn with each non-blank, trimmed line and its 1-based
// line number, stopping at the first error.
func scanLines(path string, fn func(lineNo int, line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanning %s: %w", path, err)
	}
	return nil
}

// WriteFile atomically writes records to a JSONL file, one per line.
func WriteFile(path string, records []json.RawMessage) error {
	return WriteAtomic(path, func(w *bufio.Writer) error {
		for _, rec := range records {
			if _, err := w.Write(rec); err != nil {
				return fmt.Errorf("writing record: %w", err)
			}
			if err := w.WriteByte('\n'); err != nil {
				return fmt.Errorf("writing newline: %w", err)
			}
		}
		return nil
	})
}

// WriteRecords encodes records and writes them with WriteFile.
func WriteRecords(path string, records []tree.Record) error {
	raw := make([]json.RawMessage, len(records))
	for i, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
		raw[i] = b
	}
	return WriteFile(path, raw)
}

// WriteAtomic writes a file through a temp file in the same directory:
// write, flush, fsync, rename. Readers never observe a partial file.
func WriteAtomic(path string, fill func(w *bufio.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".treemendous-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	if err := fill(w); err != nil {
		return fail(err)
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
