// Package volume provides the block storage the sketch icons are read from.
//
// A volume exposes files by 8.3 style name and extension and hands out
// their content one fixed-size block at a time, zero padding the tail of
// the last block.
package volume

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BlockSize is the size of one block.
const BlockSize = 512

var (
	// ErrNotFound indicates that no file matches the requested name.
	ErrNotFound = errors.New("volume: not found")
	// ErrNotOpen indicates that ReadBlock was called before a successful Open.
	ErrNotOpen = errors.New("volume: no open file")
	// ErrEndOfFile indicates that the requested block lies past the file end.
	ErrEndOfFile = errors.New("volume: block past end of file")
)

// fileName joins name and extension the way the bootloader stores them.
func fileName(name, ext string) (string, error) {
	if name == "" {
		return "", errors.New("volume: empty file name")
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsAny(ext, `/\.`) {
		return "", fmt.Errorf("volume: invalid file name %q", name)
	}
	if ext == "" {
		return name, nil
	}
	return name + "." + ext, nil
}

// fillBlock copies block n of src into buf, zero padding a short tail.
func fillBlock(r io.ReaderAt, n uint32, buf []byte) error {
	off := int64(n) * BlockSize
	read, err := r.ReadAt(buf, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if read == 0 {
		return ErrEndOfFile
	}
	clear(buf[read:])
	return nil
}

// Dir is a volume backed by a directory on the host file system.
type Dir struct {
	root string
	f    *os.File
}

// NewDir returns a volume serving files from root.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Open selects name.ext, trying the exact spelling first and the upper-case
// one second.
func (d *Dir) Open(name, ext string) error {
	if err := d.Close(); err != nil {
		return err
	}
	base, err := fileName(name, ext)
	if err != nil {
		return err
	}

	for _, candidate := range []string{base, strings.ToUpper(base)} {
		f, err := os.Open(filepath.Join(d.root, candidate))
		if err == nil {
			d.f = f
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, base)
}

// ReadBlock fills buf with block n of the open file.
func (d *Dir) ReadBlock(n uint32, buf []byte) error {
	if d.f == nil {
		return ErrNotOpen
	}
	return fillBlock(d.f, n, buf)
}

// Close releases the open file, if any.
func (d *Dir) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}

// Mem is an in-memory volume. File names are matched case-insensitively.
type Mem struct {
	files map[string][]byte
	cur   *strings.Reader
}

// NewMem returns a volume holding files, keyed by "NAME.EXT".
func NewMem(files map[string][]byte) *Mem {
	m := &Mem{files: make(map[string][]byte, len(files))}
	for name, data := range files {
		m.files[strings.ToUpper(name)] = data
	}
	return m
}

// Open selects name.ext.
func (m *Mem) Open(name, ext string) error {
	m.cur = nil
	base, err := fileName(name, ext)
	if err != nil {
		return err
	}
	data, ok := m.files[strings.ToUpper(base)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, base)
	}
	m.cur = strings.NewReader(string(data))
	return nil
}

// ReadBlock fills buf with block n of the open file.
func (m *Mem) ReadBlock(n uint32, buf []byte) error {
	if m.cur == nil {
		return ErrNotOpen
	}
	return fillBlock(m.cur, n, buf)
}
