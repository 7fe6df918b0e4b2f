// Package archive unpacks Python distribution archives.
package archive

import (
	"archive/tar"
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArchiveExtractor = (*Extractor)(nil)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Extractor implements ports.ArchiveExtractor for tar streams that are
// zstd compressed, xz compressed or uncompressed.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks src into dest, creating dest if needed.
// Entries that would land outside dest are rejected.
func (e *Extractor) Extract(ctx context.Context, src io.Reader, dest string) error {
	r, closeFn, err := decompress(src)
	if err != nil {
		return errors.Join(domain.ErrArchiveIO, err)
	}
	defer closeFn()

	if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
		return errors.Join(domain.ErrArchiveIO, zerr.With(zerr.Wrap(err, "failed to create destination"), "path", dest))
	}

	tr := tar.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errors.Join(domain.ErrArchiveIO, zerr.Wrap(err, "failed to read tar entry"))
		}

		if err := extractEntry(tr, hdr, dest); err != nil {
			return errors.Join(domain.ErrArchiveIO, zerr.With(err, "entry", hdr.Name))
		}
	}
}

// decompress sniffs the stream header and returns a reader of the tar payload.
func decompress(src io.Reader) (io.Reader, func(), error) {
	br := bufio.NewReader(src)
	head, err := br.Peek(len(xzMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, zerr.Wrap(err, "failed to read archive header")
	}

	switch {
	case bytes.HasPrefix(head, zstdMagic):
		d, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, zerr.Wrap(err, "failed to create zstd reader")
		}
		return d, d.Close, nil
	case bytes.HasPrefix(head, xzMagic):
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, nil, zerr.Wrap(err, "failed to create xz reader")
		}
		return xr, func() {}, nil
	default:
		return br, func() {}, nil
	}
}

func extractEntry(tr *tar.Reader, hdr *tar.Header, dest string) error {
	target, err := securePath(dest, hdr.Name)
	if err != nil {
		return err
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, domain.DirPerm); err != nil {
			return zerr.Wrap(err, "failed to create directory")
		}
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
			return zerr.Wrap(err, "failed to create parent directory")
		}
		return writeFile(target, tr, hdr.FileInfo().Mode().Perm())
	case tar.TypeSymlink:
		linkTarget := hdr.Linkname
		if !filepath.IsAbs(linkTarget) {
			linkTarget = filepath.Join(filepath.Dir(target), linkTarget)
		}
		if !within(dest, linkTarget) {
			return zerr.With(zerr.New("symlink escapes destination"), "link", hdr.Linkname)
		}
		if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
			return zerr.Wrap(err, "failed to create parent directory")
		}
		if err := os.Symlink(hdr.Linkname, target); err != nil && !os.IsExist(err) {
			return zerr.Wrap(err, "failed to create symlink")
		}
	case tar.TypeLink:
		source, err := securePath(dest, hdr.Linkname)
		if err != nil {
			return err
		}
		if err := os.Link(source, target); err != nil && !os.IsExist(err) {
			return zerr.Wrap(err, "failed to create hard link")
		}
	}

	return nil
}

func writeFile(path string, r io.Reader, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) //nolint:gosec // Path is checked by securePath
	if err != nil {
		return zerr.Wrap(err, "failed to create file")
	}

	if _, err := io.Copy(f, r); err != nil { //nolint:gosec // Distribution archives are trusted inputs
		_ = f.Close()
		return zerr.Wrap(err, "failed to write file")
	}

	return f.Close()
}

// securePath joins name onto dest and rejects results outside dest.
func securePath(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	if !within(dest, target) {
		return "", zerr.New("archive entry escapes destination")
	}
	return target, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
