package archive_test

import (
	"archive/tar"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	"go.trai.ch/pyembed/internal/adapters/archive"
	"go.trai.ch/pyembed/internal/core/domain"
)

type entry struct {
	name     string
	body     string
	typeflag byte
	linkname string
}

func buildTar(t *testing.T, entries []entry) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		typeflag := e.typeflag
		if typeflag == 0 {
			typeflag = tar.TypeReg
		}
		hdr := &tar.Header{
			Name:     e.name,
			Mode:     0o644,
			Size:     int64(len(e.body)),
			Typeflag: typeflag,
			Linkname: e.linkname,
		}
		if typeflag != tar.TypeReg {
			hdr.Size = 0
		}
		if typeflag == tar.TypeDir {
			hdr.Mode = 0o755
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if typeflag == tar.TypeReg {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func zstdCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write(data)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	return buf.Bytes()
}

func xzCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

var distribution = []entry{
	{name: "python/", typeflag: tar.TypeDir},
	{name: "python/PYTHON.json", body: `{"python_flavor":"standalone"}`},
	{name: "python/install/bin/python3", body: "#!/bin/sh\n"},
	{name: "python/install/bin/python", typeflag: tar.TypeSymlink, linkname: "python3"},
}

func TestExtractor_Extract_Formats(t *testing.T) {
	plain := buildTar(t, distribution)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "tar", data: plain},
		{name: "tar.zst", data: zstdCompress(t, plain)},
		{name: "tar.xz", data: xzCompress(t, plain)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "out")

			err := archive.NewExtractor().Extract(context.Background(), bytes.NewReader(tt.data), dest)
			require.NoError(t, err)

			data, err := os.ReadFile(filepath.Join(dest, "python", "PYTHON.json"))
			require.NoError(t, err)
			assert.JSONEq(t, `{"python_flavor":"standalone"}`, string(data))

			link, err := os.Readlink(filepath.Join(dest, "python", "install", "bin", "python"))
			require.NoError(t, err)
			assert.Equal(t, "python3", link)
		})
	}
}

func TestExtractor_Extract_RejectsTraversal(t *testing.T) {
	tests := []struct {
		name    string
		entries []entry
	}{
		{
			name:    "parent path",
			entries: []entry{{name: "../escape.txt", body: "x"}},
		},
		{
			name:    "symlink outside",
			entries: []entry{{name: "link", typeflag: tar.TypeSymlink, linkname: "../../etc/passwd"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			dest := filepath.Join(root, "out")

			err := archive.NewExtractor().Extract(context.Background(), bytes.NewReader(buildTar(t, tt.entries)), dest)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrArchiveIO)

			_, statErr := os.Stat(filepath.Join(root, "escape.txt"))
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestExtractor_Extract_Corrupt(t *testing.T) {
	data := append([]byte{0x28, 0xb5, 0x2f, 0xfd}, bytes.Repeat([]byte{0xff}, 64)...)

	err := archive.NewExtractor().Extract(context.Background(), bytes.NewReader(data), t.TempDir())
	assert.ErrorIs(t, err, domain.ErrArchiveIO)
}

func TestExtractor_Extract_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := archive.NewExtractor().Extract(ctx, bytes.NewReader(buildTar(t, distribution)), t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractor_Extract_Empty(t *testing.T) {
	err := archive.NewExtractor().Extract(context.Background(), io.LimitReader(nil, 0), t.TempDir())
	assert.NoError(t, err)
}
