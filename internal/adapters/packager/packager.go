// Package packager assembles runnable application trees from toolchain output.
package packager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"go.trai.ch/pyembed/internal/adapters/fs"
	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Packager = (*Packager)(nil)

// StoreOpener opens the install store backing an application directory.
type StoreOpener func(path string) (ports.InstallStore, error)

// Packager implements ports.Packager by copying the toolchain executable and
// configured install rules into the application directory.
type Packager struct {
	logger    ports.Logger
	resolver  *fs.Resolver
	hasher    *fs.Hasher
	verifier  *fs.Verifier
	openStore StoreOpener
	limit     int
}

// New creates a Packager.
func New(
	logger ports.Logger,
	resolver *fs.Resolver,
	hasher *fs.Hasher,
	verifier *fs.Verifier,
	openStore StoreOpener,
) *Packager {
	return &Packager{
		logger:    logger,
		resolver:  resolver,
		hasher:    hasher,
		verifier:  verifier,
		openStore: openStore,
		limit:     runtime.NumCPU(),
	}
}

type installEntry struct {
	fs.Entry
	mode os.FileMode
}

// Package assembles bc.AppPath. Files whose content digest matches the
// recorded install state are left untouched.
func (p *Packager) Package(ctx context.Context, bc *domain.BuildContext) error {
	ok, err := p.verifier.VerifyOutputs(bc.ToolchainExePath)
	if err != nil {
		return errors.Join(domain.ErrPackaging, err)
	}
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrPackaging, "toolchain output missing"), "path", bc.ToolchainExePath)
	}

	if err := os.MkdirAll(bc.AppPath, domain.DirPerm); err != nil {
		return errors.Join(domain.ErrPackaging, zerr.With(zerr.Wrap(err, "failed to create application directory"), "path", bc.AppPath))
	}

	store, err := p.openStore(filepath.Join(bc.AppPath, domain.InstallStateFileName))
	if err != nil {
		return errors.Join(domain.ErrPackaging, err)
	}

	entries, err := p.entries(bc)
	if err != nil {
		return errors.Join(domain.ErrPackaging, err)
	}

	var mu sync.Mutex
	var records []domain.InstallRecord

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	for _, entry := range entries {
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			rec, changed, err := p.install(store, bc.AppPath, entry)
			if err != nil {
				return err
			}
			if changed {
				mu.Lock()
				records = append(records, rec)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return errors.Join(domain.ErrPackaging, err)
	}

	for _, rec := range records {
		if err := store.Put(rec); err != nil {
			return errors.Join(domain.ErrPackaging, err)
		}
	}

	p.logger.Debug(fmt.Sprintf("installed %d of %d files into %s", len(records), len(entries), bc.AppPath))
	return nil
}

func (p *Packager) entries(bc *domain.BuildContext) ([]installEntry, error) {
	entries := []installEntry{{
		Entry: fs.Entry{Source: bc.ToolchainExePath, Dest: filepath.Base(bc.AppExePath)},
		mode:  domain.ExecPerm,
	}}

	for _, rule := range bc.Config.Installs {
		expanded, err := p.resolver.Expand(rule)
		if err != nil {
			return nil, err
		}
		for _, e := range expanded {
			if !filepath.IsLocal(filepath.FromSlash(e.Dest)) {
				return nil, zerr.With(zerr.With(zerr.New("install destination escapes application directory"), "dest", e.Dest), "install", rule.Name)
			}
			entries = append(entries, installEntry{Entry: e})
		}
	}

	return entries, nil
}

// install copies entry when its digest differs from the recorded one or the
// destination is missing. It reports whether a copy happened.
func (p *Packager) install(store ports.InstallStore, appPath string, entry installEntry) (domain.InstallRecord, bool, error) {
	digest, err := p.hasher.FileDigest(entry.Source)
	if err != nil {
		return domain.InstallRecord{}, false, err
	}

	dest := filepath.Join(appPath, filepath.FromSlash(entry.Dest))

	prev, err := store.Get(entry.Dest)
	if err != nil {
		return domain.InstallRecord{}, false, err
	}
	if prev != nil && prev.Digest == digest {
		if _, err := os.Stat(dest); err == nil {
			return domain.InstallRecord{}, false, nil
		}
	}

	mode := entry.mode
	if mode == 0 {
		info, err := os.Stat(entry.Source)
		if err != nil {
			return domain.InstallRecord{}, false, zerr.With(zerr.Wrap(err, "failed to stat install source"), "path", entry.Source)
		}
		mode = info.Mode().Perm()
	}

	if err := copyFile(entry.Source, dest, mode); err != nil {
		return domain.InstallRecord{}, false, err
	}

	return domain.InstallRecord{
		Dest:      entry.Dest,
		Source:    entry.Source,
		Digest:    digest,
		Timestamp: time.Now().UTC(),
	}, true, nil
}

// copyFile writes src to a temporary sibling of dest and renames it into place.
func copyFile(src, dest string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", filepath.Dir(dest))
	}

	in, err := os.Open(src) //nolint:gosec // Path comes from evaluated project configuration
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open install source"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Read-only file

	tmp := dest + ".partial"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode) //nolint:gosec // Destination is inside the application directory
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create install destination"), "path", dest)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dest)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to close install destination"), "path", dest)
	}
	// OpenFile honours the umask, so set the mode explicitly.
	if err := os.Chmod(tmp, mode); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to set file mode"), "path", dest)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to move install destination into place"), "path", dest)
	}

	return nil
}
