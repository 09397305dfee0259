package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// PatchExtension is the file extension of patch archives.
const PatchExtension = ".thor"

// CachePipeline applies opaque patch files from a local directory and keeps
// track of them in the cache file.
type CachePipeline struct {
	patchDir  string
	cachePath string
	now       func() time.Time
}

// NewCachePipeline builds a pipeline reading patches from patchDir and
// recording applied ones in cachePath.
func NewCachePipeline(patchDir, cachePath string) *CachePipeline {
	return &CachePipeline{patchDir: patchDir, cachePath: cachePath, now: time.Now}
}

// Update downloads then installs every patch not yet present in the cache.
func (p *CachePipeline) Update(ctx context.Context, op Operation) error {
	cache, err := readCache(p.cachePath)
	if err != nil {
		return err
	}
	pending, err := p.pendingPatches(cache)
	if err != nil {
		return err
	}
	total := uint64(len(pending))
	op.Download(0, total, 0)

	start := p.now()
	var transferred uint64
	sizes := make([]int64, len(pending))
	for i, name := range pending {
		if op.Canceled() {
			return ErrCanceled
		}
		n, err := readPatch(ctx, filepath.Join(p.patchDir, name))
		if err != nil {
			return err
		}
		sizes[i] = n
		transferred += uint64(n)
		op.Download(uint64(i+1), total, throughput(transferred, p.now().Sub(start)))
	}

	if total == 0 {
		return nil
	}
	for i, name := range pending {
		if op.Canceled() {
			return ErrCanceled
		}
		cache.Applied = append(cache.Applied, CacheEntry{Name: name, Size: sizes[i], AppliedAt: p.now().UTC()})
		op.Install(uint64(i+1), total)
	}
	return writeCache(p.cachePath, cache)
}

// Apply records a single patch chosen by the user.
func (p *CachePipeline) Apply(ctx context.Context, path string, op Operation) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("open patch: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("open patch: %s is a directory", path)
	}
	name := filepath.Base(path)
	op.Install(0, 1)
	if op.Canceled() {
		return "", ErrCanceled
	}
	size, err := readPatch(ctx, path)
	if err != nil {
		return "", err
	}
	cache, err := readCache(p.cachePath)
	if err != nil {
		return "", err
	}
	cache.Applied = append(cache.Applied, CacheEntry{Name: name, Size: size, AppliedAt: p.now().UTC()})
	if err := writeCache(p.cachePath, cache); err != nil {
		return "", err
	}
	op.Install(1, 1)
	return name, nil
}

func (p *CachePipeline) pendingPatches(cache cacheFile) ([]string, error) {
	entries, err := os.ReadDir(p.patchDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list patches: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), PatchExtension) {
			continue
		}
		if cache.contains(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func readPatch(ctx context.Context, path string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open patch: %w", err)
	}
	defer f.Close()
	n, err := io.Copy(io.Discard, f)
	if err != nil {
		return n, fmt.Errorf("read patch %s: %w", filepath.Base(path), err)
	}
	return n, nil
}

func throughput(bytes uint64, elapsed time.Duration) uint64 {
	if elapsed <= 0 {
		return bytes
	}
	return uint64(float64(bytes) / elapsed.Seconds())
}
