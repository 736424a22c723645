package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/wandb/parallel"
)

// ManifestFileName is the package metadata file looked up in each package
// directory.
const ManifestFileName = "package.json"

// scopePrefix marks namespaced package directories, which hold their
// packages one level deeper.
const scopePrefix = "@"

// TreeOptions tune a dependency-tree walk.
type TreeOptions struct {
	// MaxFileSize skips metadata files larger than this many bytes. 0 means
	// no limit.
	MaxFileSize int64
	// Threads bounds the number of concurrent package scans. Values below 2
	// scan sequentially. Output ordering is identical either way.
	Threads int
}

// candidate is one package directory discovered during the walk.
type candidate struct {
	pkg  string
	path string
}

// ScanManifestFile scans a single package metadata file. This is the only
// entry point that surfaces per-package errors to its caller.
func (a *Analyzer) ScanManifestFile(path string) (PackageScanResult, error) {
	manifest, err := ReadManifest(path)
	if err != nil {
		return PackageScanResult{}, err
	}
	return a.AggregateManifest(manifest), nil
}

// ScanTree walks the immediate subdirectories of root, applying the
// analyze-and-aggregate pipeline to each package's metadata file. Scope
// directories (@scope) are descended exactly one additional level. Dot
// directories are ignored. Per-package failures are logged, counted and
// skipped; the walk never aborts because of one bad package. Clean results
// are filtered out.
func (a *Analyzer) ScanTree(ctx context.Context, root string, opts TreeOptions) (TreeResult, error) {
	candidates, err := collectCandidates(root)
	if err != nil {
		return TreeResult{}, err
	}

	log.Debug().Str("root", root).Int("candidates", len(candidates)).Msg("Scanning dependency tree")

	results := make([]*PackageScanResult, len(candidates))
	tree := TreeResult{}
	var mu sync.Mutex

	scanOne := func(i int) {
		res, visited, err := a.scanCandidate(candidates[i], opts.MaxFileSize)
		mu.Lock()
		defer mu.Unlock()
		if visited {
			tree.Visited++
		}
		if err != nil {
			tree.Skipped++
			log.Warn().Err(err).Str("package", candidates[i].pkg).Msg("Skipping unreadable package")
			return
		}
		results[i] = res
	}

	if opts.Threads > 1 {
		group := parallel.Limited(ctx, opts.Threads)
		for i := range candidates {
			i := i
			group.Go(func(ctx context.Context) {
				scanOne(i)
			})
		}
		group.Wait()
	} else {
		for i := range candidates {
			scanOne(i)
		}
	}

	// Results keep directory-listing order regardless of scan concurrency.
	for _, res := range results {
		if res == nil || res.IsClean() {
			continue
		}
		tree.Results = append(tree.Results, *res)
	}

	return tree, nil
}

// collectCandidates lists package directories under root in sorted order,
// descending one level into scope directories.
func collectCandidates(root string) ([]candidate, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var candidates []candidate
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		if strings.HasPrefix(name, scopePrefix) {
			scoped, err := os.ReadDir(filepath.Join(root, name))
			if err != nil {
				log.Debug().Err(err).Str("scope", name).Msg("Cannot list scope directory")
				continue
			}
			for _, sub := range scoped {
				if !sub.IsDir() || strings.HasPrefix(sub.Name(), ".") {
					continue
				}
				candidates = append(candidates, candidate{
					pkg:  name + "/" + sub.Name(),
					path: filepath.Join(root, name, sub.Name(), ManifestFileName),
				})
			}
			continue
		}

		candidates = append(candidates, candidate{
			pkg:  name,
			path: filepath.Join(root, name, ManifestFileName),
		})
	}

	return candidates, nil
}

// scanCandidate reads and scans one package's metadata file. visited reports
// whether a metadata file was actually present; a missing file is neither a
// visit nor a failure.
func (a *Analyzer) scanCandidate(c candidate, maxFileSize int64) (*PackageScanResult, bool, error) {
	info, err := os.Stat(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Trace().Str("package", c.pkg).Msg("No package metadata file")
			return nil, false, nil
		}
		return nil, false, err
	}

	if maxFileSize > 0 && info.Size() > maxFileSize {
		return nil, true, &ParseError{Path: c.path, Err: errTooLarge(info.Size(), maxFileSize)}
	}

	// #nosec G304 - Reading package metadata inside the user-designated tree
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, true, err
	}

	if !gjson.ValidBytes(data) {
		return nil, true, &ParseError{Path: c.path, Err: errInvalidJSON}
	}

	// Cheap peek before the full parse: a manifest with no scripts object
	// and no hasInstallScript flag can only produce a clean result.
	if !gjson.GetBytes(data, "scripts").Exists() && !gjson.GetBytes(data, "hasInstallScript").Bool() {
		log.Trace().Str("package", c.pkg).Msg("No lifecycle scripts declared")
		return nil, true, nil
	}

	manifest, err := ParseManifest(c.path, data)
	if err != nil {
		return nil, true, err
	}

	result := a.AggregateManifest(manifest)
	if result.Name == "" {
		result.Name = c.pkg
	}
	return &result, true, nil
}
