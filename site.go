package mdsite

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// RootDocument is the file name of the site root page.
const RootDocument = "index.md"

// BuildSite renders every markdown document under site.SourceDir into
// site.OutputDir, mirroring the directory layout.
//
// Documents are built concurrently and independently: a failing document is
// recorded in its PageResult and never stops the others. The returned error
// covers only problems with the site itself (bad source directory, discovery
// errors, no documents). Check Report.Failed for per-document failures.
func (b *Builder) BuildSite(ctx context.Context, site Site) (*Report, error) {
	start := time.Now()

	if site.SourceDir == "" {
		return nil, ErrEmptySourceDir
	}
	info, err := os.Stat(site.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSourceDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidSourceDir, site.SourceDir)
	}

	sources, err := Discover(site.SourceDir, site.Exclude, site.MaxDepth)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, site.SourceDir)
	}

	pool := newWorkerPool(site.Workers, len(sources))
	report := &Report{
		Pages:   make([]PageResult, len(sources)),
		Workers: pool.Size(),
	}

	type indexed struct {
		i      int
		result PageResult
	}
	results := run(pool, len(sources), func(i int) indexed {
		return indexed{i: i, result: b.buildOne(ctx, site, sources[i])}
	})
	for r := range results {
		report.Pages[r.i] = r.result
		if site.Progress != nil {
			site.Progress(r.result)
		}
	}

	report.Duration = time.Since(start)
	return report, nil
}

// buildOne loads, renders and writes a single document.
// A panic is recovered into the document's error.
func (b *Builder) buildOne(ctx context.Context, site Site, source string) (result PageResult) {
	start := time.Now()
	result.Source = source

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("%w: %v", ErrRenderPanic, r)
		}
		result.Duration = time.Since(start)
	}()

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	output, err := fileutil.OutputPath(site.SourceDir, source, site.OutputDir)
	if err != nil {
		result.Err = err
		return result
	}
	result.Output = output

	doc, err := b.LoadDocument(source)
	if err != nil {
		result.Err = err
		return result
	}

	isRoot := isSiteRoot(site.SourceDir, source)
	result.Missing = b.MissingKeys(doc, isRoot)

	page, err := b.BuildPage(ctx, doc, isRoot)
	if err != nil {
		result.Err = err
		return result
	}

	if err := fileutil.WriteFileAtomic(output, page); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWritePage, err)
		return result
	}
	return result
}

// isSiteRoot reports whether source is index.md directly under root.
func isSiteRoot(root, source string) bool {
	rel, err := filepath.Rel(root, source)
	return err == nil && rel == RootDocument
}

// Discover lists the markdown documents under root in lexical order.
// Directories named in exclude are skipped wherever they appear. A positive
// maxDepth limits how many directory levels below root are entered.
func Discover(root string, exclude []string, maxDepth int) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if slices.Contains(exclude, d.Name()) || tooDeep(root, path, maxDepth) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && fileutil.IsMarkdown(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// tooDeep reports whether dir sits more than maxDepth levels below root.
func tooDeep(root, dir string, maxDepth int) bool {
	if maxDepth <= 0 {
		return false
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return strings.Count(filepath.ToSlash(rel), "/")+1 > maxDepth
}
