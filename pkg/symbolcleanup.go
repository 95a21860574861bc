// Package symbolcleanup strips fill colors and fill rules from generated
// SVG sprites so that icons can be colored from CSS.
package symbolcleanup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/renameio/v2"
	"github.com/kpango/glg"
	"golang.org/x/sync/errgroup"

	"github.com/gucio321/symbolcleanup/pkg/rules"
)

// Cleaner rewrites XML files in place, applying a fixed list of rules
// to every element.
type Cleaner struct {
	rules   []rules.Rule
	workers int
	verify  bool
}

// NewCleaner creates a Cleaner with rules.Default and a single worker.
func NewCleaner() *Cleaner {
	return &Cleaner{
		rules:   rules.Default(),
		workers: 1,
	}
}

// Rules replaces the rule set.
func (c *Cleaner) Rules(rs ...rules.Rule) *Cleaner {
	c.rules = rs
	return c
}

// Workers sets how many files may be processed at once.
// Values below 1 are treated as 1.
func (c *Cleaner) Workers(n int) *Cleaner {
	if n < 1 {
		n = 1
	}

	c.workers = n

	return c
}

// Verify enables loading every cleaned <svg> document with an SVG parser
// before it is written.
func (c *Cleaner) Verify() *Cleaner {
	c.verify = true
	return c
}

// Match resolves pattern relative to the working directory.
// Only regular files are returned. Zero matches is ErrNotFound.
func Match(pattern string) ([]string, error) {
	files, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: %w %q: %w", ErrNotFound, ErrBadPattern, pattern, err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, pattern)
	}

	return files, nil
}

// Process cleans every file matching pattern.
// The first failure stops the remaining files from being started and is returned.
func (c *Cleaner) Process(ctx context.Context, pattern string) error {
	files, err := Match(pattern)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, file := range files {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			return c.ProcessFile(file)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// the parent context may have been canceled before anything failed
	return ctx.Err()
}

// ProcessFile runs the read-clean-write cycle on a single file.
// The file is replaced atomically: on failure the original is left untouched.
func (c *Cleaner) ProcessFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}

	out, removed, err := c.Clean(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if c.verify {
		if err := c.verifyOutput(path, out); err != nil {
			return err
		}
	}

	if err := renameio.WriteFile(path, out, 0o644, renameio.WithExistingPermissions()); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}

	glg.Infof("%s: removed %d attribute(s)", path, removed)

	return nil
}

// Clean applies the rules to an in-memory document and returns the
// serialized result with the number of removed attributes.
func (c *Cleaner) Clean(data []byte) (out []byte, removed int, err error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, 0, err
	}

	removed = rules.Walk(doc.Root(), c.rules)

	if out, err = Serialize(doc); err != nil {
		return nil, 0, err
	}

	return out, removed, nil
}

func (c *Cleaner) verifyOutput(path string, out []byte) error {
	doc, err := Parse(out)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if root := doc.Root(); !isSVGRoot(root) {
		glg.Warnf("%s: root element is <%s>, skipping SVG verification", path, root.FullTag())
		return nil
	}

	name := filepath.Base(path)
	if err := verify(name, out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}


const svgNamespace = "http://www.w3.org/2000/svg"

// isSVGRoot accepts <svg> with no namespace at all (common for sprites)
// and any svg element bound to the SVG namespace, prefixed or not.
func isSVGRoot(root *etree.Element) bool {
	if root.Tag != "svg" {
		return false
	}

	uri := root.NamespaceURI()

	return uri == svgNamespace || (uri == "" && root.Space == "")
}
