// Package memindex provides an in-process ports.DocumentIndex backed by
// a directory of plain-text documents. Scoring is lexical overlap, good
// enough for local runs and tests where no vector store is available.
package memindex

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"researchbot/pkg/ports"
)

// Index holds passages split from the documents under a root directory.
type Index struct {
	root string
	fsys fs.FS

	mu       sync.RWMutex
	passages []passage
}

type passage struct {
	text  string
	terms map[string]struct{}
}

// Option configures an Index.
type Option func(*Index)

// WithFS reads documents from fsys instead of the local filesystem.
// Useful for tests with fstest.MapFS.
func WithFS(fsys fs.FS) Option {
	return func(ix *Index) { ix.fsys = fsys }
}

// New builds an Index over the documents under root. Build must be
// called before Search.
func New(root string, opts ...Option) *Index {
	ix := &Index{root: root}
	for _, opt := range opts {
		opt(ix)
	}
	if ix.fsys == nil {
		ix.fsys = os.DirFS(root)
	}
	return ix
}

var _ ports.DocumentIndex = (*Index)(nil)

// Build walks the document tree and splits every .md and .txt file into
// paragraph passages. It may be called again to re-read the corpus.
func (ix *Index) Build(ctx context.Context) error {
	var passages []passage
	err := fs.WalkDir(ix.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".md", ".txt":
		default:
			return nil
		}
		raw, err := fs.ReadFile(ix.fsys, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		for _, block := range strings.Split(string(raw), "\n\n") {
			block = strings.TrimSpace(block)
			if block == "" {
				continue
			}
			passages = append(passages, passage{text: block, terms: tokenize(block)})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("memindex: build %s: %w", ix.root, err)
	}
	if len(passages) == 0 {
		return fmt.Errorf("memindex: no documents under %s", ix.root)
	}

	ix.mu.Lock()
	ix.passages = passages
	ix.mu.Unlock()
	return nil
}

// Search scores every passage by term overlap with the query and
// returns the topK best matches. Scores are in [0,1].
func (ix *Index) Search(ctx context.Context, query string, topK int) ([]ports.ScoredPassage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.passages == nil {
		return nil, fmt.Errorf("memindex: index not built")
	}

	scored := make([]ports.ScoredPassage, 0, len(ix.passages))
	for _, p := range ix.passages {
		hits := 0
		for t := range terms {
			if _, ok := p.terms[t]; ok {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		scored = append(scored, ports.ScoredPassage{
			Text:  p.text,
			Score: float64(hits) / float64(len(terms)),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func tokenize(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		if len(w) < 3 {
			continue
		}
		out[w] = struct{}{}
	}
	return out
}
