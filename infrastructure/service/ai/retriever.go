package ai

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	outbound "github.com/learnhub/learnhub/application/port/outbound"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
	embedBatchSize      = 100
	csvTextColumn       = "text"
)

// DocumentIndex is an in-memory similarity index over the files of a dataset directory.
// It is built on the first search and reused afterwards.
type DocumentIndex struct {
	dir        string
	embeddings outbound.EmbeddingProvider

	mu      sync.Mutex
	loaded  bool
	chunks  []string
	vectors [][]float32
}

func NewDocumentIndex(dir string, embeddings outbound.EmbeddingProvider) *DocumentIndex {
	return &DocumentIndex{dir: dir, embeddings: embeddings}
}

// Search returns up to k chunks ordered by cosine similarity to query.
func (ix *DocumentIndex) Search(ctx context.Context, query string, k int) ([]string, error) {
	if err := ix.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if len(ix.chunks) == 0 || k <= 0 {
		return []string{}, nil
	}

	q, err := ix.embeddings.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	type scored struct {
		idx   int
		score float64
	}
	results := make([]scored, len(ix.vectors))
	for i, v := range ix.vectors {
		results[i] = scored{idx: i, score: cosine(q, v)}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })

	if k > len(results) {
		k = len(results)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = ix.chunks[results[i].idx]
	}
	return out, nil
}

// ensureLoaded builds the index once. A failed build is retried on the next search.
func (ix *DocumentIndex) ensureLoaded(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.loaded {
		return nil
	}

	docs, err := LoadDocuments(ix.dir)
	if err != nil {
		return err
	}
	var chunks []string
	for _, doc := range docs {
		chunks = append(chunks, SplitText(doc, defaultChunkSize, defaultChunkOverlap)...)
	}

	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch, err := ix.embeddings.EmbedBatch(ctx, chunks[start:end])
		if err != nil {
			return fmt.Errorf("embed documents: %w", err)
		}
		vectors = append(vectors, batch...)
	}

	ix.chunks = chunks
	ix.vectors = vectors
	ix.loaded = true
	return nil
}

// LoadDocuments reads every .txt file as one document and every row of a .csv file's "text"
// column as one document. A missing directory yields no documents.
func LoadDocuments(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	var docs []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt":
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if text := strings.TrimSpace(string(b)); text != "" {
				docs = append(docs, text)
			}
		case ".csv":
			rows, err := readCSVColumn(path, csvTextColumn)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			docs = append(docs, rows...)
		}
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return docs, nil
}

func readCSVColumn(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), column) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("column %q not found", column)
	}

	var out []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if col < len(record) {
			if text := strings.TrimSpace(record[col]); text != "" {
				out = append(out, text)
			}
		}
	}
}

// SplitText cuts text into windows of at most size runes, consecutive windows sharing overlap
// runes. Cuts prefer the last whitespace inside the window.
func SplitText(text string, size, overlap int) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if size <= 0 || len(runes) <= size {
		return []string{string(runes)}
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, strings.TrimSpace(string(runes[start:])))
			break
		}
		cut := end
		for i := end; i > start+overlap; i-- {
			if runes[i-1] == ' ' || runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, strings.TrimSpace(string(runes[start:cut])))
		start = cut - overlap
	}
	return chunks
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
