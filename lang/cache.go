package lang

import (
	"context"
	"io"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// parseCache memoizes parsed Documents keyed by the xxh3 hash of their
// source text. Documents are treated as immutable after parse ([Reconcile]
// copies the root before merging), so a cached value can be shared across
// invocations.
var parseCache sync.Map // uint64 -> *Document

func cachedDocument(src string) (*Document, bool) {
	value, ok := parseCache.Load(xxh3.HashString(src))
	if !ok {
		return nil, false
	}

	doc, ok := value.(*Document)

	return doc, ok
}

func storeDocument(src string, doc *Document) {
	parseCache.Store(xxh3.HashString(src), doc)
}

// ParseReader parses DSL source from an io.Reader. The reader is wrapped
// with asynchronous read-ahead so data is pre-fetched while earlier chunks
// are consumed; the parsed Document is cached by content hash like
// [ParseString].
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Document, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...)
}
