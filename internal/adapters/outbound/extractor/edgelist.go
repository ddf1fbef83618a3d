package extractor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
)

// EdgeList implements domain.EdgeExtractor over a precomputed edge file
// instead of a source tree. Two formats are accepted: a JSON array of
// {"from","to"} objects, or one edge per line as "from<TAB>to" or
// "from -> to". Blank lines and lines starting with # are ignored.
type EdgeList struct {
	path string
}

// NewEdgeList reads edges from path.
func NewEdgeList(path string) *EdgeList { return &EdgeList{path: path} }

// Extract ignores root and opts; the edge file is the whole input.
func (l *EdgeList) Extract(ctx context.Context, root string, opts domain.ExtractOptions) (*domain.Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.ExtractionError{Path: l.path, Err: err}
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, &domain.ExtractionError{Path: l.path, Err: err}
	}

	edges, err := parseEdges(ctx, l.path, data)
	if err != nil {
		return nil, &domain.ExtractionError{Path: l.path, Err: err}
	}
	return &domain.Extraction{Root: root, Files: 1, Edges: edges}, nil
}

func parseEdges(ctx context.Context, source string, data []byte) ([]domain.RawEdge, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var edges []domain.RawEdge
		if err := json.Unmarshal(trimmed, &edges); err != nil {
			return nil, fmt.Errorf("decoding edge list: %w", err)
		}
		return edges, nil
	}

	edges := []domain.RawEdge{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		from, to, ok := strings.Cut(line, "\t")
		if !ok {
			from, to, _ = strings.Cut(line, "->")
		}
		edges = append(edges, domain.RawEdge{
			From:   strings.TrimSpace(from),
			To:     strings.TrimSpace(to),
			Source: source,
			Line:   n,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return edges, nil
}
