package reshape

import (
	"strings"

	"treesta-importer/internal/common"
	"treesta-importer/internal/record"
)

// aggregateBuffer collects translated fragments per aggregate target.
type aggregateBuffer struct {
	order     []string
	fragments map[string][]string
}

func newAggregateBuffer() *aggregateBuffer {
	return &aggregateBuffer{fragments: make(map[string][]string)}
}

func (b *aggregateBuffer) add(field, fragment string) {
	if _, ok := b.fragments[field]; !ok {
		b.order = append(b.order, field)
	}

	b.fragments[field] = append(b.fragments[field], fragment)
}

// flush writes every non-empty aggregate to dst.
func (b *aggregateBuffer) flush(dst record.Row) {
	for _, field := range b.order {
		if braced := Braced(b.fragments[field]); braced != "" {
			dst[field] = braced
		}
	}
}

// Braced joins fragments into one compound cell "{a, b}". Fragments are
// trimmed and unwrapped from their own braces; empty and repeated ones
// are skipped. No fragments left means "".
func Braced(fragments []string) string {
	cleaned := make([]string, 0, len(fragments))

	for _, f := range fragments {
		s := strings.TrimSpace(f)
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}"))
		}

		if s != "" {
			cleaned = append(cleaned, s)
		}
	}

	out := common.Unique(cleaned)
	if common.IsEmpty(out) {
		return ""
	}

	return "{" + strings.Join(out, ", ") + "}"
}
