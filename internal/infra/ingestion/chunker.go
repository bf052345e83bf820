package ingestion

import (
	"regexp"
	"strings"
)

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// ChunkText splits text into paragraph chunks, re-splitting long paragraphs
// to at most size bytes with the given overlap.
func ChunkText(text string, size, overlap int) []string {
	if size <= 0 {
		size = 500
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, splitLong(p, size, overlap)...)
	}
	return out
}

func splitLong(s string, max, overlap int) []string {
	if len(s) <= max {
		return []string{s}
	}
	var res []string
	for i := 0; i < len(s); i += max - overlap {
		end := i + max
		if end > len(s) {
			end = len(s)
		}
		res = append(res, strings.TrimSpace(s[i:end]))
		if end == len(s) {
			break
		}
	}
	return res
}
