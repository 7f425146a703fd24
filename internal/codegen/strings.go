package codegen

import "fmt"

// stringTable interns string literals under synthetic .LCk labels (spec
// §4.4). Content is deduplicated: the same literal text reuses the label
// created for its first occurrence.
type stringTable struct {
	labels  map[string]string
	order   []string // insertion order, for stable .data emission
	counter int
}

func newStringTable() *stringTable {
	return &stringTable{labels: map[string]string{}}
}

func (s *stringTable) intern(content string) string {
	if label, ok := s.labels[content]; ok {
		return label
	}
	s.counter++
	label := fmt.Sprintf(".LC%d", s.counter)
	s.labels[content] = label
	s.order = append(s.order, content)
	return label
}
