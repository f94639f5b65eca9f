package match

// Pattern matching for the KEYS command. Only '*' is special and matches
// any byte sequence, every other byte is literal.

const (
	normal = iota
	all    // *
)

type item struct {
	character byte
	typeCode  int
}

// Pattern represents a compiled key pattern
type Pattern struct {
	items []*item
}

// CompilePattern converts a pattern string to a Pattern
func CompilePattern(src string) *Pattern {
	items := make([]*item, 0, len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '*' {
			items = append(items, &item{typeCode: all})
		} else {
			items = append(items, &item{typeCode: normal, character: c})
		}
	}
	return &Pattern{
		items: items,
	}
}

// IsMatch returns whether the given string matches the whole pattern
func (p *Pattern) IsMatch(s string) bool {
	if len(p.items) == 0 {
		return len(s) == 0
	}
	m := len(s)
	n := len(p.items)
	table := make([][]bool, m+1)
	for i := 0; i < m+1; i++ {
		table[i] = make([]bool, n+1)
	}
	table[0][0] = true
	for j := 1; j < n+1; j++ {
		table[0][j] = table[0][j-1] && p.items[j-1].typeCode == all
	}
	for i := 1; i < m+1; i++ {
		for j := 1; j < n+1; j++ {
			if p.items[j-1].typeCode == all {
				table[i][j] = table[i-1][j] || table[i][j-1]
			} else {
				table[i][j] = table[i-1][j-1] && s[i-1] == p.items[j-1].character
			}
		}
	}
	return table[m][n]
}
