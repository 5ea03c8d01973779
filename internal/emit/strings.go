package emit

import "fmt"

// stringConst is one entry in the deduplicating string constant pool.
type stringConst struct {
	Name      string
	ByteCount int // UTF-8 length + 1 (NUL terminator)
	Escaped   string
}

// stringPool assigns a stable `@.str.N` name to each distinct string
// payload, in first-occurrence order: a deduplicating insertion-ordered map.
type stringPool struct {
	order   []string
	byValue map[string]*stringConst
}

func newStringPool() *stringPool {
	return &stringPool{byValue: make(map[string]*stringConst)}
}

// intern returns the pool entry for s, creating one if this is the first
// occurrence of this exact payload.
func (p *stringPool) intern(s string) *stringConst {
	if c, ok := p.byValue[s]; ok {
		return c
	}
	c := &stringConst{
		Name:      fmt.Sprintf("@.str.%d", len(p.order)),
		ByteCount: len(s) + 1,
		Escaped:   escapeLLVMString(s),
	}
	p.byValue[s] = c
	p.order = append(p.order, s)
	return c
}

// constants returns the pool's entries in insertion order.
func (p *stringPool) constants() []*stringConst {
	out := make([]*stringConst, 0, len(p.order))
	for _, s := range p.order {
		out = append(out, p.byValue[s])
	}
	return out
}

// escapeLLVMString renders s as the body of an LLVM `c"..."` string
// constant: `\` and `"` are escaped as `\5C`/`\22`, CR/LF/TAB as `\0D`/
// `\0A`/`\09`, and any other byte outside the printable ASCII range
// `[0x20, 0x7E]` (including UTF-8 continuation bytes) as `\HH`.
func escapeLLVMString(s string) string {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '\\':
			buf = append(buf, "\\5C"...)
		case b == '"':
			buf = append(buf, "\\22"...)
		case b == '\r':
			buf = append(buf, "\\0D"...)
		case b == '\n':
			buf = append(buf, "\\0A"...)
		case b == '\t':
			buf = append(buf, "\\09"...)
		case b < 0x20 || b > 0x7E:
			buf = append(buf, fmt.Sprintf("\\%02X", b)...)
		default:
			buf = append(buf, b)
		}
	}
	return string(buf)
}
