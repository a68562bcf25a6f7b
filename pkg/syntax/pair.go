package syntax

import "fmt"

// Span is a half-open byte range into the original source text.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Join returns the span running from the start of a to the end of b.
func Join(a, b Span) Span {
	return Span{Start: a.Start, End: b.End}
}

// Shift moves the span by delta bytes.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Pair is one rule-tagged node of a parse tree. It owns its text and
// children, so a lowered tree never refers back to parser memory.
type Pair struct {
	Rule     Rule    `json:"rule"`
	Span     Span    `json:"span"`
	Text     string  `json:"text,omitempty"`
	Children []*Pair `json:"children,omitempty"`
}

// NewPair builds a pair with the given children.
func NewPair(rule Rule, span Span, text string, children ...*Pair) *Pair {
	return &Pair{Rule: rule, Span: span, Text: text, Children: children}
}

// Find returns the first immediate child tagged with rule, or nil.
func (p *Pair) Find(rule Rule) *Pair {
	if p == nil {
		return nil
	}
	for _, child := range p.Children {
		if child != nil && child.Rule == rule {
			return child
		}
	}
	return nil
}

// FindAll returns every immediate child tagged with rule, in order.
func (p *Pair) FindAll(rule Rule) []*Pair {
	if p == nil {
		return nil
	}
	var out []*Pair
	for _, child := range p.Children {
		if child != nil && child.Rule == rule {
			out = append(out, child)
		}
	}
	return out
}

// Inner returns a cursor over the pair's immediate children.
func (p *Pair) Inner() *Pairs {
	if p == nil {
		return NewPairs()
	}
	return NewPairs(p.Children...)
}

// Clone deep-copies the pair and its subtree.
func (p *Pair) Clone() *Pair {
	if p == nil {
		return nil
	}
	out := &Pair{Rule: p.Rule, Span: p.Span, Text: p.Text}
	if len(p.Children) > 0 {
		out.Children = make([]*Pair, len(p.Children))
		for i, child := range p.Children {
			out.Children[i] = child.Clone()
		}
	}
	return out
}

func (p *Pair) String() string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s)", p.Rule, p.Span)
}

// Pairs is a forward cursor over a sequence of sibling pairs.
type Pairs struct {
	items []*Pair
	pos   int
}

// NewPairs wraps the given pairs in a cursor positioned at the first one.
func NewPairs(items ...*Pair) *Pairs {
	return &Pairs{items: items}
}

// Next returns the next pair and advances, or nil when exhausted.
func (ps *Pairs) Next() *Pair {
	if ps == nil || ps.pos >= len(ps.items) {
		return nil
	}
	item := ps.items[ps.pos]
	ps.pos++
	return item
}

// Peek returns the next pair without advancing, or nil when exhausted.
func (ps *Pairs) Peek() *Pair {
	if ps == nil || ps.pos >= len(ps.items) {
		return nil
	}
	return ps.items[ps.pos]
}

// Len reports how many pairs remain unconsumed.
func (ps *Pairs) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.items) - ps.pos
}

// Rest returns the unconsumed pairs without advancing.
func (ps *Pairs) Rest() []*Pair {
	if ps == nil {
		return nil
	}
	return ps.items[ps.pos:]
}
