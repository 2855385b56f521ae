package io

import (
	"strings"
	"unicode"

	"github.com/matzehuels/gvmanaged/pkg/errors"
	"github.com/matzehuels/gvmanaged/pkg/graph"
)

// Operand is one side of a connect: a single ref or a bracketed list.
type Operand struct {
	Refs []string
	List bool
}

// Step is an operator and the operand to its right.
type Step struct {
	Reverse bool // "<<"
	Operand Operand
}

// Chain is a parsed connect expression.
type Chain struct {
	Head  Operand
	Steps []Step
}

type chainParser struct {
	src string
	pos int
}

// ParseChain parses an expression such as "a >> [b, c]" or "[b, d] << e".
func ParseChain(src string) (*Chain, error) {
	p := &chainParser{src: src}
	head, err := p.operand()
	if err != nil {
		return nil, err
	}
	c := &Chain{Head: head}
	for {
		p.skipSpace()
		if p.pos == len(p.src) {
			break
		}
		var reverse bool
		switch {
		case strings.HasPrefix(p.src[p.pos:], ">>"):
		case strings.HasPrefix(p.src[p.pos:], "<<"):
			reverse = true
		default:
			return nil, p.errorf("expected >> or <<")
		}
		p.pos += 2
		op, err := p.operand()
		if err != nil {
			return nil, err
		}
		c.Steps = append(c.Steps, Step{Reverse: reverse, Operand: op})
	}
	if len(c.Steps) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chain %q has no connect operator", src)
	}
	return c, nil
}

func (p *chainParser) operand() (Operand, error) {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '[' {
		p.pos++
		var refs []string
		for {
			ref, err := p.ref()
			if err != nil {
				return Operand{}, err
			}
			refs = append(refs, ref)
			p.skipSpace()
			if p.pos == len(p.src) {
				return Operand{}, p.errorf("unterminated list")
			}
			switch p.src[p.pos] {
			case ',':
				p.pos++
			case ']':
				p.pos++
				return Operand{Refs: refs, List: true}, nil
			default:
				return Operand{}, p.errorf("expected , or ]")
			}
		}
	}
	ref, err := p.ref()
	if err != nil {
		return Operand{}, err
	}
	return Operand{Refs: []string{ref}}, nil
}

func (p *chainParser) ref() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isRefChar(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected node ref")
	}
	return p.src[start:p.pos], nil
}

func isRefChar(c byte) bool {
	return !strings.ContainsRune("[],<> \t\r\n", rune(c))
}

func (p *chainParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *chainParser) errorf(msg string) error {
	return errors.New(errors.ErrCodeInvalidInput, "chain %q: %s at offset %d", p.src, msg, p.pos)
}

// Apply connects the nodes named by c. Refs are looked up in nodes.
func (c *Chain) Apply(nodes map[string]*graph.Node) ([]*graph.Edge, error) {
	head, err := lookup(nodes, c.Head.Refs)
	if err != nil {
		return nil, err
	}

	var x *graph.Expr
	if c.Head.List {
		x = graph.Each(head...)
	}
	for _, step := range c.Steps {
		targets, err := lookup(nodes, step.Operand.Refs)
		if err != nil {
			return nil, err
		}
		ends := make([]graph.Endpoint, len(targets))
		for i, t := range targets {
			ends[i] = t
		}
		switch {
		case x == nil && step.Reverse:
			x = head[0].From(ends...)
		case x == nil:
			x = head[0].To(ends...)
		case step.Reverse:
			x = x.From(ends...)
		default:
			x = x.To(ends...)
		}
	}
	return x.Edges(), x.Err()
}

func lookup(nodes map[string]*graph.Node, refs []string) ([]*graph.Node, error) {
	out := make([]*graph.Node, len(refs))
	for i, ref := range refs {
		n, ok := nodes[ref]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown node ref %q", ref)
		}
		out[i] = n
	}
	return out, nil
}
