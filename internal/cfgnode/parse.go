package cfgnode

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// SyntaxError reports malformed input with the offending line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("cfgnode: line %d: %s", e.Line, e.Msg)
}

// Parse decodes data into an unnamed root node.
func Parse(data []byte) (*Node, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads the config text format from r into an unnamed root node.
func Decode(r io.Reader) (*Node, error) {
	p := &parser{root: New("")}
	p.stack = []*Node{p.root}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cfgnode: read: %w", err)
	}
	return p.finish()
}

type parser struct {
	root        *Node
	stack       []*Node
	pending     string // node name seen, waiting for "{"
	havePending bool
	line        int
}

func (p *parser) current() *Node {
	return p.stack[len(p.stack)-1]
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseLine(raw string) error {
	line := raw
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
	if line == "" {
		return nil
	}

	switch {
	case line == "{":
		if !p.havePending {
			return p.errorf("'{' without node name")
		}
		p.open(p.pending)
		return nil

	case line == "}":
		if p.havePending {
			return p.errorf("node %q has no body", p.pending)
		}
		if len(p.stack) == 1 {
			return p.errorf("unexpected '}'")
		}
		p.stack = p.stack[:len(p.stack)-1]
		return nil
	}

	if p.havePending {
		return p.errorf("expected '{' after node %q", p.pending)
	}

	if eq := strings.IndexByte(line, '='); eq >= 0 {
		key := strings.TrimSpace(line[:eq])
		if key == "" {
			return p.errorf("empty key")
		}
		p.current().AddValue(key, strings.TrimSpace(line[eq+1:]))
		return nil
	}

	if strings.HasSuffix(line, "{") {
		name := strings.TrimSpace(strings.TrimSuffix(line, "{"))
		p.open(name)
		return nil
	}

	p.pending = line
	p.havePending = true
	return nil
}

func (p *parser) open(name string) {
	child := p.current().AddNode(name)
	p.stack = append(p.stack, child)
	p.pending = ""
	p.havePending = false
}

func (p *parser) finish() (*Node, error) {
	if p.havePending {
		return nil, p.errorf("node %q has no body", p.pending)
	}
	if len(p.stack) > 1 {
		return nil, p.errorf("unclosed node %q", p.current().Name)
	}
	return p.root, nil
}
