package ajex

import "fmt"

// builder assembles a syntax tree from a token sequence. heads is the stack
// of insertion points; the root is always at the bottom, so a block is open
// exactly when the stack is deeper than one.
type builder struct {
	root     *Node
	topMeta  *Node
	heads    []*Node
	pending  []*Node
	opened   bool
	lastOpen Token
}

func newBuilder() *builder {
	root := NewRoot()
	return &builder{
		root:    root,
		topMeta: NewMetadataContainer(),
		heads:   []*Node{root},
	}
}

func (b *builder) head() *Node {
	return b.heads[len(b.heads)-1]
}

func (b *builder) open() bool {
	return len(b.heads) > 1
}

func (b *builder) add(tok Token) error {
	switch tok.Kind {
	case TokenMeta:
		meta, err := MetadataFromToken(tok)
		if err != nil {
			return err
		}
		if !b.opened {
			return b.topMeta.AddChild(meta)
		}
		// Once any block has been seen, metadata always belongs to the next
		// entry, even between a close and the following open.
		b.pending = append(b.pending, meta)
		return nil

	case TokenOpen:
		if b.open() {
			return syntaxErrorf(tok, "block opened while %q is still open", b.head().Name)
		}
		if len(b.pending) > 0 {
			return syntaxErrorf(tok, "metadata cannot precede a block declaration")
		}
		container := NewFunctionContent(tok.Text)
		if err := b.root.AddChild(container); err != nil {
			return err
		}
		b.heads = append(b.heads, container)
		b.opened = true
		b.lastOpen = tok
		return nil

	case TokenClose:
		if !b.open() {
			return syntaxErrorf(tok, "block closed but none is open")
		}
		b.heads = b.heads[:len(b.heads)-1]
		return nil

	case TokenEntry:
		if !b.open() {
			return syntaxErrorf(tok, "entry outside of a block")
		}
		literal, err := LiteralFromToken(tok)
		if err != nil {
			return err
		}
		for len(b.pending) > 0 {
			last := len(b.pending) - 1
			if err := literal.AddChild(b.pending[last]); err != nil {
				return err
			}
			b.pending = b.pending[:last]
		}
		return b.head().AddChild(literal)

	case TokenComment:
		return nil

	default:
		return fmt.Errorf("%w: unexpected token kind %s", ErrContractViolation, tok.Kind)
	}
}

func (b *builder) finish() *Node {
	// AddChild on a root container cannot fail for a metadata container.
	_ = b.root.AddChild(b.topMeta)
	return b.root
}

// Build assembles the syntax tree for tokens. The returned root's last child
// is always the top-level METADATA container holding the metadata declared
// before the first block. A block still open at the end of the tokens is
// accepted; use BuildStrict to reject it.
func Build(tokens []Token) (*Node, error) {
	b := newBuilder()
	for _, tok := range tokens {
		if err := b.add(tok); err != nil {
			return nil, err
		}
	}
	return b.finish(), nil
}

// BuildStrict is Build, but fails when the last block is never closed.
func BuildStrict(tokens []Token) (*Node, error) {
	b := newBuilder()
	for _, tok := range tokens {
		if err := b.add(tok); err != nil {
			return nil, err
		}
	}
	if b.open() {
		return nil, syntaxErrorf(b.lastOpen, "block is never closed")
	}
	return b.finish(), nil
}
