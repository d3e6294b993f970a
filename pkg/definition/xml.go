package definition

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parse reads an XML definition document into a node tree.
// Character data is trimmed and kept on the enclosing element; comments,
// processing instructions and directives are ignored.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var (
		root  *Node
		stack []*Node
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Join(ErrInvalidDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: t.Name.Local}
			for _, a := range t.Attr {
				n.SetAttr(a.Name.Local, a.Value)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrInvalidDocument)
				}
				root = n
			} else {
				stack[len(stack)-1].AppendChild(n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unexpected end element %q", ErrInvalidDocument, t.Name.Local)
			}
			top := stack[len(stack)-1]
			top.Text = strings.TrimSpace(top.Text)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: unclosed element %q", ErrInvalidDocument, stack[len(stack)-1].Tag)
	}
	return root, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

// MustParse parses s and panics on error. Intended for fixtures and package
// level definitions.
func MustParse(s string) *Node {
	n, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Encode writes n as indented XML.
func Encode(w io.Writer, n *Node) error {
	var buf bytes.Buffer
	encodeNode(&buf, n, 0)
	_, err := w.Write(buf.Bytes())
	return err
}

// XML returns the indented XML encoding of n.
func (n *Node) XML() string {
	var buf bytes.Buffer
	encodeNode(&buf, n, 0)
	return buf.String()
}

func encodeNode(buf *bytes.Buffer, n *Node, depth int) {
	indent := strings.Repeat("\t", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(n.Tag)
	for _, a := range n.attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		_ = xml.EscapeText(buf, []byte(a.Value))
		buf.WriteByte('"')
	}

	if len(n.children) == 0 && n.Text == "" {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteByte('>')

	if len(n.children) == 0 {
		_ = xml.EscapeText(buf, []byte(n.Text))
	} else {
		buf.WriteByte('\n')
		if n.Text != "" {
			buf.WriteString(indent + "\t")
			_ = xml.EscapeText(buf, []byte(n.Text))
			buf.WriteByte('\n')
		}
		for _, c := range n.children {
			encodeNode(buf, c, depth+1)
		}
		buf.WriteString(indent)
	}

	buf.WriteString("</")
	buf.WriteString(n.Tag)
	buf.WriteString(">\n")
}
