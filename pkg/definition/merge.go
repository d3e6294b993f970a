package definition

// AddNode appends a deep copy of src to dst and returns the copy.
func AddNode(dst, src *Node) *Node {
	c := src.Clone()
	dst.AppendChild(c)
	return c
}

// MergeNode copies every attribute of src onto dst, overwriting existing values.
func MergeNode(dst, src *Node) {
	for _, a := range src.attrs {
		dst.SetAttr(a.Name, a.Value)
	}
}

// MergeNodes merges src into dst, assuming both sit at the same relative level.
// Attributes are overwritten; each child of src is matched against a direct
// child of dst with the same tag and name. Unmatched children are appended,
// matched field nodes are merged attribute-wise and any other matched element
// is merged recursively.
func MergeNodes(dst, src *Node) {
	MergeNode(dst, src)

	for _, child := range src.children {
		name, named := child.Attr("name")
		var existing *Node
		if named {
			existing = dst.Child(child.Tag, name)
		}

		switch {
		case existing == nil:
			AddNode(dst, child)
		case child.Tag == TagField:
			MergeNode(existing, child)
		default:
			MergeNodes(existing, child)
		}
	}
}
