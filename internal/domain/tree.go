package domain

// TreeNode represents a page in the navigation tree.
// The root node is synthetic and carries no page.
type TreeNode struct {
	Page       *Page
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// BuildTree arranges a flat page list into a forest under a synthetic root.
// Siblings are ordered by position. Pages whose parent is missing are
// attached to the root so they stay reachable. Pages listed in expanded
// start out expanded.
func BuildTree(pages []Page, expanded map[int64]bool) *TreeNode {
	sorted := make([]Page, len(pages))
	copy(sorted, pages)
	SortPages(sorted)

	known := make(map[int64]bool, len(sorted))
	for _, p := range sorted {
		known[p.ID] = true
	}

	byParent := make(map[int64][]*Page)
	var roots []*Page
	for i := range sorted {
		p := &sorted[i]
		if p.ParentID == nil || !known[*p.ParentID] {
			roots = append(roots, p)
			continue
		}
		byParent[*p.ParentID] = append(byParent[*p.ParentID], p)
	}

	root := &TreeNode{IsExpanded: true}
	visited := make(map[int64]bool, len(sorted))
	var attach func(parent *TreeNode, children []*Page)
	attach = func(parent *TreeNode, children []*Page) {
		for _, p := range children {
			if visited[p.ID] {
				continue
			}
			visited[p.ID] = true
			node := &TreeNode{
				Page:       p,
				Parent:     parent,
				IsExpanded: expanded[p.ID],
			}
			parent.Children = append(parent.Children, node)
			attach(node, byParent[p.ID])
		}
	}
	attach(root, roots)

	return root
}

// IsRoot reports whether this is the synthetic root
func (n *TreeNode) IsRoot() bool {
	return n.Page == nil
}

// HasChildren reports whether the node has child pages
func (n *TreeNode) HasChildren() bool {
	return len(n.Children) > 0
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node below the synthetic root
func (n *TreeNode) Depth() int {
	depth := 0
	for current := n.Parent; current != nil && !current.IsRoot(); current = current.Parent {
		depth++
	}
	return depth
}

// Find returns the node for a page ID, searching the whole tree
func (n *TreeNode) Find(id int64) *TreeNode {
	if n.Page != nil && n.Page.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// ExpandedIDs collects the IDs of expanded pages, for rebuilding after a reload
func (n *TreeNode) ExpandedIDs() map[int64]bool {
	ids := make(map[int64]bool)
	var walk func(*TreeNode)
	walk = func(node *TreeNode) {
		if node.Page != nil && node.IsExpanded {
			ids[node.Page.ID] = true
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(n)
	return ids
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}

// Descendants returns the IDs of every page below the given page in a flat
// page list. Descent stops at pages already seen, so a parent cycle
// terminates. The second return value reports whether a cycle was found.
func Descendants(pages []Page, id int64) ([]int64, bool) {
	children := make(map[int64][]int64)
	for _, p := range pages {
		if p.ParentID != nil {
			children[*p.ParentID] = append(children[*p.ParentID], p.ID)
		}
	}

	var out []int64
	seen := map[int64]bool{id: true}
	cycle := false
	stack := []int64{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range children[cur] {
			if seen[child] {
				cycle = true
				continue
			}
			seen[child] = true
			out = append(out, child)
			stack = append(stack, child)
		}
	}
	return out, cycle
}
