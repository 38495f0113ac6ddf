package dispatch

import (
	"github.com/pgup/dispatch/errs"
	"github.com/pgup/dispatch/segment"
)

// routeNode is a position in the command tree. Route children are literal
// segments, all arguments at one position share the argument child.
type routeNode struct {
	aliases  segment.AliasSet
	owner    string
	routes   []*routeNode
	argument *routeNode
}

// commandTree checks that literal segments sharing a parent do not collide
// and answers which routes compete with an argument position.
type commandTree struct {
	root    routeNode
	parents map[*Command][]*routeNode
}

func newCommandTree() *commandTree {
	return &commandTree{parents: map[*Command][]*routeNode{}}
}

// insert adds the segments of c. Two different route nodes under the same
// parent may not share an alias; identical alias sets share a node.
func (t *commandTree) insert(c *Command) error {
	node := &t.root
	parents := make([]*routeNode, len(c.segments))
	for i, s := range c.segments {
		parents[i] = node

		r, ok := s.(*segment.Route)
		if !ok {
			if node.argument == nil {
				node.argument = &routeNode{owner: c.ID()}
			}
			node = node.argument
			continue
		}

		var next *routeNode
		for _, child := range node.routes {
			if child.aliases.Equal(r.Aliases()) {
				next = child
				break
			}
			if alias, overlap := r.Aliases().Overlap(child.aliases); overlap {
				return errs.ErrAmbiguousCommandSegment.WithArgs(alias, c.ID(), child.aliases.String(), child.owner, i)
			}
		}
		if next == nil {
			next = &routeNode{aliases: r.Aliases(), owner: c.ID()}
			node.routes = append(node.routes, next)
		}
		node = next
	}
	t.parents[c] = parents

	return nil
}

// siblings returns the aliases of every route competing with the segment of
// c at position.
func (t *commandTree) siblings(c *Command, position int) segment.AliasSet {
	parents := t.parents[c]
	if position >= len(parents) {
		return nil
	}

	sets := make([]segment.AliasSet, 0, len(parents[position].routes))
	for _, child := range parents[position].routes {
		sets = append(sets, child.aliases)
	}

	return segment.Merge(sets...)
}
