package rope

import (
	"fmt"
	"io"
	"strings"
)

type nodeids struct {
	idTable map[*node]int
	max     int
}

func newtable() nodeids {
	return nodeids{
		idTable: make(map[*node]int),
		max:     1,
	}
}

func (ids nodeids) find(n *node) int {
	return ids.idTable[n]
}

func (ids *nodeids) alloc(n *node) int {
	if id := ids.find(n); id > 0 {
		return id
	}
	ids.idTable[n] = ids.max
	ids.max++
	return ids.max - 1
}

// Rope2Dot outputs the internal structure of a Rope in Graphviz DOT format
// (for debugging purposes).
func Rope2Dot(text Rope, w io.Writer) error {
	var nodelist, edgelist strings.Builder
	ids := newtable()
	err := text.each(func(n *node, pos uint64, depth int) error {
		id := ids.alloc(n)
		styles := nodeDotStyles(n.isLeaf())
		if n.isLeaf() {
			label := fmt.Sprintf("%d @%d\\n“%s”", n.weight, pos, dotEscape(strstart(n)))
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", id, label, styles)
			return nil
		}
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%d|%d\" %s];\n", id, n.weight, n.height, styles)
		fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", id, ids.alloc(n.left))
		fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", id, ids.alloc(n.right))
		return nil
	})
	if err != nil {
		T().Errorf("rope DOT: %s", err.Error())
		return err
	}
	_, err = fmt.Fprintf(w, "strict digraph {\n\tnode [fontname=Arial,fontsize=12];\n%s%s}\n",
		nodelist.String(), edgelist.String())
	return err
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}

func dotEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\\n`)
}

// --- Debugging helper ------------------------------------------------------

func dump(n *node) {
	_ = traverse(n, 0, 0, func(n *node, pos uint64, depth int) error {
		if n.isLeaf() {
			T().Debugf("%sL = %v", indent(depth), strstart(n))
			return nil
		}
		T().Debugf("%sN = %v", indent(depth), n)
		return nil
	})
}

func indent(d int) string {
	return strings.Repeat("  ", d)
}

func strstart(leaf *node) string {
	s := []rune(leaf.leaf.String())
	if len(s) > 8 {
		return string(s[:7]) + "…"
	}
	return string(s)
}
