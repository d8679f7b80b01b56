package schema

import (
	"iter"
	"sort"
	"strconv"
)

// Node pairs an object found in a payload with the key path used to
// reach it. Array hops contribute their element index as a path segment.
type Node struct {
	Obj  map[string]any
	Path []string
}

// Walk yields every plain-object node of an untyped JSON value in
// depth-first pre-order: an object is yielded before its children, arrays
// are descended but not yielded, scalars are skipped. Each call starts a
// fresh traversal over the same payload.
//
// Aggregator payloads can be deep and their shape is untrusted, so the walk
// runs on an explicit work stack instead of recursing. Object keys are
// visited in sorted order, which keeps the sequence identical across runs
// despite Go's randomized map iteration.
func Walk(root any) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		type frame struct {
			v    any
			path []string
		}
		stack := []frame{{v: root}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			switch n := f.v.(type) {
			case map[string]any:
				if !yield(Node{Obj: n, Path: f.path}) {
					return
				}
				keys := sortedKeys(n)
				for i := len(keys) - 1; i >= 0; i-- {
					k := keys[i]
					stack = append(stack, frame{v: n[k], path: childPath(f.path, k)})
				}
			case []any:
				for i := len(n) - 1; i >= 0; i-- {
					stack = append(stack, frame{v: n[i], path: childPath(f.path, strconv.Itoa(i))})
				}
			}
		}
	}
}

func childPath(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
