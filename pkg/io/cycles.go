package io

import (
	"slices"
	"strings"

	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
)

// checkCycles rejects definitions that contain themselves, directly or
// through other definitions. Such a scene would have no finite flattening.
func checkCycles(data file) error {
	refs := make(map[string][]string, len(data.Definitions))
	for _, d := range data.Definitions {
		refs[d.Name] = collectRefs(d.Entities)
	}

	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(refs))

	type frame struct {
		name string
		next int
	}
	for _, d := range data.Definitions {
		if state[d.Name] != unvisited {
			continue
		}
		stack := []frame{{name: d.Name}}
		state[d.Name] = active
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next >= len(refs[top.name]) {
				state[top.name] = done
				stack = stack[:len(stack)-1]
				continue
			}
			ref := refs[top.name][top.next]
			top.next++
			switch state[ref] {
			case active:
				chain := make([]string, 0, len(stack)+1)
				for _, f := range stack {
					chain = append(chain, f.name)
				}
				start := slices.Index(chain, ref)
				chain = append(chain[start:], ref)
				return apperrors.New(apperrors.ErrCodeInvalidScene, "definition cycle: %s", strings.Join(chain, " -> "))
			case unvisited:
				if _, known := refs[ref]; known {
					state[ref] = active
					stack = append(stack, frame{name: ref})
				}
			}
		}
	}
	return nil
}

// collectRefs returns the definitions instanced anywhere below nodes,
// including inside nested groups.
func collectRefs(nodes []node) []string {
	var out []string
	stack := [][]node{nodes}
	for len(stack) > 0 {
		level := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range level {
			if n.Type == "instance" && n.Definition != "" {
				out = append(out, n.Definition)
			}
			if len(n.Entities) > 0 {
				stack = append(stack, n.Entities)
			}
		}
	}
	return out
}
