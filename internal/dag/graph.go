// Package dag provides a minimal directed-graph structure with cycle
// detection, used to validate an artifact dependency closure before any
// action runs.
package dag

import (
	"fmt"
	"sort"
)

// Graph is a directed graph keyed by node ID.
type Graph struct {
	nodes map[string]*node
}

type node struct {
	id   string
	deps []string
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{id: id}
}

// AddEdge records that `fromID` depends on `toID`. An error is returned if
// either node does not exist. A self-referential edge is recorded as-is and
// reported by DetectCycles, so callers get one uniform cycle error.
func (g *Graph) AddEdge(fromID, toID string) error {
	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	if _, ok := g.nodes[toID]; !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}
	fromNode.deps = append(fromNode.deps, toID)
	return nil
}

// Dependencies returns the IDs the given node depends on, in insertion order.
func (g *Graph) Dependencies(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return append([]string(nil), n.deps...), nil
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int { return len(g.nodes) }

// DetectCycles checks the graph for any cycle. It returns the member IDs of
// the first cycle found, or nil if the graph is acyclic.
//
// Classic depth-first search with three node states: permanently visited,
// on the current recursion stack, and unvisited. Roots are visited in
// sorted order so the reported cycle is deterministic.
func (g *Graph) DetectCycles() []string {
	permanent := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var visit func(n *node) []string
	visit = func(n *node) []string {
		if permanent[n.id] {
			return nil
		}
		if onStack[n.id] {
			// Trim the stack down to the cycle entry point.
			for i, id := range stack {
				if id == n.id {
					return append(append([]string(nil), stack[i:]...), n.id)
				}
			}
			return []string{n.id, n.id}
		}

		onStack[n.id] = true
		stack = append(stack, n.id)

		for _, depID := range n.deps {
			if cycle := visit(g.nodes[depID]); cycle != nil {
				return cycle
			}
		}

		stack = stack[:len(stack)-1]
		delete(onStack, n.id)
		permanent[n.id] = true
		return nil
	}

	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if !permanent[id] {
			if cycle := visit(g.nodes[id]); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
