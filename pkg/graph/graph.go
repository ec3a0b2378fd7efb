// Package graph provides the pure graph algorithms the flow validator runs
// over a FlowDocument: adjacency construction, BFS reachability, and DFS
// cycle detection with a loop-like back-edge exception.
package graph

import "github.com/smilemakc/specvalidate/pkg/models"

// Adjacency maps each node ID to the ordered list of target node IDs
// reachable via its outgoing connections.
type Adjacency map[string][]string

// Build constructs the adjacency map for a flow, grounded on the teacher's
// buildDAG (internal/application/engine/dag_executor.go) — re-expressed
// without in-degree bookkeeping, since the validator never schedules
// execution waves, only asks reachability/cycle questions.
func Build(flow *models.FlowDocument) Adjacency {
	adj := make(Adjacency)
	for _, n := range flow.AllNodes() {
		if _, ok := adj[n.ID]; !ok {
			adj[n.ID] = nil
		}
		for _, c := range n.Connections {
			adj[n.ID] = append(adj[n.ID], c.TargetNodeID)
		}
	}
	return adj
}

// Reachable returns the set of node IDs reachable from startID via adj,
// computed by BFS (spec.md §4.2).
func Reachable(startID string, adj Adjacency) map[string]bool {
	visited := map[string]bool{startID: true}
	queue := []string{startID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// HasCycle runs DFS from the flow's trigger with a recursion stack,
// treating an edge into a loop-like node (loop, parallel) currently on the
// stack as intentional re-entry rather than a back-edge (spec.md §4.2).
// Cycle detection is always skipped for agent flows by the caller (the
// flow validator), not here — HasCycle itself is a pure graph function and
// doesn't know about FlowType.
func HasCycle(flow *models.FlowDocument) bool {
	if flow.Trigger == nil {
		return false
	}
	adj := Build(flow)
	kindByID := make(map[string]models.NodeKind, len(flow.AllNodes()))
	for _, n := range flow.AllNodes() {
		kindByID[n.ID] = n.Type
	}

	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		onStack[id] = true
		for _, next := range adj[id] {
			if onStack[next] {
				if models.LoopLikeKinds[kindByID[next]] {
					continue
				}
				return true
			}
			if !visited[next] {
				if dfs(next) {
					return true
				}
			}
		}
		onStack[id] = false
		return false
	}

	return dfs(flow.Trigger.ID)
}
