package models

// NodeKind is the closed set of node variants a flow document can contain.
// Each kind interprets a Node's Spec payload differently; see the flow
// validator for the per-kind rules.
type NodeKind string

const (
	NodeKindTrigger      NodeKind = "trigger"
	NodeKindInput        NodeKind = "input"
	NodeKindProcess      NodeKind = "process"
	NodeKindDecision     NodeKind = "decision"
	NodeKindTerminal     NodeKind = "terminal"
	NodeKindDataStore    NodeKind = "data_store"
	NodeKindServiceCall  NodeKind = "service_call"
	NodeKindIPCCall      NodeKind = "ipc_call"
	NodeKindEvent        NodeKind = "event"
	NodeKindLoop         NodeKind = "loop"
	NodeKindParallel     NodeKind = "parallel"
	NodeKindSubFlow      NodeKind = "sub_flow"
	NodeKindLLMCall      NodeKind = "llm_call"
	NodeKindCollection   NodeKind = "collection"
	NodeKindParse        NodeKind = "parse"
	NodeKindCrypto       NodeKind = "crypto"
	NodeKindBatch        NodeKind = "batch"
	NodeKindTransaction  NodeKind = "transaction"
	NodeKindCache        NodeKind = "cache"
	NodeKindTransform    NodeKind = "transform"
	NodeKindDelay        NodeKind = "delay"
	NodeKindAgentLoop    NodeKind = "agent_loop"
	NodeKindGuardrail    NodeKind = "guardrail"
	NodeKindHumanGate    NodeKind = "human_gate"
	NodeKindOrchestrator NodeKind = "orchestrator"
	NodeKindSmartRouter  NodeKind = "smart_router"
	NodeKindHandoff      NodeKind = "handoff"
	NodeKindAgentGroup   NodeKind = "agent_group"
)

// AllNodeKinds is the closed catalog of 28 node kinds, used for coverage
// reporting (§4.8) — order is stable and matches the catalog in spec.md §3.
var AllNodeKinds = []NodeKind{
	NodeKindTrigger, NodeKindInput, NodeKindProcess, NodeKindDecision, NodeKindTerminal,
	NodeKindDataStore, NodeKindServiceCall, NodeKindIPCCall, NodeKindEvent, NodeKindLoop,
	NodeKindParallel, NodeKindSubFlow, NodeKindLLMCall, NodeKindCollection, NodeKindParse,
	NodeKindCrypto, NodeKindBatch, NodeKindTransaction, NodeKindCache, NodeKindTransform,
	NodeKindDelay, NodeKindAgentLoop, NodeKindGuardrail, NodeKindHumanGate,
	NodeKindOrchestrator, NodeKindSmartRouter, NodeKindHandoff, NodeKindAgentGroup,
}

// LoopLikeKinds re-enter themselves intentionally; cycle detection treats an
// edge into one of these as legitimate re-entry rather than a back-edge.
var LoopLikeKinds = map[NodeKind]bool{
	NodeKindLoop:     true,
	NodeKindParallel: true,
}
