// Package brain models the "AI brain" network shown on the marketing site:
// the fixed five-layer layout and the camera controller that drives drag,
// click-to-zoom and the guided tour. Rendering is left to the browser.
package brain

import (
	"credable/internal/model"
	"math"
)

const nodeRingSpacing = 2.5

var layers = []model.BrainLayer{
	{
		Name:      "Layer 1 — Perception",
		NodeCount: 24,
		Color:     "#4a9eff",
		Z:         -60,
		Description: "What CredAble sees: Bank transactions & cash flows, GST/tax signals, financial statements, " +
			"invoices (payables & receivables), BRE outputs & application docs.",
	},
	{
		Name:      "Layer 2 — Understanding",
		NodeCount: 28,
		Color:     "#7c3aed",
		Z:         -30,
		Description: "What CredAble understands: Normalize entities (customers, suppliers), compute ratios & cycles " +
			"(DSO/DPO/CCC), detect seasonality & volatility, link documents to facts, coverage + confidence per signal.",
	},
	{
		Name:      "Layer 3 — Reasoning",
		NodeCount: 32,
		Color:     "#9d4edd",
		Z:         0,
		Description: "What CredAble infers: Signals → inferences → implications, concentration + stress detection, " +
			"inconsistency checks, early warning triggers, explainable chains with confidence.",
	},
	{
		Name:      "Layer 4 — Judgment",
		NodeCount: 26,
		Color:     "#c77dff",
		Z:         30,
		Description: "What CredAble decides: Policy alignment & exceptions, risk appetite fit, scenario sensitivity, " +
			"confidence rings + assumptions, human override + audit trail.",
	},
	{
		Name:      "Layer 5 — Action",
		NodeCount: 18,
		Color:     "#f7931e",
		Z:         60,
		Description: "What CredAble produces: Draft CAM paragraphs, recommended covenants, red flags & follow-ups, " +
			"decision-ready summary, notifications for maker/checker.",
	},
}

// NodeRef addresses one node by layer and position in its ring
type NodeRef struct {
	Layer int `json:"layer"`
	Index int `json:"index"`
}

// Layout is the network geometry
type Layout struct {
	Layers []model.BrainLayer
	Nodes  [][]model.BrainNode
}

// NewLayout places every node on its layer's ring
func NewLayout() *Layout {
	l := &Layout{
		Layers: make([]model.BrainLayer, len(layers)),
		Nodes:  make([][]model.BrainNode, len(layers)),
	}
	for li, layer := range layers {
		layer.Index = li
		l.Layers[li] = layer

		radius := float64(layer.NodeCount) * nodeRingSpacing
		ring := make([]model.BrainNode, layer.NodeCount)
		for i := range ring {
			angle := float64(i) / float64(layer.NodeCount) * 2 * math.Pi
			ring[i] = model.BrainNode{
				Layer: li,
				Index: i,
				Position: model.Vec3{
					X: math.Cos(angle) * radius,
					Y: math.Sin(angle) * radius,
					Z: layer.Z,
				},
			}
		}
		l.Nodes[li] = ring
	}
	return l
}

// Node looks up a node, reporting false for an out-of-range ref
func (l *Layout) Node(ref NodeRef) (model.BrainNode, bool) {
	if ref.Layer < 0 || ref.Layer >= len(l.Nodes) {
		return model.BrainNode{}, false
	}
	ring := l.Nodes[ref.Layer]
	if ref.Index < 0 || ref.Index >= len(ring) {
		return model.BrainNode{}, false
	}
	return ring[ref.Index], true
}

// Connections counts the edges; each node links to every node of the layer before it
func (l *Layout) Connections() int {
	n := 0
	for i := 1; i < len(l.Layers); i++ {
		n += l.Layers[i].NodeCount * l.Layers[i-1].NodeCount
	}
	return n
}

// Model returns the layout in its wire form
func (l *Layout) Model() model.BrainLayout {
	return model.BrainLayout{
		Layers:      l.Layers,
		Nodes:       l.Nodes,
		Connections: l.Connections(),
	}
}
