package models

// PatternType identifies an emergence motif detected on the network.
type PatternType string

const (
	// PatternLoop is a self-reinforcing activation cycle of length >= 3.
	PatternLoop PatternType = "loop"
	// PatternSynchronization is a group of neurons firing at near-equal levels.
	PatternSynchronization PatternType = "synchronization"
	// PatternHierarchy is the presence of multiple high-betweenness hubs.
	PatternHierarchy PatternType = "hierarchy"
	// PatternStrangeAttractor is an activation variance band between order and chaos.
	PatternStrangeAttractor PatternType = "strange_attractor"
)

// PatternTypeCount is the number of distinct motifs the detector can emit.
// The scorer's diversity term divides by it.
const PatternTypeCount = 4

// Pattern is an ephemeral record of one detected motif. Patterns are
// recomputed from scratch on every scoring call and never persist across
// steps.
type Pattern struct {
	Type     PatternType `json:"type"`
	Neurons  []int       `json:"nodes"`
	Strength float64     `json:"strength"`
}
