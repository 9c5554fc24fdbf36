// Package pattern detects emergence motifs on the connection graph
// and the current activation snapshot: self-reinforcing loops,
// synchronized groups, hierarchical hub structure, and the
// strange-attractor band of activation variance. Detection is
// stateless; every call recomputes from scratch.
package pattern

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/neurogrid/emergence/internal/graph"
	"github.com/neurogrid/emergence/internal/models"
)

const (
	// hierarchyMinNeurons gates hub detection: betweenness is only
	// meaningful once the network is past this size.
	hierarchyMinNeurons = 10
	// attractorMinNeurons gates variance analysis.
	attractorMinNeurons = 5
	varianceLow         = 0.1
	varianceHigh        = 0.5
	variancePeak        = 0.3
)

// Config tunes the detector.
type Config struct {
	// MaxCycleLen and CycleBudget bound the loop search; see
	// graph.CycleLimits.
	MaxCycleLen int
	CycleBudget int
	// MinLoopStrength is the mean activation a cycle must exceed to
	// count as a loop pattern.
	MinLoopStrength float64
	// SyncTolerance is the maximum activation difference within a
	// synchronized group.
	SyncTolerance float64
	// DedupSyncGroups collapses groups with an identical participant
	// set into one pattern. When false, every neuron anchors its own
	// group and duplicates are emitted as-is.
	DedupSyncGroups bool
	// HubCentrality is the betweenness a neuron must exceed to count
	// as a hub.
	HubCentrality float64
}

// DefaultConfig returns the standard detection thresholds.
func DefaultConfig() Config {
	return Config{
		MaxCycleLen:     8,
		CycleBudget:     10000,
		MinLoopStrength: 0.5,
		SyncTolerance:   0.1,
		DedupSyncGroups: true,
		HubCentrality:   0.1,
	}
}

// Detector finds emergence patterns under a fixed Config.
type Detector struct {
	cfg Config
}

// New returns a detector. Zero numeric config fields fall back to
// their defaults; DedupSyncGroups is taken as given.
func New(cfg Config) *Detector {
	def := DefaultConfig()
	if cfg.MaxCycleLen <= 0 {
		cfg.MaxCycleLen = def.MaxCycleLen
	}
	if cfg.CycleBudget <= 0 {
		cfg.CycleBudget = def.CycleBudget
	}
	if cfg.MinLoopStrength <= 0 {
		cfg.MinLoopStrength = def.MinLoopStrength
	}
	if cfg.SyncTolerance <= 0 {
		cfg.SyncTolerance = def.SyncTolerance
	}
	if cfg.HubCentrality <= 0 {
		cfg.HubCentrality = def.HubCentrality
	}
	return &Detector{cfg: cfg}
}

// Detect returns every pattern present in the network, in detection
// order: loops, synchronization groups, hierarchy, strange attractor.
// activations maps neuron id to current activation.
func (d *Detector) Detect(g *graph.Undirected, activations map[int]float64) []models.Pattern {
	var patterns []models.Pattern
	patterns = append(patterns, d.loops(g, activations)...)
	patterns = append(patterns, d.syncGroups(g, activations)...)
	if p, ok := d.hierarchy(g); ok {
		patterns = append(patterns, p)
	}
	if p, ok := d.attractor(g, activations); ok {
		patterns = append(patterns, p)
	}
	return patterns
}

// loops reports cycles whose mean member activation exceeds
// MinLoopStrength. An aborted cycle search yields no loop patterns at
// all rather than a partial, load-dependent answer.
func (d *Detector) loops(g *graph.Undirected, activations map[int]float64) []models.Pattern {
	cycles, complete := g.SimpleCycles(graph.CycleLimits{
		MaxLength: d.cfg.MaxCycleLen,
		Budget:    d.cfg.CycleBudget,
	})
	if !complete {
		return nil
	}

	var out []models.Pattern
	for _, cycle := range cycles {
		var sum float64
		for _, id := range cycle {
			sum += activations[id]
		}
		strength := sum / float64(len(cycle))
		if strength > d.cfg.MinLoopStrength {
			out = append(out, models.Pattern{
				Type:     models.PatternLoop,
				Neurons:  cycle,
				Strength: strength,
			})
		}
	}
	return out
}

// syncGroups anchors a group at every neuron and gathers all neurons
// within SyncTolerance of the anchor's activation, anchor first.
// Strength is the group's mean activation, floored at zero to stay in
// the declared [0,1] range.
func (d *Detector) syncGroups(g *graph.Undirected, activations map[int]float64) []models.Pattern {
	ids := sortedNodes(g)
	var out []models.Pattern
	var seen map[string]bool
	if d.cfg.DedupSyncGroups {
		seen = make(map[string]bool)
	}

	for _, anchor := range ids {
		group := []int{anchor}
		for _, other := range ids {
			if other == anchor {
				continue
			}
			if math.Abs(activations[anchor]-activations[other]) < d.cfg.SyncTolerance {
				group = append(group, other)
			}
		}
		if len(group) < 3 {
			continue
		}
		if seen != nil {
			key := setKey(group)
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		var sum float64
		for _, id := range group {
			sum += activations[id]
		}
		strength := max(0, sum/float64(len(group)))
		out = append(out, models.Pattern{
			Type:     models.PatternSynchronization,
			Neurons:  group,
			Strength: strength,
		})
	}
	return out
}

func (d *Detector) hierarchy(g *graph.Undirected) (models.Pattern, bool) {
	if g.NodeCount() <= hierarchyMinNeurons {
		return models.Pattern{}, false
	}

	centrality := g.Betweenness()
	var hubs []int
	var sum float64
	for _, id := range sortedNodes(g) {
		if centrality[id] > d.cfg.HubCentrality {
			hubs = append(hubs, id)
			sum += centrality[id]
		}
	}
	if len(hubs) < 2 {
		return models.Pattern{}, false
	}
	return models.Pattern{
		Type:     models.PatternHierarchy,
		Neurons:  hubs,
		Strength: sum / float64(len(hubs)),
	}, true
}

// attractor emits when the activation variance sits in the band
// between frozen and chaotic, strongest at the center of the band.
func (d *Detector) attractor(g *graph.Undirected, activations map[int]float64) (models.Pattern, bool) {
	ids := sortedNodes(g)
	if len(ids) <= attractorMinNeurons {
		return models.Pattern{}, false
	}

	var sum float64
	for _, id := range ids {
		sum += activations[id]
	}
	mean := sum / float64(len(ids))
	var variance float64
	for _, id := range ids {
		dev := activations[id] - mean
		variance += dev * dev
	}
	variance /= float64(len(ids))

	if variance <= varianceLow || variance >= varianceHigh {
		return models.Pattern{}, false
	}
	return models.Pattern{
		Type:     models.PatternStrangeAttractor,
		Neurons:  ids,
		Strength: 1 - math.Abs(variance-variancePeak),
	}, true
}

func sortedNodes(g *graph.Undirected) []int {
	ids := g.Nodes()
	slices.Sort(ids)
	return ids
}

// setKey builds an order-independent identity for a participant set.
func setKey(group []int) string {
	ids := slices.Clone(group)
	slices.Sort(ids)
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}
