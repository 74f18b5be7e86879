package main

import (
	"math"

	"github.com/pthm-cable/clay/config"
	"github.com/pthm-cable/clay/game"
)

// Penalty weights. Containment and recovery dominate; instability is a
// hard wall so the optimizer never trades it for anything.
const (
	weightContainment = 4.0
	weightRecovery    = 2.0
	weightTopology    = 1.5
	weightInstability = 50.0

	containmentSlack = 1.05
	speedCeiling     = 0.05
	sampleInterval   = 10
)

// FitnessEvaluator runs headless scripted sessions and scores the
// material response.
type FitnessEvaluator struct {
	params   *ParamVector
	maxTicks int32
	seeds    []int64
	cfg      *config.Config

	lastScore EvalScore
}

// EvalScore breaks a fitness value into its components for logging.
type EvalScore struct {
	Containment float64
	Recovery    float64
	Topology    float64
	Instability float64
}

// NewFitnessEvaluator creates an evaluator over the given seeds.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, cfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		maxTicks: maxTicks,
		seeds:    seeds,
		cfg:      cfg,
	}
}

// LastScore returns the component breakdown of the last evaluation.
func (e *FitnessEvaluator) LastScore() EvalScore {
	return e.lastScore
}

// Evaluate runs the scripted session for each seed with the given raw
// parameter values and returns the mean penalty (lower is better).
func (e *FitnessEvaluator) Evaluate(raw []float64) float64 {
	e.params.ApplyToConfig(e.cfg, raw)

	var total float64
	var score EvalScore
	for _, seed := range e.seeds {
		s := e.runOne(seed)
		score.Containment += s.Containment
		score.Recovery += s.Recovery
		score.Topology += s.Topology
		score.Instability += s.Instability
		total += s.Containment*weightContainment +
			s.Recovery*weightRecovery +
			s.Topology*weightTopology +
			s.Instability*weightInstability
	}

	n := float64(len(e.seeds))
	score.Containment /= n
	score.Recovery /= n
	score.Topology /= n
	score.Instability /= n
	e.lastScore = score

	return total / n
}

// runOne scores a single seeded session.
func (e *FitnessEvaluator) runOne(seed int64) EvalScore {
	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
	})
	defer g.Unload()

	dt := e.cfg.Blob.Timestep
	radius := float32(e.cfg.Blob.Radius)

	var containmentSum, containmentN float64
	var recoverySum, recoveryN float64
	var maxSpeed float64
	var stretchSplit, restMerged bool
	var stretchSeen, restSeen bool

	for g.Tick() < e.maxTicks {
		g.UpdateHeadless()

		if g.Tick()%sampleInterval != 0 {
			continue
		}

		blob := g.Blob()
		st := blob.Stats()
		if s := float64(st.AvgSpeed); s > maxSpeed {
			maxSpeed = s
		}

		phase := math.Mod(float64(g.Tick())*dt, game.ScriptPeriod)
		switch {
		case phase >= 3 && phase < 5:
			// Hands-off recovery after the drag: shape should settle
			// back toward its remembered rest.
			recoverySum += float64(blob.RestDrift()) / float64(radius)
			recoveryN++
			if !st.Split {
				containmentSum += outsideFraction(blob.Positions(), radius*containmentSlack)
				containmentN++
			}
		case phase >= 7 && phase < 8:
			// Deep into the stretch the blob should have torn.
			stretchSeen = true
			if st.Split {
				stretchSplit = true
			}
		case phase >= 11:
			// Well after release the clusters should have rejoined.
			restSeen = true
			if !st.Split {
				restMerged = true
			}
		}
	}

	var score EvalScore
	if containmentN > 0 {
		score.Containment = containmentSum / containmentN
	}
	if recoveryN > 0 {
		score.Recovery = recoverySum / recoveryN
	}
	if stretchSeen && !stretchSplit {
		score.Topology += 1
	}
	if restSeen && !restMerged {
		score.Topology += 1
	}
	if maxSpeed > speedCeiling {
		score.Instability = maxSpeed - speedCeiling
	}
	return score
}

// outsideFraction returns the fraction of particles farther than limit
// from the centroid.
func outsideFraction(positions []float32, limit float32) float64 {
	n := len(positions) / 3
	if n == 0 {
		return 0
	}

	var cx, cy, cz float32
	for i := 0; i < n; i++ {
		cx += positions[i*3]
		cy += positions[i*3+1]
		cz += positions[i*3+2]
	}
	cx /= float32(n)
	cy /= float32(n)
	cz /= float32(n)

	limitSq := limit * limit
	outside := 0
	for i := 0; i < n; i++ {
		dx := positions[i*3] - cx
		dy := positions[i*3+1] - cy
		dz := positions[i*3+2] - cz
		if dx*dx+dy*dy+dz*dz > limitSq {
			outside++
		}
	}
	return float64(outside) / float64(n)
}
