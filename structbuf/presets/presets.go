// Package presets declares the record shapes shared by the demos: a
// cellular automaton, a slime-mold agent simulation and a spinning triangle.
//
// Specifications are package singletons and must not be changed by callers.
package presets

import (
	"math"

	"github.com/isaiahaiasi/webgpu-demos/structbuf"
)

var (
	automatonParams = structbuf.NewStruct().
			Add("resolution", structbuf.Vec2u).
			Add("birth", structbuf.U32).
			Add("survive", structbuf.U32).
			Add("generation", structbuf.U32)

	slimeAgent = structbuf.NewStruct().
			Add("pos", structbuf.Vec2f).
			Add("angle", structbuf.F32)

	slimeParams = structbuf.NewStruct().
			Add("moveSpeed", structbuf.F32).
			Add("turnSpeed", structbuf.F32).
			Add("sensorAngle", structbuf.F32).
			Add("sensorDistance", structbuf.F32).
			Add("sensorSize", structbuf.I32).
			Add("decayRate", structbuf.F32).
			Add("diffuseRate", structbuf.F32).
			Add("deltaTime", structbuf.F32).
			Add("resolution", structbuf.Vec2u)

	triangle = structbuf.NewStruct().
			Add("transform", structbuf.Mat4x4f).
			Add("color", structbuf.Vec4f).
			Add("time", structbuf.F32)
)

// AutomatonParams is the uniform block of a life-like cellular automaton.
// birth and survive are neighbour-count bit masks, see RuleMask.
func AutomatonParams() *structbuf.Struct { return automatonParams }

// SlimeAgent is one agent of the slime-mold simulation.
func SlimeAgent() *structbuf.Struct { return slimeAgent }

// SlimeParams is the uniform block of the slime-mold simulation.
func SlimeParams() *structbuf.Struct { return slimeParams }

// Triangle is the per-frame uniform block of the spinning triangle.
func Triangle() *structbuf.Struct { return triangle }

// SlimeAgents returns a storage buffer specification holding n agents.
func SlimeAgents(n int) *structbuf.Struct {
	return structbuf.NewStruct().Add("agents", structbuf.ArrayOf(slimeAgent, n))
}

// NewAutomaton builds automaton params for a width x height grid with the
// given rule, e.g. NewAutomaton(64, 64, RuleMask(3), RuleMask(2, 3)) for
// Conway's life.
func NewAutomaton(width, height, birth, survive uint32) (*structbuf.Record, error) {
	rec, err := structbuf.New(automatonParams, structbuf.WithUniform())
	if err != nil {
		return nil, err
	}
	err = rec.Batch().
		Set("resolution", []uint32{width, height}).
		Set("birth", birth).
		Set("survive", survive).
		Err()
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// NewSlimeParams builds slime-mold params with the demo defaults.
func NewSlimeParams(width, height uint32) (*structbuf.Record, error) {
	rec, err := structbuf.New(slimeParams, structbuf.WithUniform())
	if err != nil {
		return nil, err
	}
	err = rec.SetAll(map[string]any{
		"moveSpeed":      1.0,
		"turnSpeed":      0.3,
		"sensorAngle":    math.Pi / 4,
		"sensorDistance": 9.0,
		"sensorSize":     1,
		"decayRate":      0.015,
		"diffuseRate":    0.2,
		"deltaTime":      1.0 / 60,
		"resolution":     []uint32{width, height},
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// NewSlimeAgents builds a storage record of n agents placed on a circle of
// the given radius around center, each facing inward.
func NewSlimeAgents(n int, center [2]float32, radius float32) (*structbuf.Record, error) {
	rec, err := structbuf.New(SlimeAgents(n))
	if err != nil {
		return nil, err
	}
	slots := make([]any, n)
	for i := range slots {
		theta := 2 * math.Pi * float64(i) / float64(n)
		slots[i] = map[string]any{
			"pos": []float32{
				center[0] + radius*float32(math.Cos(theta)),
				center[1] + radius*float32(math.Sin(theta)),
			},
			"angle": theta + math.Pi,
		}
	}
	if err := rec.SetAll(map[string]any{"agents": slots}); err != nil {
		return nil, err
	}
	return rec, nil
}

// NewTriangle builds the triangle uniform block with an identity transform.
func NewTriangle(color [4]float32) (*structbuf.Record, error) {
	rec, err := structbuf.New(triangle, structbuf.WithUniform())
	if err != nil {
		return nil, err
	}
	err = rec.Batch().
		Set("transform", RotationZ(0)).
		Set("color", color[:]).
		Err()
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// RuleMask sets bit n for every neighbour count n (0..8).
func RuleMask(counts ...int) uint32 {
	var mask uint32
	for _, n := range counts {
		if n >= 0 && n <= 8 {
			mask |= 1 << n
		}
	}
	return mask
}

// RotationZ returns a column-major 4x4 rotation about the z axis.
func RotationZ(radians float64) []float32 {
	s, c := math.Sincos(radians)
	sf, cf := float32(s), float32(c)
	return []float32{
		cf, sf, 0, 0,
		-sf, cf, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}
