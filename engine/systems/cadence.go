package systems

import (
	"fmt"

	"github.com/spaghettifunk/depthmotion/engine/config"
	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/engine/math"
)

// CadenceGate decides once per rendered frame whether the frame is captured.
type CadenceGate struct {
	step       uint64
	frameIndex uint64
}

func NewCadenceGate(samplingStep int) (*CadenceGate, error) {
	if !math.InRange(samplingStep, config.MinSamplingStep, config.MaxSamplingStep) {
		return nil, fmt.Errorf("%w: sampling step %d", core.ErrInvalidConfig, samplingStep)
	}
	return &CadenceGate{step: uint64(samplingStep)}, nil
}

// Evaluate returns the index of the current frame and whether it must be
// captured, then advances the counter whatever the outcome.
func (cg *CadenceGate) Evaluate() (uint64, bool) {
	index := cg.frameIndex
	capture := index%cg.step == 0
	cg.frameIndex++
	return index, capture
}

// FrameIndex is the index the next Evaluate will decide on.
func (cg *CadenceGate) FrameIndex() uint64 {
	return cg.frameIndex
}
