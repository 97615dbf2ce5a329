package visualizer

import (
	"context"
	"errors"

	"aesviz/server/internal/pkg/encryption"
	"aesviz/server/internal/protocol"
)

var ErrUnknownOperation = errors.New("operation must be ENCRYPT or DECRYPT")

var stepTitles = map[encryption.StepKind]string{
	encryption.StepLoad:          "Load State",
	encryption.StepSubBytes:      "SubBytes",
	encryption.StepInvSubBytes:   "Inverse SubBytes",
	encryption.StepShiftRows:     "ShiftRows",
	encryption.StepInvShiftRows:  "Inverse ShiftRows",
	encryption.StepMixColumns:    "MixColumns",
	encryption.StepInvMixColumns: "Inverse MixColumns",
	encryption.StepAddRoundKey:   "AddRoundKey",
	encryption.StepDone:          "Complete",
}

// recorder turns engine steps into trace steps. Once ctx is done it stops
// recording; the run itself always finishes.
type recorder struct {
	ctx    context.Context
	steps  []protocol.TraceStep
	prev   encryption.State
	ctxErr error
}

func newRecorder(ctx context.Context) *recorder {
	return &recorder{ctx: ctx}
}

func (r *recorder) OnStep(step encryption.Step) {
	if r.ctxErr != nil {
		return
	}
	if err := r.ctx.Err(); err != nil {
		r.ctxErr = err
		return
	}

	var highlight []int
	if step.Kind != encryption.StepLoad {
		highlight = changedCells(r.prev, step.State)
	}
	r.prev = step.State

	r.steps = append(r.steps, protocol.TraceStep{
		Index:     len(r.steps),
		Phase:     string(step.Phase),
		Round:     step.Round,
		Kind:      string(step.Kind),
		Title:     stepTitles[step.Kind],
		State:     step.State.Hex(),
		Highlight: highlight,
	})
}

func (r *recorder) err() error {
	return r.ctxErr
}

// changedCells lists the serialised offsets whose byte differs
func changedCells(before, after encryption.State) []int {
	var cells []int
	for i := 0; i < encryption.AES128BlockSize; i++ {
		if before.At(i) != after.At(i) {
			cells = append(cells, i)
		}
	}
	return cells
}
