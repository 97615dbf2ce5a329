package encryption

// Operation identifies the pipeline a step belongs to
type Operation string

const (
	OpEncrypt Operation = "ENCRYPT"
	OpDecrypt Operation = "DECRYPT"
)

// Phase is the pipeline stage: IDLE -> INITIAL_ROUND -> MAIN_ROUND x9 -> FINAL_ROUND -> DONE
type Phase string

const (
	PhaseIdle         Phase = "IDLE"
	PhaseInitialRound Phase = "INITIAL_ROUND"
	PhaseMainRound    Phase = "MAIN_ROUND"
	PhaseFinalRound   Phase = "FINAL_ROUND"
	PhaseDone         Phase = "DONE"
)

// StepKind names the primitive that produced a step
type StepKind string

const (
	StepLoad          StepKind = "LOAD"
	StepSubBytes      StepKind = "SUB_BYTES"
	StepInvSubBytes   StepKind = "INV_SUB_BYTES"
	StepShiftRows     StepKind = "SHIFT_ROWS"
	StepInvShiftRows  StepKind = "INV_SHIFT_ROWS"
	StepMixColumns    StepKind = "MIX_COLUMNS"
	StepInvMixColumns StepKind = "INV_MIX_COLUMNS"
	StepAddRoundKey   StepKind = "ADD_ROUND_KEY"
	StepDone          StepKind = "DONE"
)

// Step is a snapshot of the state taken after one primitive ran.
type Step struct {
	Operation Operation
	Phase     Phase
	Round     int
	Kind      StepKind
	State     State
}

// StepObserver receives every step of a run, in order. Observers see copies
// and cannot influence the computation.
type StepObserver interface {
	OnStep(step Step)
}

// StepFunc adapts a plain function to StepObserver
type StepFunc func(step Step)

func (f StepFunc) OnStep(step Step) {
	f(step)
}

// Option configures an AES128 engine
type Option func(*AES128)

// WithObserver attaches a step observer
func WithObserver(obs StepObserver) Option {
	return func(a *AES128) {
		a.observer = obs
	}
}

// run carries the per-call state through one pipeline
type run struct {
	op       Operation
	observer StepObserver
	state    State
	phase    Phase
	round    int
}

func (r *run) emit(kind StepKind) {
	if r.observer == nil {
		return
	}
	r.observer.OnStep(Step{
		Operation: r.op,
		Phase:     r.phase,
		Round:     r.round,
		Kind:      kind,
		State:     r.state,
	})
}

func (r *run) enter(phase Phase, round int) {
	r.phase = phase
	r.round = round
}
