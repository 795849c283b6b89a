package workflow

// State represents the lifecycle position of an in-progress journal draft.
type State string

// Possible draft states. Analyzed is terminal for a draft whose analysis
// found nothing to reframe; saving is only offered from Reframed.
const (
	StateDraft           State = "draft"
	StateAnalyzing       State = "analyzing"
	StateAnalyzed        State = "analyzed"
	StateReframesPending State = "reframes_pending"
	StateReframed        State = "reframed"
	StateSaving          State = "saving"
	StateSaved           State = "saved"
	StateError           State = "error"
)

// settled reports whether the state accepts a new request. States with an
// outbound call in flight reject everything until the call completes.
func (s State) settled() bool {
	switch s {
	case StateAnalyzing, StateReframesPending, StateSaving:
		return false
	default:
		return true
	}
}
