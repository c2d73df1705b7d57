package domain

// Outcome classifies the result of a single evaluated control.
type Outcome int

const (
	OutcomePass Outcome = iota
	OutcomeFail
	OutcomeWarning
	OutcomeInfo
	// OutcomeAccessDenied marks a check the run was structurally unable
	// to perform. It is produced only by capability probes, never by a
	// domain check that actually executed.
	OutcomeAccessDenied
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "PASS"
	case OutcomeFail:
		return "FAIL"
	case OutcomeWarning:
		return "WARNING"
	case OutcomeInfo:
		return "INFO"
	case OutcomeAccessDenied:
		return "ACCESS DENIED"
	default:
		return "UNKNOWN"
	}
}

// DisplayState controls how a section is presented by the renderer.
// It has no meaning anywhere else in the engine.
type DisplayState string

const (
	DisplayExpanded  DisplayState = "expanded"
	DisplayCollapsed DisplayState = "collapsed"
	DisplayNone      DisplayState = "none"
)
