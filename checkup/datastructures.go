package checkup

// Severity of a single check outcome. Ordered: ok < warn < bad.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarn
	SeverityBad
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "ok"
	case SeverityWarn:
		return "warn"
	case SeverityBad:
		return "bad"
	default:
		return "unknown"
	}
}

// CheckResult holds the outcome of one logical check. Never mutated after
// it is recorded.
type CheckResult struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// FileAccessDescriptor is a snapshot of the filesystem metadata of the
// secret file, taken once per run.
type FileAccessDescriptor struct {
	// The path of the file
	Path string `json:"path"`

	// Permission bits in octal text form, e.g. "600"
	Mode string `json:"mode"`

	UID string `json:"uid"`
	GID string `json:"gid"`

	// Resolved owner/group names, empty when the lookup fails
	Owner string `json:"owner,omitempty"`
	Group string `json:"group,omitempty"`
}

// ProcessIdentity is the identity the secret file must be readable by.
// Empty fields mean the identity probe failed; that is a valid state,
// not an error.
type ProcessIdentity struct {
	UID string `json:"uid"`
	GID string `json:"gid"`
}

// Known reports whether the identity probe resolved anything at all.
func (p ProcessIdentity) Known() bool {
	return p.UID != "" || p.GID != ""
}

// AccessDecision is the output of EvaluateAccess.
type AccessDecision struct {
	Readable bool `json:"readable"`

	// Optional tightening suggestion for readable-but-loose modes
	Hint string `json:"hint,omitempty"`
}

// ContainerClass is the coarse classification of a container status line.
type ContainerClass int

const (
	ClassOK ContainerClass = iota
	ClassDegraded
	ClassAbsent
)

func (c ContainerClass) String() string {
	switch c {
	case ClassOK:
		return "ok"
	case ClassDegraded:
		return "degraded"
	case ClassAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// ContainerStatusReport holds one named container's observed state.
type ContainerStatusReport struct {
	Name   string         `json:"name"`
	Status string         `json:"status"`
	Class  ContainerClass `json:"class"`
}

// ContainerStat is one row of the resource usage report (--full only).
type ContainerStat struct {
	Name    string `json:"name"`
	CPU     string `json:"cpu"`
	Mem     string `json:"mem"`
	MemPerc string `json:"memPerc"`
}

// Verdict is the final roll-up of a whole run.
type Verdict struct {
	ExitCode int    `json:"exitCode"`
	Summary  string `json:"summary"`
}
