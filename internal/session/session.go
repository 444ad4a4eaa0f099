// Package session tracks the per-session tool parameters threaded through
// the compile and check front end.
package session

// RunKind records which tool a session last invoked. It selects the
// output-analysis step that runs when the subprocess finishes.
type RunKind int

const (
	RunNone RunKind = iota
	RunCompile
	RunCheck
)

// String returns the lowercase name of the run kind
func (k RunKind) String() string {
	switch k {
	case RunCompile:
		return "compile"
	case RunCheck:
		return "check"
	default:
		return "none"
	}
}

// Artifact is one compiled model scraped from compiler output: the model
// name and the on-disk path of its binary.
type Artifact struct {
	Model string
	Path  string
}

// Session holds the mutable parameters for one editing session. Each
// command handler receives the session it should read and update.
type Session struct {
	ProjectFile string
	Artifact    string
	TestCase    string
	Iterations  int
	LastRun     RunKind

	// Artifacts produced by the most recent compile, in production order.
	Artifacts []Artifact
}

// New returns a session with default parameters.
func New() *Session {
	return &Session{Iterations: 1}
}

// Retarget records the artifacts produced by a fresh compile and re-derives
// the artifact selection. A selection that is not among the freshly produced
// paths is stale: it resets to the first produced artifact, or to empty when
// the compile produced none. A compile producing zero artifacts with exit
// code 0 intentionally leaves the selection empty.
func (s *Session) Retarget(produced []Artifact) {
	s.Artifacts = produced

	for _, a := range produced {
		if a.Path == s.Artifact {
			return
		}
	}

	if len(produced) > 0 {
		s.Artifact = produced[0].Path
	} else {
		s.Artifact = ""
	}
}

// SelectedArtifact returns the artifact record matching the current
// selection, if the selection points at a known artifact.
func (s *Session) SelectedArtifact() (Artifact, bool) {
	for _, a := range s.Artifacts {
		if a.Path == s.Artifact {
			return a, true
		}
	}
	return Artifact{}, false
}
