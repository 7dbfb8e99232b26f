package model

// Phase represents the stage of a download job a progress event belongs to
type Phase string

const (
	// PhaseFetching means raw media data is being retrieved from the network
	PhaseFetching Phase = "Fetching"

	// PhasePostProcessing means fetched data is being remuxed or transcoded
	PhasePostProcessing Phase = "PostProcessing"

	// PhaseDone means the job finished and the output file is in place
	PhaseDone Phase = "Done"

	// PhaseFailed means the job ended without producing the output file
	PhaseFailed Phase = "Failed"
)

// String returns the string representation of Phase
func (p Phase) String() string {
	return string(p)
}

// IsTerminal returns true if no further events are expected for the job
func (p Phase) IsTerminal() bool {
	return p == PhaseDone || p == PhaseFailed
}
