package runner

// StepStatus represents the outcome of a step execution.
type StepStatus string

const (
	StatusPass StepStatus = "pass"
	StatusFail StepStatus = "fail"
	StatusSkip StepStatus = "skip"
)

// StepResult represents the result of a single step execution.
type StepResult struct {
	Step   string     `json:"step"`
	Status StepStatus `json:"status"`
	Note   string     `json:"note,omitempty"`
}

// Summary represents the outcome of a whole sequence.
type Summary struct {
	Status  string       `json:"status"` // "pass" or "fail"
	Results []StepResult `json:"results"`
	Failed  string       `json:"failed,omitempty"` // ID of the step that stopped the run
}
