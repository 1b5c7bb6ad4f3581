package workflow

import "time"

// Report is a snapshot of a run for display and persistence.
type Report struct {
	RunID    string
	Preset   string
	Status   Status
	Elapsed  time.Duration
	Steps    []StepResult
	Outputs  []OutputArtifact
	Degraded []string
	Err      error
}

// BuildReport summarizes the run, listing any non-critical steps that failed.
func BuildReport(run *RunContext) Report {
	report := Report{
		RunID:   run.RunID,
		Preset:  run.Options.Preset,
		Status:  run.Status(),
		Elapsed: run.Elapsed(),
		Steps:   run.Results(),
		Outputs: run.Outputs(),
		Err:     run.Err(),
	}
	if report.Preset == "" {
		report.Preset = DefaultPreset
	}
	for _, step := range report.Steps {
		if !step.Success && !step.Critical {
			report.Degraded = append(report.Degraded, step.StepID)
		}
	}
	return report
}
