package generate

import (
	"fmt"

	"reportforge/template"
)

// Job is one batch entry: a template, a dataset and where the output
// goes.
type Job struct {
	TemplatePath string            `json:"template"`
	DataPath     string            `json:"data"`
	Sheet        string            `json:"sheet,omitempty"`
	OutputPath   string            `json:"output,omitempty"`
	Variables    map[string]string `json:"variables,omitempty"`
}

// Result is the outcome of one job.
type Result struct {
	Job      Job       `json:"job"`
	Output   string    `json:"output,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// BatchSummary aggregates a batch run.
type BatchSummary struct {
	Total       int      `json:"total_jobs"`
	Succeeded   int      `json:"successful"`
	Failed      int      `json:"failed"`
	SuccessRate string   `json:"success_rate"`
	Results     []Result `json:"results"`
}

// Runner executes batches of generation jobs sequentially, isolating
// each job so one failure never stops the rest.
type Runner struct {
	Generator *Generator
	Templates *template.Manager
}

// Run executes every job in order and summarizes the outcome.
func (r *Runner) Run(jobs []Job) BatchSummary {
	summary := BatchSummary{Total: len(jobs)}

	for _, job := range jobs {
		result := Result{Job: job}

		tpl, err := r.Templates.Load(job.TemplatePath)
		if err != nil {
			result.Error = err.Error()
			summary.Failed++
			summary.Results = append(summary.Results, result)
			continue
		}

		output, warnings, err := r.Generator.Generate(tpl, job.DataPath, Options{
			Sheet:      job.Sheet,
			Variables:  job.Variables,
			OutputPath: job.OutputPath,
		})
		result.Warnings = warnings
		if err != nil {
			result.Error = err.Error()
			summary.Failed++
		} else {
			result.Output = output
			summary.Succeeded++
		}
		summary.Results = append(summary.Results, result)
	}

	if summary.Total > 0 {
		summary.SuccessRate = fmt.Sprintf("%.1f%%", float64(summary.Succeeded)/float64(summary.Total)*100)
	} else {
		summary.SuccessRate = "0.0%"
	}
	return summary
}
