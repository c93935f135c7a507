package app

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/tillberg/salesagg/sales"
)

// Report is the JSON form of a run.
type Report struct {
	RunID   string        `json:"run_id"`
	Input   string        `json:"input"`
	Records int           `json:"records"`
	Summary sales.Summary `json:"summary"`
}

func NewReport(state *State) Report {
	return Report{
		RunID:   state.RunID.String(),
		Input:   state.Input,
		Records: len(state.Records),
		Summary: state.Summary,
	}
}

func WriteJSON(w io.Writer, state *State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(state))
}
