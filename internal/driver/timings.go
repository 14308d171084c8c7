package driver

import (
	"encoding/json"
	"fmt"

	"github.com/l4u/elixir/internal/buildpipeline"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/source"
)

type timingPayload struct {
	Path    string        `json:"path,omitempty"`
	TotalMS float64       `json:"total_ms"`
	Stages  []stageTiming `json:"stages"`
}

type stageTiming struct {
	Stage string  `json:"stage"`
	MS    float64 `json:"ms"`
}

var timingStages = []buildpipeline.Stage{
	buildpipeline.StageParse,
	buildpipeline.StageLower,
	buildpipeline.StageCache,
}

// AppendTimingDiagnostic files the run's stage timings into the bag as
// an informational diagnostic, with the machine-readable breakdown in
// a note. Renderers that want timings pick it up like any other entry.
func AppendTimingDiagnostic(bag *diag.Bag, timings *buildpipeline.Timings, path string) {
	if bag == nil || timings == nil {
		return
	}

	payload := timingPayload{Path: path}
	for _, stage := range timingStages {
		if !timings.Has(stage) {
			continue
		}
		ms := float64(timings.Duration(stage).Microseconds()) / 1000
		payload.Stages = append(payload.Stages, stageTiming{Stage: string(stage), MS: ms})
		payload.TotalMS += ms
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	msg := fmt.Sprintf("timings: total %.2f ms", payload.TotalMS)
	if path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, path)
	}

	bag.Add(diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ProjInfo,
		Message:  msg,
		Primary:  source.Span{},
		Notes: []diag.Note{
			{Span: source.Span{}, Msg: string(data)},
		},
	})
}
