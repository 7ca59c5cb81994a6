package driver

import (
	"encoding/json"
	"fmt"

	"confscan/internal/diag"
	"confscan/internal/observ"
	"confscan/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic прикрепляет замеры к Bag информационной записью:
// человекочитаемое сообщение плюс JSON в заметке для машинного чтения.
// anchor — нулевой по длине span файла, к которому относятся замеры.
func appendTimingDiagnostic(bag *diag.Bag, anchor source.Span, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("timings (%s): %s, total %.2f ms", payload.Kind, payload.Path, payload.TotalMS)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.New(diag.SevInfo, diag.ObsTimings, anchor, msg).
		WithNote(anchor, string(data))

	if bag.Add(entry) {
		return
	}
	// Переполненный Bag не должен терять замеры — они запрошены явно.
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
