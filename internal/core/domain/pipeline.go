package domain

import "time"

// Stage identifies one state of the five-stage pipeline state machine.
type Stage string

// Pipeline stages, in transition order. No branching, no loops.
const (
	StageCultural        Stage = "cultural_intelligence"
	StageUX              Stage = "ux_adaptation"
	StageCopy            Stage = "copy_framing"
	StageAudit           Stage = "compliance_audit"
	StageExperimentation Stage = "experimentation"
	StageDone            Stage = "done"
)

// PipelineState is the accumulating object threaded through stages.
// Each stage may only append its own field(s); earlier fields are
// immutable once written.
type PipelineState struct {
	RunID   string       `json:"run_id"`
	Request AdaptRequest `json:"request"`

	// Written by the Cultural Intelligence stage.
	Profile *CulturalBehaviorProfile `json:"profile,omitempty"`
	Fired   []FiredAdaptation        `json:"fired_adaptations,omitempty"`

	// Written by the UX Adaptation stage.
	UX *UXPayload `json:"ux,omitempty"`

	// Written by the Copy & Framing stage.
	Copy *CopyPayload `json:"copy,omitempty"`

	// Written by the Compliance Audit stage.
	Audit *AuditResult `json:"audit,omitempty"`

	// Written by the Experimentation stage.
	Lift *LiftPrediction `json:"lift,omitempty"`
}

// VariantSpec is the terminal, immutable record of a completed run.
// Once persisted it is owned by the variant store; the pipeline only
// constructs it, never mutates a stored copy.
type VariantSpec struct {
	ID        string        `json:"variant_id"`
	State     PipelineState `json:"state"`
	CreatedAt time.Time     `json:"created_at"`
}
