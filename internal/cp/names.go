package cp

import "strings"

// All report and objective names for an instance are derived here so the
// objective key, indicator column, proforma column and detail artifact agree.

const (
	namePrefix     = "CP"
	detailArtifact = "cp_event_detail"
)

// Name is the value-stream name, used as the objective term key.
func (in *Instance) Name() string {
	if in.id == "" {
		return namePrefix
	}
	return namePrefix + "-" + in.id
}

// IndicatorColumn is the per-timestep report column for the indicator.
func (in *Instance) IndicatorColumn() string {
	return in.Name() + " Indicator"
}

// ProformaColumn is the yearly avoided-charge column in the proforma.
func (in *Instance) ProformaColumn() string {
	return "Avoided CP Charges (" + strings.ToLower(in.label) + ")"
}

// DetailArtifact is the drill-down table name, without extension.
func (in *Instance) DetailArtifact() string {
	if in.id == "" {
		return detailArtifact
	}
	return detailArtifact + "_" + in.id
}

// DetailArtifactPrefix matches every drill-down artifact name.
func DetailArtifactPrefix() string { return detailArtifact }
