package goaltype

func init() {
	MustRegister(StudyHours{})
}

// StudyHours is a "study N hours over the period" goal: occurrences log
// hours studied and progress is the fraction of the target reached.
type StudyHours struct{}

func (StudyHours) Name() string               { return "study_hours" }
func (StudyHours) Description() string        { return "Study for x hours for the period" }
func (StudyHours) ProgressKind() ProgressKind { return ProgressNumeric }

func (StudyHours) GoalSchema() Schema {
	return Schema{
		"hours": {Type: FieldNumber, Label: "Target hours", Help: "Total hours to study over the period"},
	}
}

func (StudyHours) PlanSchema() Schema {
	return Schema{
		"hours": {Type: FieldNumber, Label: "Planned hours", Optional: true},
	}
}

func (StudyHours) LogSchema() Schema {
	return Schema{
		"hours": {Type: FieldNumber, Label: "Hours studied"},
	}
}

func (StudyHours) HelpText() string { return "Mark how many hours studied" }

func (StudyHours) Progress(logData map[string]any) Value {
	return Value{Kind: ProgressNumeric, Amount: numberField(logData, "hours")}
}

// Aggregate is fraction-of-target, clamped at 100. A target of zero or less
// yields 0 rather than dividing by it.
func (d StudyHours) Aggregate(goalData map[string]any, logs []map[string]any) float64 {
	target := numberField(goalData, "hours")
	if target <= 0 || len(logs) == 0 {
		return 0
	}
	var total float64
	for _, l := range logs {
		total += d.Progress(l).Amount
	}
	pct := total / target * 100
	if pct > 100 {
		return 100
	}
	return pct
}
