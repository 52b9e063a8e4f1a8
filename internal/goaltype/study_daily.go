package goaltype

func init() {
	MustRegister(StudyDaily{})
}

// StudyDaily is a "study every day" goal: each occurrence is a yes/no and
// the goal's progress is the share of days marked done.
type StudyDaily struct{}

func (StudyDaily) Name() string               { return "study_daily" }
func (StudyDaily) Description() string        { return "Study every day for the period" }
func (StudyDaily) ProgressKind() ProgressKind { return ProgressBoolean }

func (StudyDaily) GoalSchema() Schema { return Schema{} }
func (StudyDaily) PlanSchema() Schema { return Schema{} }

func (StudyDaily) LogSchema() Schema {
	return Schema{
		"studied": {Type: FieldBoolean, Label: "Studied"},
	}
}

func (StudyDaily) HelpText() string { return "Mark as done each day you study" }

func (StudyDaily) Progress(logData map[string]any) Value {
	return Value{Kind: ProgressBoolean, Done: boolField(logData, "studied")}
}

// Aggregate is the ratio of done days to logged days. It is a plain ratio,
// already at most 100, so no clamp applies.
func (d StudyDaily) Aggregate(goalData map[string]any, logs []map[string]any) float64 {
	if len(logs) == 0 {
		return 0
	}
	done := 0
	for _, l := range logs {
		if d.Progress(l).Done {
			done++
		}
	}
	return float64(done) / float64(len(logs)) * 100
}
