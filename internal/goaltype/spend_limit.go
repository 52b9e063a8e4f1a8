package goaltype

func init() {
	MustRegister(SpendLimit{})
}

// SpendLimit is a budget goal: occurrences log amounts spent and progress is
// how much of the limit has been used up.
type SpendLimit struct{}

func (SpendLimit) Name() string               { return "spend_limit" }
func (SpendLimit) Description() string        { return "Spend at most x over the period" }
func (SpendLimit) ProgressKind() ProgressKind { return ProgressNumeric }

func (SpendLimit) GoalSchema() Schema {
	return Schema{
		"limit":    {Type: FieldNumber, Label: "Spending limit"},
		"category": {Type: FieldText, Label: "Category", Optional: true},
	}
}

func (SpendLimit) PlanSchema() Schema {
	return Schema{
		"amount": {Type: FieldNumber, Label: "Planned amount", Optional: true},
	}
}

func (SpendLimit) LogSchema() Schema {
	return Schema{
		"spent": {Type: FieldNumber, Label: "Amount spent"},
	}
}

func (SpendLimit) HelpText() string { return "Log each amount spent against the limit" }

func (SpendLimit) Progress(logData map[string]any) Value {
	return Value{Kind: ProgressNumeric, Amount: numberField(logData, "spent")}
}

// Aggregate is fraction-of-limit, clamped at 100. A limit of zero or less
// yields 0 rather than dividing by it.
func (d SpendLimit) Aggregate(goalData map[string]any, logs []map[string]any) float64 {
	limit := numberField(goalData, "limit")
	if limit <= 0 || len(logs) == 0 {
		return 0
	}
	var total float64
	for _, l := range logs {
		total += d.Progress(l).Amount
	}
	pct := total / limit * 100
	if pct > 100 {
		return 100
	}
	return pct
}
