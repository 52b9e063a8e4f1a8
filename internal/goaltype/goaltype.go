// Package goaltype defines the per-kind behavior of goals: what data a goal,
// a scheduled occurrence and a logged occurrence must carry, how a single
// log maps to a progress value, and how logs aggregate into a 0-100
// percentage. New kinds plug in by implementing Definition and registering
// themselves; nothing else in the system changes.
package goaltype

import "strconv"

// ProgressKind declares the shape of a single occurrence's progress value.
type ProgressKind string

const (
	ProgressBoolean    ProgressKind = "boolean"    // done or not done
	ProgressQuantity   ProgressKind = "quantity"   // positive count (topics, pages, etc)
	ProgressNumeric    ProgressKind = "numeric"    // float amount (2.5 hours, etc)
	ProgressPercentage ProgressKind = "percentage" // 0 to 100
)

// Value is one occurrence's progress in its kind's declared shape.
type Value struct {
	Kind   ProgressKind
	Done   bool    // set for boolean kinds
	Amount float64 // set for quantity/numeric/percentage kinds
}

// Float flattens the value for arithmetic: booleans count as 0 or 1.
func (v Value) Float() float64 {
	if v.Kind == ProgressBoolean {
		if v.Done {
			return 1
		}
		return 0
	}
	return v.Amount
}

// MarshalJSON renders the value in its natural JSON shape (bool or number),
// matching what form-driven clients expect.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == ProgressBoolean {
		if v.Done {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	}
	return []byte(formatFloat(v.Amount)), nil
}

// Definition is the contract every goal kind implements. Schema getters and
// HelpText are constant per kind; Progress and Aggregate are pure.
type Definition interface {
	Name() string
	Description() string
	ProgressKind() ProgressKind

	// GoalSchema describes the fields required in a goal's setup data.
	GoalSchema() Schema
	// PlanSchema describes the fields of a schedule entry's plan data. May be empty.
	PlanSchema() Schema
	// LogSchema describes the fields required in a logged occurrence's data.
	LogSchema() Schema
	// HelpText is a UI hint shown when creating a goal of this kind.
	HelpText() string

	// Progress maps one occurrence's log data to a progress value. Missing
	// keys substitute defaults (absent bool = false, absent number = 0);
	// an empty blob is never an error.
	Progress(logData map[string]any) Value

	// Aggregate folds the log data of all occurrences into a percentage.
	// Returns 0 for no occurrences and 0 for a configured target <= 0;
	// never divides by zero, never returns NaN or Inf.
	Aggregate(goalData map[string]any, logs []map[string]any) float64
}

// MeanAggregate averages Progress over all logs. It is the fallback for
// kinds that only define a per-occurrence progress function.
func MeanAggregate(d Definition, logs []map[string]any) float64 {
	if len(logs) == 0 {
		return 0
	}
	var sum float64
	for _, l := range logs {
		sum += d.Progress(l).Float()
	}
	return sum / float64(len(logs))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// boolField reads a boolean from a blob, defaulting to false.
func boolField(data map[string]any, key string) bool {
	v, ok := data[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// numberField reads a number from a blob, defaulting to 0. JSON decoding
// produces float64, but ints show up from hand-built maps in tests.
func numberField(data map[string]any, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	default:
		return 0
	}
}
