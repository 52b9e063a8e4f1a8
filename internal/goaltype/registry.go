package goaltype

import (
	"fmt"
	"sort"
	"sync"
)

// The registry is filled at package init and append-only afterwards. An
// identifier that is not registered is not an error: callers skip
// type-dependent validation and computation for it.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Definition)
)

// Register adds a definition under its identifier.
func Register(d Definition) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := d.Name()
	if _, exists := registry[name]; exists {
		return fmt.Errorf("goal type already registered: %s", name)
	}
	registry[name] = d
	return nil
}

// MustRegister is for init-time registration of built-in kinds.
func MustRegister(d Definition) {
	if err := Register(d); err != nil {
		panic(err)
	}
}

// Lookup resolves an identifier. The second return is false for unknown
// identifiers; that is a valid state, not a failure.
func Lookup(identifier string) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[identifier]
	return d, ok
}

// All returns every registered definition, sorted by identifier.
func All() []Definition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	defs := make([]Definition, 0, len(registry))
	for _, d := range registry {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name() < defs[j].Name() })
	return defs
}

// Info is the serializable description of a goal kind, used by the API to
// drive dynamic form rendering.
type Info struct {
	Identifier   string       `json:"identifier"`
	Description  string       `json:"description"`
	ProgressKind ProgressKind `json:"progress_kind"`
	GoalSchema   Schema       `json:"goal_schema"`
	PlanSchema   Schema       `json:"plan_schema"`
	LogSchema    Schema       `json:"log_schema"`
	HelpText     string       `json:"help_text"`
}

// Describe flattens a definition into its Info form.
func Describe(d Definition) Info {
	return Info{
		Identifier:   d.Name(),
		Description:  d.Description(),
		ProgressKind: d.ProgressKind(),
		GoalSchema:   d.GoalSchema(),
		PlanSchema:   d.PlanSchema(),
		LogSchema:    d.LogSchema(),
		HelpText:     d.HelpText(),
	}
}

// DescribeAll lists every registered kind, sorted by identifier.
func DescribeAll() []Info {
	defs := All()
	infos := make([]Info, 0, len(defs))
	for _, d := range defs {
		infos = append(infos, Describe(d))
	}
	return infos
}
