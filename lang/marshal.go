package lang

import "encoding/json"

// Snapshot is the serializable form of a [State].
type Snapshot struct {
	Variables map[string]any          `json:"variables" yaml:"variables"`
	Functions map[string]FunctionInfo `json:"functions" yaml:"functions"`
	Returned  bool                    `json:"returned"  yaml:"returned"`
	Result    any                     `json:"result,omitempty" yaml:"result,omitempty"`
}

// FunctionInfo describes one function table entry.
type FunctionInfo struct {
	Params []string `json:"params,omitempty" yaml:"params,omitempty"`
	Native bool     `json:"native"           yaml:"native"`
}

// Snapshot converts the state to plain Go values. Variables map to int32,
// string, bool, or nil.
func (st *State) Snapshot() Snapshot {
	snap := Snapshot{
		Variables: make(map[string]any, len(st.Env)),
		Functions: make(map[string]FunctionInfo, len(st.Functions)),
		Returned:  st.Result.Returned,
	}

	for name, v := range st.Env.All() {
		snap.Variables[name] = v.Interface()
	}

	for name, decl := range st.Functions.All() {
		snap.Functions[name] = describe(decl)
	}

	if st.Result.Returned {
		snap.Result = st.Result.Value.Interface()
	}

	return snap
}

// MarshalJSON implements json.Marshaler for State.
func (st *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(st.Snapshot())
}

func describe(decl Declaration) FunctionInfo {
	switch d := decl.(type) {
	case *Function:
		return FunctionInfo{Params: d.Params}
	default:
		return FunctionInfo{Native: true}
	}
}
