package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	// ErrMalformed covers input that is neither a known command name nor a
	// well-formed JSON request.
	ErrMalformed = errors.New("invalid JSON request")
	// ErrUnknownFunction is returned for JSON requests naming an
	// unregistered function.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrInvalidParameters means the parameters did not match the function's
	// schema.
	ErrInvalidParameters = errors.New("invalid parameters")
)

// Action is a bare command name sent by the front end.
type Action int

const (
	ActionNone Action = iota
	ActionPlay
	ActionSetup
	ActionExit
	ActionStartUpdate
	ActionCancelUpdate
	ActionResetCache
	ActionManualPatch
)

var actionNames = map[Action]string{
	ActionPlay:         "play",
	ActionSetup:        "setup",
	ActionExit:         "exit",
	ActionStartUpdate:  "start_update",
	ActionCancelUpdate: "cancel_update",
	ActionResetCache:   "reset_cache",
	ActionManualPatch:  "manual_patch",
}

func (a Action) String() string {
	return actionNames[a]
}

// Function is a JSON-invoked handler name.
type Function int

const (
	FunctionNone Function = iota
	FunctionLogin
	FunctionOpenURL
)

var functionNames = map[Function]string{
	FunctionLogin:   "login",
	FunctionOpenURL: "open_url",
}

func (f Function) String() string {
	return functionNames[f]
}

// Request is a parsed UI event. Exactly one of Action or Function is set.
type Request struct {
	ID         string
	Action     Action
	Function   Function
	Parameters json.RawMessage
}

// ParseAction matches name exactly against the command table.
func ParseAction(name string) (Action, bool) {
	for action, candidate := range actionNames {
		if candidate == name {
			return action, true
		}
	}
	return ActionNone, false
}

// ParseFunction matches name exactly against the function table.
func ParseFunction(name string) (Function, bool) {
	for fn, candidate := range functionNames {
		if candidate == name {
			return fn, true
		}
	}
	return FunctionNone, false
}

// Parse turns a raw UI event into a Request. Bare command names are matched
// first; anything else must be a {"function", "parameters"} JSON object.
func Parse(raw string) (Request, error) {
	req := Request{ID: uuid.NewString()}
	if action, ok := ParseAction(raw); ok {
		req.Action = action
		return req, nil
	}

	var envelope struct {
		Function   *string         `json:"function"`
		Parameters json.RawMessage `json:"parameters"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return req, fmt.Errorf("%w: %v%s", ErrMalformed, err, suggest(raw, actionNames))
	}
	// An object without a function is reported like any other malformed
	// request rather than ignored.
	if envelope.Function == nil {
		return req, fmt.Errorf("%w: missing function", ErrMalformed)
	}
	fn, ok := ParseFunction(*envelope.Function)
	if !ok {
		return req, fmt.Errorf("%w '%s'%s", ErrUnknownFunction, *envelope.Function, suggest(*envelope.Function, functionNames))
	}
	req.Function = fn
	req.Parameters = envelope.Parameters
	return req, nil
}

// Encode builds the JSON request invoking fn with params.
func Encode(fn Function, params interface{}) (string, error) {
	name := fn.String()
	if name == "" {
		return "", fmt.Errorf("%w: %d", ErrUnknownFunction, fn)
	}
	data, err := json.Marshal(struct {
		Function   string      `json:"function"`
		Parameters interface{} `json:"parameters"`
	}{Function: name, Parameters: params})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	return string(data), nil
}

// suggest returns a " (did you mean ...?)" hint for near misses.
func suggest[K comparable](input string, table map[K]string) string {
	input = strings.TrimSpace(input)
	if input == "" || len(input) > 32 {
		return ""
	}
	names := make([]string, 0, len(table))
	for _, name := range table {
		names = append(names, name)
	}
	ranks := fuzzy.RankFindFold(input, names)
	if len(ranks) == 0 {
		ranks = fuzzy.RankFindFold(strings.ReplaceAll(input, " ", "_"), names)
	}
	if len(ranks) == 0 {
		return closestByPrefix(input, names)
	}
	sort.Sort(ranks)
	return fmt.Sprintf(" (did you mean '%s'?)", ranks[0].Target)
}

func closestByPrefix(input string, names []string) string {
	lower := strings.ToLower(input)
	sort.Strings(names)
	for _, name := range names {
		if len(lower) >= 2 && strings.HasPrefix(name, lower[:2]) {
			return fmt.Sprintf(" (did you mean '%s'?)", name)
		}
	}
	return ""
}
