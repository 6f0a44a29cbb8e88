package input

// ActionSource records who issued an action.
type ActionSource uint8

const (
	SourceShell  ActionSource = iota // typed at the command shell
	SourceConfig                     // produced by a settings change
	SourceAPI                        // built in code with NewAction
)

var sourceNames = [...]string{"shell", "config", "api"}

func (s ActionSource) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return "unknown"
}

// ActionArgs carries an action's parameters. Text is the free-form operand
// of insert and find; everything else is keyed in Extra.
type ActionArgs struct {
	Text  string
	Extra map[string]interface{}
}

// Get looks key up in Extra.
func (a ActionArgs) Get(key string) (interface{}, bool) {
	v, ok := a.Extra[key]
	return v, ok
}

func (a ActionArgs) Has(key string) bool {
	_, ok := a.Extra[key]
	return ok
}

// GetString, GetInt and GetBool return the zero value for a missing key or
// a value of another type. GetInt accepts int, int64 and float64.
func (a ActionArgs) GetString(key string) string {
	s, _ := a.Extra[key].(string)
	return s
}

func (a ActionArgs) GetInt(key string) int {
	switch n := a.Extra[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func (a ActionArgs) GetBool(key string) bool {
	b, _ := a.Extra[key].(bool)
	return b
}

// Action is one dispatchable command, named "namespace.verb".
type Action struct {
	Name   string
	Args   ActionArgs
	Source ActionSource
}

// NewAction returns an argument-less action from SourceAPI.
func NewAction(name string) Action {
	return Action{Name: name, Source: SourceAPI}
}

// With sets an Extra argument on a copy of a.
func (a Action) With(key string, value interface{}) Action {
	extra := make(map[string]interface{}, len(a.Args.Extra)+1)
	for k, v := range a.Args.Extra {
		extra[k] = v
	}
	extra[key] = value
	a.Args.Extra = extra
	return a
}

// WithText sets Args.Text on a copy of a.
func (a Action) WithText(text string) Action {
	a.Args.Text = text
	return a
}
