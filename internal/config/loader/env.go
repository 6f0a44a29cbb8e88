package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// EnvLoader turns prefixed environment variables into a nested map.
// RUNPAD_EDITOR_TAB_WIDTH becomes editor.tabWidth: the first word after the
// prefix is the section and the rest is joined in camel case.
type EnvLoader struct {
	prefix   string
	explicit map[string]string
	lookup   func() []string
}

// NewEnvLoader reads variables starting with prefix, which should end in
// an underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, explicit: map[string]string{}, lookup: os.Environ}
}

// AddMapping routes envVar to configPath instead of the derived path.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.explicit[envVar] = configPath
}

// Load never fails. A variable set to the empty string still counts.
func (l *EnvLoader) Load() (map[string]any, error) {
	out := map[string]any{}
	for _, kv := range l.lookup() {
		name, value, _ := strings.Cut(kv, "=")
		rest, ok := strings.CutPrefix(name, l.prefix)
		if !ok {
			continue
		}
		path, ok := l.explicit[name]
		if !ok {
			path = keyPath(rest)
		}
		if path != "" {
			setPath(out, strings.Split(path, "."), parseValue(value))
		}
	}
	return out, nil
}

// keyPath maps EDITOR_TAB_WIDTH to editor.tabWidth. A name with no
// underscore has no section and maps to "".
func keyPath(name string) string {
	words := strings.Split(strings.ToLower(name), "_")
	if len(words) < 2 || words[0] == "" {
		return ""
	}
	var key strings.Builder
	key.WriteString(words[1])
	for _, w := range words[2:] {
		if w != "" {
			key.WriteString(strings.ToUpper(w[:1]) + w[1:])
		}
	}
	return words[0] + "." + key.String()
}

// parseValue reads booleans (true/yes/on, false/no/off), integers and JSON
// arrays. Everything else stays a string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	var list []any
	if strings.HasPrefix(s, "[") && json.Unmarshal([]byte(s), &list) == nil {
		return list
	}
	return s
}

func setPath(m map[string]any, keys []string, v any) {
	for _, k := range keys[:len(keys)-1] {
		child, ok := m[k].(map[string]any)
		if !ok {
			child = map[string]any{}
			m[k] = child
		}
		m = child
	}
	m[keys[len(keys)-1]] = v
}
