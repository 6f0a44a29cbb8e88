package input

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptyLine       = errors.New("input: empty command line")
	ErrUnknownCommand  = errors.New("input: unknown command")
	ErrMissingArgument = errors.New("input: missing argument")
	ErrInvalidArgument = errors.New("input: invalid argument")
)

type argKind uint8

const (
	argString argKind = iota // one token
	argInt                   // one integer token
	argRest                  // the remainder of the line
)

type param struct {
	name     string
	kind     argKind
	optional bool
}

type verb struct {
	action string
	params []param
	usage  string
}

// textParam stores its value in ActionArgs.Text rather than Extra.
const textParam = "text"

var verbs = map[string]verb{
	"new":     {action: "file.new", usage: "new"},
	"open":    {action: "file.open", params: []param{{name: "path", kind: argRest}}, usage: "open <path>"},
	"save":    {action: "file.save", usage: "save"},
	"saveas":  {action: "file.saveAs", params: []param{{name: "path", kind: argRest}}, usage: "saveas <path>"},
	"close":   {action: "file.close", params: []param{{name: "index", kind: argInt, optional: true}}, usage: "close [tab]"},
	"tab":     {action: "tab.select", params: []param{{name: "index", kind: argInt}}, usage: "tab <n>"},
	"undo":    {action: "edit.undo", usage: "undo"},
	"redo":    {action: "edit.redo", usage: "redo"},
	"cut":     {action: "edit.cut", usage: "cut"},
	"copy":    {action: "edit.copy", usage: "copy"},
	"paste":   {action: "edit.paste", usage: "paste"},
	"insert":  {action: "edit.insert", params: []param{{name: textParam, kind: argRest}}, usage: "insert <text>"},
	"delete":  {action: "edit.delete", params: []param{{name: "start", kind: argInt}, {name: "end", kind: argInt}}, usage: "delete <start> <end>"},
	"select":  {action: "edit.select", params: []param{{name: "start", kind: argInt}, {name: "end", kind: argInt}}, usage: "select <start> <end>"},
	"goto":    {action: "edit.moveCursor", params: []param{{name: "line", kind: argInt}, {name: "column", kind: argInt, optional: true}}, usage: "goto <line> [column]"},
	"find":    {action: "search.find", params: []param{{name: textParam, kind: argRest}}, usage: "find <text>"},
	"replace": {action: "search.replace", params: []param{{name: "needle", kind: argString}, {name: "replacement", kind: argString}}, usage: "replace <needle> <replacement>"},
	"run":     {action: "run.execute", usage: "run"},
	"numbers": {action: "view.toggleLineNumbers", usage: "numbers"},
	"wrap":    {action: "view.toggleWordWrap", usage: "wrap"},
	"font":    {action: "view.setFontSize", params: []param{{name: "size", kind: argInt}}, usage: "font <size>"},
	"theme":   {action: "view.setTheme", params: []param{{name: "name", kind: argString}}, usage: "theme <name>"},
	"scroll":  {action: "view.scroll", params: []param{{name: "rows", kind: argInt}}, usage: "scroll <rows>"},
}

// Parse converts a command line into an action.
func Parse(line string) (Action, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Action{}, ErrEmptyLine
	}

	name, rest := splitWord(line)
	v, ok := verbs[strings.ToLower(name)]
	if !ok {
		return Action{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	action := Action{Name: v.action, Source: SourceShell}
	for _, p := range v.params {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			if p.optional {
				break
			}
			return Action{}, fmt.Errorf("%w: %s (usage: %s)", ErrMissingArgument, p.name, v.usage)
		}

		var (
			raw string
			err error
		)
		if p.kind == argRest {
			raw, err = restValue(rest)
			rest = ""
		} else {
			raw, rest, err = nextToken(rest)
		}
		if err != nil {
			return Action{}, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, p.name, err)
		}

		if p.name == textParam {
			action.Args.Text = raw
			continue
		}

		var value interface{} = raw
		if p.kind == argInt {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return Action{}, fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidArgument, p.name, raw)
			}
			value = n
		}
		action = action.With(p.name, value)
	}

	if strings.TrimSpace(rest) != "" {
		return Action{}, fmt.Errorf("%w: unexpected %q (usage: %s)", ErrInvalidArgument, strings.TrimSpace(rest), v.usage)
	}
	return action, nil
}

// Commands returns the usage line of every verb, sorted.
func Commands() []string {
	out := make([]string, 0, len(verbs))
	for _, v := range verbs {
		out = append(out, v.usage)
	}
	sort.Strings(out)
	return out
}

func splitWord(s string) (word, rest string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

// nextToken reads one bare or quoted token.
func nextToken(s string) (token, rest string, err error) {
	if strings.HasPrefix(s, `"`) {
		quoted, err := strconv.QuotedPrefix(s)
		if err != nil {
			return "", "", err
		}
		token, err = strconv.Unquote(quoted)
		return token, s[len(quoted):], err
	}
	token, rest = splitWord(s)
	return token, rest, nil
}

// restValue returns the remainder of the line, unquoting a single literal.
func restValue(s string) (string, error) {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if !strings.HasPrefix(s, `"`) {
		return s, nil
	}
	quoted, err := strconv.QuotedPrefix(s)
	if err != nil {
		return "", err
	}
	if len(quoted) != len(s) {
		// Text that merely starts with a quote is taken literally.
		return s, nil
	}
	return strconv.Unquote(quoted)
}
