package config

import (
	"fmt"
	"time"
)

// Limits enforced by Validate.
const (
	MinFontSize = 6
	MaxFontSize = 72
)

// Settings is the complete runpad configuration.
type Settings struct {
	Editor  EditorSettings  `toml:"editor" yaml:"editor"`
	View    ViewSettings    `toml:"view" yaml:"view"`
	Run     RunSettings     `toml:"run" yaml:"run"`
	Logging LoggingSettings `toml:"logging" yaml:"logging"`
}

// EditorSettings configures documents and layout.
type EditorSettings struct {
	TabWidth     int  `toml:"tabWidth" yaml:"tabWidth"`
	WordWrap     bool `toml:"wordWrap" yaml:"wordWrap"`
	WrapWidth    int  `toml:"wrapWidth" yaml:"wrapWidth"` // columns; 0 wraps at the viewport width
	HistoryLimit int  `toml:"historyLimit" yaml:"historyLimit"`
}

// ViewSettings configures presentation.
type ViewSettings struct {
	ShowLineNumbers bool   `toml:"showLineNumbers" yaml:"showLineNumbers"`
	FontSize        int    `toml:"fontSize" yaml:"fontSize"`
	Theme           string `toml:"theme" yaml:"theme"`
}

// RunSettings configures the interpreter used by run.execute.
type RunSettings struct {
	Interpreter string   `toml:"interpreter" yaml:"interpreter"`
	Args        []string `toml:"args" yaml:"args"`
	Timeout     Duration `toml:"timeout" yaml:"timeout"` // 0 waits indefinitely
}

// LoggingSettings configures the application logger.
type LoggingSettings struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Editor: EditorSettings{
			TabWidth:     4,
			WordWrap:     true,
			WrapWidth:    80,
			HistoryLimit: 1000,
		},
		View: ViewSettings{
			ShowLineNumbers: true,
			FontSize:        12,
			Theme:           "light",
		},
		Run: RunSettings{
			Interpreter: "python3",
			Args:        []string{"-c"},
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}

// RowHeight returns the pixel height of one visual row at the font size.
func (v ViewSettings) RowHeight() int {
	return (v.FontSize*4 + 2) / 3
}

// Validate checks every field and reports all problems at once.
func (s Settings) Validate() error {
	var ve ValidationError

	if s.Editor.TabWidth < 1 {
		ve.add("editor.tabWidth", "must be at least 1, got %d", s.Editor.TabWidth)
	}
	if s.Editor.WrapWidth < 0 {
		ve.add("editor.wrapWidth", "must not be negative, got %d", s.Editor.WrapWidth)
	}
	if s.Editor.HistoryLimit < 0 {
		ve.add("editor.historyLimit", "must not be negative, got %d", s.Editor.HistoryLimit)
	}
	if s.View.FontSize < MinFontSize || s.View.FontSize > MaxFontSize {
		ve.add("view.fontSize", "must be between %d and %d, got %d", MinFontSize, MaxFontSize, s.View.FontSize)
	}
	if s.Run.Interpreter == "" {
		ve.add("run.interpreter", "must not be empty")
	}
	if s.Run.Timeout < 0 {
		ve.add("run.timeout", "must not be negative, got %s", s.Run.Timeout)
	}
	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		ve.add("logging.level", "must be debug, info, warn or error, got %q", s.Logging.Level)
	}

	if len(ve.Problems) > 0 {
		return &ve
	}
	return nil
}

// ValidateFontSize reports whether size is an acceptable font size.
func ValidateFontSize(size int) error {
	if size < MinFontSize || size > MaxFontSize {
		return fmt.Errorf("font size %d outside %d..%d: %w", size, MinFontSize, MaxFontSize, ErrInvalidSetting)
	}
	return nil
}

// Duration is a time.Duration written as a string such as "30s".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}
