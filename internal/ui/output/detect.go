package output

import (
	"os"

	"golang.org/x/term"
)

// LogFormat selects how log records are written.
type LogFormat int

const (
	// FormatPretty writes colored, human readable records.
	FormatPretty LogFormat = iota
	// FormatJSON writes one JSON object per record.
	FormatJSON
)

// DetectLogFormat returns the recommended log format based on the environment.
// Records go to JSON when stderr is not a TTY or a CI environment variable is set.
func DetectLogFormat() LogFormat {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return FormatJSON
	}
	return FormatPretty
}

// ResolveLogFormat applies the --log-format flag to auto-detection.
// flag should be one of "auto", "pretty", "json" or empty.
func ResolveLogFormat(detect func() LogFormat, flag string) LogFormat {
	switch flag {
	case "pretty":
		return FormatPretty
	case "json":
		return FormatJSON
	case "auto":
		return detect()
	default:
		return FormatPretty
	}
}
