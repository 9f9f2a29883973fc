package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/vfswatch/internal/ui/output"
)

func TestColorProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())

	t.Setenv("NO_COLOR", "")
	p := output.ColorProfile()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii, "should return a valid profile")
}

func TestDisableColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	output.DisableColor(true)
	t.Cleanup(func() { output.DisableColor(false) })

	assert.Equal(t, termenv.Ascii, output.ColorProfile())
}

func TestNew(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	out := output.New(&buf)

	_, _ = out.WriteString(out.String("plain").Foreground(termenv.ANSIRed).String())
	assert.Equal(t, "plain", buf.String())
}

func TestNew_Nil(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}

func TestDetectLogFormat_CI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, output.FormatJSON, output.DetectLogFormat())
}

func TestResolveLogFormat(t *testing.T) {
	detected := func() output.LogFormat { return output.FormatJSON }

	tests := []struct {
		flag string
		want output.LogFormat
	}{
		{flag: "", want: output.FormatPretty},
		{flag: "pretty", want: output.FormatPretty},
		{flag: "json", want: output.FormatJSON},
		{flag: "auto", want: output.FormatJSON},
		{flag: "fancy", want: output.FormatPretty},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, output.ResolveLogFormat(detected, tt.flag))
		})
	}
}
