// Package trace provides ready-made trace hooks for makeservice:
// a colored console logger and a latency histogram recorder. Both are
// pure observers; they never affect the request they watch.
package trace

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	makeservice "github.com/gustavoguichard/make-service"
)

// ColorScheme defines the colors used for the console hook's output.
type ColorScheme struct {
	Method      *color.Color
	URL         *color.Color
	StatusOK    *color.Color
	StatusWarn  *color.Color
	StatusError *color.Color
}

// DefaultColorScheme returns the default color scheme.
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Method:      color.New(color.FgBlue, color.Bold),
		URL:         color.New(color.FgCyan),
		StatusOK:    color.New(color.FgGreen, color.Bold),
		StatusWarn:  color.New(color.FgYellow, color.Bold),
		StatusError: color.New(color.FgRed, color.Bold),
	}
}

// NoColorScheme returns a color scheme with all colors disabled.
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	scheme.Method.DisableColor()
	scheme.URL.DisableColor()
	scheme.StatusOK.DisableColor()
	scheme.StatusWarn.DisableColor()
	scheme.StatusError.DisableColor()
	return scheme
}

// Console returns a trace hook that writes one line per request phase
// to w: "METHOD url" before dispatch and "METHOD url -> status (Nms)"
// after. Colors are enabled only when w is a terminal.
func Console(w io.Writer) makeservice.TraceFunc {
	scheme := DefaultColorScheme()
	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		scheme = NoColorScheme()
	}
	return ConsoleWithScheme(w, scheme)
}

// ConsoleWithScheme is Console with an explicit color scheme.
func ConsoleWithScheme(w io.Writer, scheme *ColorScheme) makeservice.TraceFunc {
	return func(info makeservice.TraceInfo) {
		if info.Response == nil {
			fmt.Fprintf(w, "%s %s\n",
				scheme.Method.Sprint(info.Method),
				scheme.URL.Sprint(info.URL))
			return
		}
		fmt.Fprintf(w, "%s %s -> %s (%dms)\n",
			scheme.Method.Sprint(info.Method),
			scheme.URL.Sprint(info.URL),
			statusColor(scheme, info.Response.StatusCode).Sprint(info.Response.Status),
			elapsedMillis(info))
	}
}

func statusColor(scheme *ColorScheme, code int) *color.Color {
	switch {
	case code >= 500:
		return scheme.StatusError
	case code >= 400:
		return scheme.StatusWarn
	default:
		return scheme.StatusOK
	}
}
