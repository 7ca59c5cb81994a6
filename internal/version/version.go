package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata, overridden at release time:
//
//	go build -ldflags "-X confscan/internal/version.Version=0.2.0"
//
// Version остаётся обычной строкой: значение из -X не должно
// перетираться кодом инициализации.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var segmentColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Pretty returns Version with each dotted segment tinted for the CLI banner.
// A pre-release suffix ("-dev") stays attached to its segment. With
// color.NoColor set the plain string comes back.
func Pretty() string {
	segments := strings.Split(Version, ".")
	for i := range segments {
		segments[i] = segmentColors[i%len(segmentColors)].Sprint(segments[i])
	}
	return strings.Join(segments, ".")
}
