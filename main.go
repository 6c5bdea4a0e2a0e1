package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ddkwork/golibrary/mylog"
	"github.com/ogier/pflag"

	adebug "github.com/jeffwilliams/sortbuf/internal/debug"
)

const programName = "sortbuf"

var (
	optSettings       = pflag.StringP("settings", "s", "", "Load settings from this file instead of ~/.sortbuf/settings.toml")
	optGlyphs         = pflag.StringP("glyphs", "g", "", "Load a glyph table (.toml or .csv) that provides glyph names and advance widths")
	optFont           = pflag.StringP("font", "f", "", "Measure glyphs using this font. The name is looked up in the system font directories")
	optMultiline      = pflag.BoolP("multiline", "m", false, "Up and down move between the lines of a flow instead of between flows")
	optFormat         = pflag.StringP("format", "o", "", "Format of buffer dumps: table or csv")
	optProfile        = pflag.StringP("profile", "p", "", "Profile cpu or heap usage while the scripts run. The profile file location is printed to stdout.")
	optDebugStdout    = pflag.BoolP("dbg", "b", false, "Print debug logs to stdout")
	optSampleSettings = pflag.Bool("sample-settings", false, "Print a sample settings file and exit")
)

var debugLog = adebug.New(100)

func main() {
	mylog.Call(func() { run() })
}

func run() {
	parseAndValidateOptions()

	if *optSampleSettings {
		fmt.Print(GenerateSampleSettings())
		return
	}

	if *optProfile != "" {
		startProfiling(ProfileCategory(*optProfile), ".")
		defer stopProfiling()
	}

	initDebugging()
	LoadSettings()
	applyOptionsToSettings(&settings)

	provider := mylog.Check2(loadGlyphProvider(settings.Font))
	sess := NewSession(provider, settings, os.Stdout)

	if pflag.NArg() == 0 {
		mylog.Check(sess.Run(os.Stdin, "stdin"))
	}

	for _, path := range pflag.Args() {
		runScriptFile(sess, path)
	}

	if !sess.Dumped() {
		mylog.Check(sess.Dump())
	}
}

func parseAndValidateOptions() {
	pflag.Parse()

	switch *optFormat {
	case "", formatTable, formatCSV:
	default:
		fmt.Printf("The format must be %s or %s\n", formatTable, formatCSV)
		os.Exit(1)
	}

	if *optProfile != "" {
		c, err := parseProfileCategory(*optProfile)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		*optProfile = string(c)
	}
}

func runScriptFile(sess *Session, path string) {
	f := mylog.Check2(os.Open(path))
	defer func() { mylog.Check(f.Close()) }()

	log(LogCatgScript, "Running script %s\n", path)
	mylog.Check(sess.Run(f, filepath.Base(path)))
}

func log(category, message string, args ...interface{}) {
	if *optDebugStdout {
		fmt.Printf(message, args...)
	}
	debugLog.Addf(category, message, args...)
}
