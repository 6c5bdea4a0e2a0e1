package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"

	"github.com/ddkwork/golibrary/mylog"
	"github.com/pelletier/go-toml"

	adebug "github.com/jeffwilliams/sortbuf/internal/debug"
	"github.com/jeffwilliams/sortbuf/internal/glyphs"
)

var ConfDir string

func init() {
	if runtime.GOOS == "windows" {
		ConfDir = fmt.Sprintf("%s/.sortbuf", os.Getenv("USERPROFILE"))
	} else {
		ConfDir = fmt.Sprintf("%s/.sortbuf", os.Getenv("HOME"))
	}
}

func SettingsConfigFile() string {
	if *optSettings != "" {
		return *optSettings
	}
	return fmt.Sprintf("%s/%s", ConfDir, "settings.toml")
}

type Settings struct {
	Font   FontSettings
	Editor EditorSettings
	Log    LogSettings
}

type FontSettings struct {
	File   string
	Glyphs string
	// Metrics override the metrics of the glyph table or font.
	Metrics glyphs.Metrics
}

type EditorSettings struct {
	Multiline     bool
	ArabicShaping bool    `toml:"arabic-shaping"`
	Format        string  `toml:"format"`
	HitTolerance  float32 `toml:"hit-tolerance"`
}

type LogSettings struct {
	MaxEntries int `toml:"max-entries"`
}

var settings = defaultSettings()

func defaultSettings() Settings {
	return Settings{
		Editor: EditorSettings{
			ArabicShaping: true,
			Format:        formatTable,
			HitTolerance:  50,
		},
		Log: LogSettings{
			MaxEntries: 100,
		},
	}
}

func LoadSettings() {
	path := SettingsConfigFile()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log(LogCatgConf, "No settings file at %s, using defaults\n", path)
		return
	}
	mylog.Check(err)
	defer func() { mylog.Check(f.Close()) }()

	mylog.Check(LoadSettingsFrom(f, &settings))
	log(LogCatgApp, "Loaded settings from config file %s\n", path)
}

// LoadSettingsFrom decodes TOML settings over the values already in s.
func LoadSettingsFrom(r io.Reader, s *Settings) (err error) {
	dec := toml.NewDecoder(r)
	err = dec.Decode(s)
	return
}

func applyOptionsToSettings(s *Settings) {
	if *optFont != "" {
		s.Font.File = *optFont
	}
	if *optGlyphs != "" {
		s.Font.Glyphs = *optGlyphs
	}
	if *optMultiline {
		s.Editor.Multiline = true
	}
	if *optFormat != "" {
		s.Editor.Format = *optFormat
	}
	if s.Log.MaxEntries > 0 && s.Log.MaxEntries != debugLog.Max() {
		debugLog = adebug.New(s.Log.MaxEntries)
	}
}

func GenerateSampleSettings() string {
	return `# Sample sortbuf settings file
[font]
# file is a TrueType or OpenType font used to measure glyphs. A bare file name is
# looked up in the system font directories.
#file="DejaVuSans.ttf"

# glyphs is a glyph table in TOML or CSV format that gives glyph names and advance
# widths. When a font is also given the table only supplies the names.
#glyphs="glyphs.toml"

# metrics replace the vertical metrics of the font or glyph table.
#[font.metrics]
#units-per-em=1000
#ascender=800
#descender=-200

[editor]
# When multiline is true up and down move between the lines of a flow. Otherwise they
# move to the previous or next flow.
# The default is false
#multiline=false

# arabic-shaping picks the initial, medial and final forms of Arabic letters as they
# are typed.
# The default is true
#arabic-shaping=true

# format is the format of buffer dumps, either "table" or "csv".
#format="table"

# hit-tolerance is the distance within which the pick command finds a sort.
#hit-tolerance=50

[log]
# max-entries is the number of debug messages kept per category.
#max-entries=100
`
}
