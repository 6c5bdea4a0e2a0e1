package main

import (
	"github.com/jeffwilliams/sortbuf/internal/glyphs"
	"github.com/jeffwilliams/sortbuf/internal/scene"
	"github.com/jeffwilliams/sortbuf/internal/shaping"
	"github.com/jeffwilliams/sortbuf/internal/textedit"
)

const (
	LogCatgApp     = "Application"
	LogCatgConf    = "Config"
	LogCatgFont    = "Font"
	LogCatgEditor  = "Editor"
	LogCatgShaping = "Shaping"
	LogCatgScene   = "Scene"
	LogCatgScript  = "Script"
)

var debugLogCategories = []string{
	LogCatgApp,
	LogCatgConf,
	LogCatgFont,
	LogCatgEditor,
	LogCatgShaping,
	LogCatgScene,
	LogCatgScript,
}

func initDebugging() {
	glyphs.Debug = func(message string, args ...interface{}) {
		log(LogCatgFont, message, args...)
	}
	shaping.Debug = func(message string, args ...interface{}) {
		log(LogCatgShaping, message, args...)
	}
	textedit.Debug = func(message string, args ...interface{}) {
		log(LogCatgEditor, message, args...)
	}
	scene.Debug = func(message string, args ...interface{}) {
		log(LogCatgScene, message, args...)
	}
}
