package tui

import (
	"os"
	"strings"
	"sync"
)

// Some fonts render box and arrow glyphs poorly; an ASCII set is available.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference picks the glyph set from CAE_TUI_GLYPHS, then the config value.
// Unknown values are ignored.
func applyGlyphPreference(configured string) {
	for _, v := range []string{os.Getenv("CAE_TUI_GLYPHS"), configured} {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "unicode", "utf8":
			setGlyphs(glyphSetUnicode)
			return
		case "ascii":
			setGlyphs(glyphSetASCII)
			return
		}
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphPick(unicode, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return unicode
}

func glyphBullet() string   { return glyphPick("•", "*") }
func glyphArrow() string    { return glyphPick("→", "->") }
func glyphHRule() string    { return glyphPick("─", "-") }
func glyphUrgent() string   { return glyphPick("▲", "!") }
func glyphCursor() string   { return glyphPick("▸", ">") }
func glyphEllipsis() string { return glyphPick("…", "~") }
