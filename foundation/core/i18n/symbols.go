// File: symbols.go
// Title: Locale Symbol Tables
// Description: Loads month, weekday and am/pm names per locale from TOML and
//              YAML files. The built-in tables are embedded; additional
//              tables can be registered at runtime or loaded from a directory.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-19 v0.2.0: Translation manager replaced by date symbol tables

package i18n

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	kerror "github.com/msto63/kairos/foundation/core/error"
)

//go:embed symbols/*.toml symbols/*.yaml
var builtinFS embed.FS

// fallbackKey provides symbols for Root and unknown languages
const fallbackKey = "en"

// Format represents the symbol file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML

	// FormatAuto detects the format from the file extension
	FormatAuto
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// FormatFromPath derives the format from a file extension
func FormatFromPath(p string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return FormatAuto, false
	}
}

// Symbols holds the textual calendar names of one locale. Weekdays start
// with Sunday so they can be indexed by time.Weekday.
type Symbols struct {
	Months        []string `toml:"months" yaml:"months"`
	ShortMonths   []string `toml:"short_months" yaml:"short_months"`
	Weekdays      []string `toml:"weekdays" yaml:"weekdays"`
	ShortWeekdays []string `toml:"short_weekdays" yaml:"short_weekdays"`
	AmPm          []string `toml:"am_pm" yaml:"am_pm"`

	folded [5][]string
}

// table indexes into Symbols.folded
const (
	tableMonths = iota
	tableShortMonths
	tableWeekdays
	tableShortWeekdays
	tableAmPm
)

func (s *Symbols) table(i int) []string {
	switch i {
	case tableMonths:
		return s.Months
	case tableShortMonths:
		return s.ShortMonths
	case tableWeekdays:
		return s.Weekdays
	case tableShortWeekdays:
		return s.ShortWeekdays
	default:
		return s.AmPm
	}
}

// Validate checks the table sizes
func (s *Symbols) Validate() error {
	checks := []struct {
		name  string
		table []string
		size  int
	}{
		{"months", s.Months, 12},
		{"short_months", s.ShortMonths, 12},
		{"weekdays", s.Weekdays, 7},
		{"short_weekdays", s.ShortWeekdays, 7},
		{"am_pm", s.AmPm, 2},
	}
	for _, c := range checks {
		if len(c.table) != c.size {
			return kerror.Newf("symbol table %s has %d entries, want %d", c.name, len(c.table), c.size).
				WithCode(kerror.CodeInvalidInput).
				WithOperation("i18n.Symbols.Validate")
		}
	}
	return nil
}

// prepare folds all names once so lookups only fold the input
func (s *Symbols) prepare() {
	fold := cases.Fold()
	for i := range s.folded {
		names := s.table(i)
		folded := make([]string, len(names))
		for j, name := range names {
			folded[j] = fold.String(name)
		}
		s.folded[i] = folded
	}
}

// MatchMonth matches a month name at the start of text. It returns the
// month (1-12) and the number of bytes consumed.
func (s *Symbols) MatchMonth(text string, short bool) (int, int, bool) {
	table := tableMonths
	if short {
		table = tableShortMonths
	}
	idx, n, ok := s.match(table, text)
	return idx + 1, n, ok
}

// MatchWeekday matches a weekday name at the start of text. It returns the
// weekday index (0 = Sunday) and the number of bytes consumed.
func (s *Symbols) MatchWeekday(text string, short bool) (int, int, bool) {
	table := tableWeekdays
	if short {
		table = tableShortWeekdays
	}
	return s.match(table, text)
}

// MatchAmPm matches an am/pm marker. It returns 0 for AM and 1 for PM.
func (s *Symbols) MatchAmPm(text string) (int, int, bool) {
	return s.match(tableAmPm, text)
}

// match returns the longest case-insensitive match at the start of text
func (s *Symbols) match(table int, text string) (int, int, bool) {
	names := s.table(table)
	folded := s.folded[table]
	fold := cases.Fold()

	best, bestLen := -1, 0
	for i, name := range names {
		n := len(name)
		if n == 0 || n <= bestLen || n > len(text) {
			continue
		}
		want := fold.String(name)
		if len(folded) == len(names) {
			want = folded[i]
		}
		if fold.String(text[:n]) == want {
			best, bestLen = i, n
		}
	}
	return best, bestLen, best >= 0
}

// registry of symbol tables keyed by normalized locale string
var (
	symbolsMu    sync.RWMutex
	symbolTables = make(map[string]*Symbols)
)

func init() {
	entries, err := builtinFS.ReadDir("symbols")
	if err != nil {
		panic(err)
	}
	for _, entry := range entries {
		name := entry.Name()
		data, err := builtinFS.ReadFile(path.Join("symbols", name))
		if err != nil {
			panic(err)
		}
		format, _ := FormatFromPath(name)
		if err := RegisterSymbolsData(strings.TrimSuffix(name, path.Ext(name)), data, format); err != nil {
			panic(fmt.Sprintf("builtin symbols %s: %v", name, err))
		}
	}
}

// DecodeSymbols parses a TOML or YAML symbol table
func DecodeSymbols(data []byte, format Format) (*Symbols, error) {
	var s Symbols
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, kerror.Wrap(err, "failed to parse TOML symbols").WithCode(kerror.CodeInvalidInput)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, kerror.Wrap(err, "failed to parse YAML symbols").WithCode(kerror.CodeInvalidInput)
		}
	default:
		return nil, kerror.Newf("unsupported symbols format %s", format).WithCode(kerror.CodeInvalidInput)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// RegisterSymbols installs s for the locale identified by id, replacing any
// previous table
func RegisterSymbols(id string, s *Symbols) error {
	locale, err := ParseLocale(id)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	clone := &Symbols{
		Months:        append([]string(nil), s.Months...),
		ShortMonths:   append([]string(nil), s.ShortMonths...),
		Weekdays:      append([]string(nil), s.Weekdays...),
		ShortWeekdays: append([]string(nil), s.ShortWeekdays...),
		AmPm:          append([]string(nil), s.AmPm...),
	}
	clone.prepare()

	key := symbolsKey(locale)
	symbolsMu.Lock()
	symbolTables[key] = clone
	symbolsMu.Unlock()
	return nil
}

// RegisterSymbolsData decodes and registers a symbol table
func RegisterSymbolsData(id string, data []byte, format Format) error {
	s, err := DecodeSymbols(data, format)
	if err != nil {
		return kerror.Wrap(err, "invalid symbols for locale ["+id+"]").WithOperation("i18n.RegisterSymbolsData")
	}
	return RegisterSymbols(id, s)
}

// LoadSymbolsFile registers the table in path under the locale named by the
// file name ("fr_CA.yaml" -> fr-CA)
func LoadSymbolsFile(p string) error {
	format, ok := FormatFromPath(p)
	if !ok {
		return kerror.New("unsupported symbols file extension").
			WithCode(kerror.CodeInvalidInput).
			WithOperation("i18n.LoadSymbolsFile").
			WithDetail("path", p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return kerror.Wrap(err, "failed to read symbols file").
			WithCode(kerror.CodeNotFound).
			WithOperation("i18n.LoadSymbolsFile").
			WithDetail("path", p)
	}
	base := filepath.Base(p)
	return RegisterSymbolsData(strings.TrimSuffix(base, filepath.Ext(base)), data, format)
}

// LoadSymbolsDir loads every .toml, .yaml and .yml file in dir
func LoadSymbolsDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return kerror.Wrap(err, "symbols directory not found").
			WithCode(kerror.CodeNotFound).
			WithOperation("i18n.LoadSymbolsDir").
			WithDetail("directory", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := FormatFromPath(entry.Name()); !ok {
			continue
		}
		if err := LoadSymbolsFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// SymbolsFor returns the table for l: exact tag first, then the base
// language, then English. Root uses English.
func SymbolsFor(l Locale) *Symbols {
	symbolsMu.RLock()
	defer symbolsMu.RUnlock()

	if s, ok := symbolTables[symbolsKey(l)]; ok {
		return s
	}
	if s, ok := symbolTables[l.Language()]; ok {
		return s
	}
	return symbolTables[fallbackKey]
}

// HasSymbols reports whether a table was registered for exactly l
func HasSymbols(l Locale) bool {
	symbolsMu.RLock()
	defer symbolsMu.RUnlock()
	_, ok := symbolTables[symbolsKey(l)]
	return ok
}

// SymbolLocales returns the registered locale keys in sorted order
func SymbolLocales() []string {
	symbolsMu.RLock()
	defer symbolsMu.RUnlock()

	keys := make([]string, 0, len(symbolTables))
	for k := range symbolTables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func symbolsKey(l Locale) string {
	if l.IsRoot() {
		return fallbackKey
	}
	return l.Tag().String()
}
