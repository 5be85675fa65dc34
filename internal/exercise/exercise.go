// Package exercise loads the typing exercise catalog and vocabulary bank.
package exercise

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/calciprep/internal/generator"
	"github.com/verte-zerg/calciprep/internal/model"
	"github.com/verte-zerg/calciprep/internal/wordlist"
)

//go:embed exercises.toml
var defaultCatalog string

// Mode identifies the kind of exercise.
type Mode string

const (
	ModeLearnKeys     Mode = "learn-keys"
	ModePracticeWords Mode = "practice-words"
	ModeParagraphs    Mode = "paragraphs"
	ModeTests         Mode = "tests"
)

const defaultDrillWords = 20

// Exercise is one catalog entry. The concrete type is one of LearnKeys,
// PracticeWords, Paragraphs or Tests.
type Exercise interface {
	Name() string
	Title() string
	Mode() Mode
	// Passage builds the text for one attempt.
	Passage(g *generator.Generator) model.Passage
}

// LearnKeys drills a restricted key set.
type LearnKeys struct {
	ID     string
	Label  string
	Keys   string
	Words  int
	Drills []string
	// Source is the word list filtered to Keys.
	Source []string
}

func (e LearnKeys) Name() string  { return e.ID }
func (e LearnKeys) Title() string { return e.Label }
func (e LearnKeys) Mode() Mode    { return ModeLearnKeys }

// Passage picks words typeable with Keys, falling back to a drill line.
func (e LearnKeys) Passage(g *generator.Generator) model.Passage {
	words := wordlist.Filter(e.Source, wordlist.FilterForKeys(e.Keys))
	if len(words) == 0 {
		return model.Passage{Title: e.Label, Text: g.Pick(e.Drills)}
	}
	picked := g.GenerateWeighted(words, e.Words, wordlist.KeySet(e.Keys), 1)
	return model.Passage{Title: e.Label, Text: strings.Join(picked, " ")}
}

// PracticeWords generates random words from a list.
type PracticeWords struct {
	ID       string
	Label    string
	Words    []string
	Count    int
	CapsPct  float64
	PunctPct float64
	PunctSet string
}

func (e PracticeWords) Name() string  { return e.ID }
func (e PracticeWords) Title() string { return e.Label }
func (e PracticeWords) Mode() Mode    { return ModePracticeWords }

func (e PracticeWords) Passage(g *generator.Generator) model.Passage {
	text := g.Passage(e.Words, e.Count, e.CapsPct, e.PunctPct, []rune(e.PunctSet))
	return model.Passage{Title: e.Label, Text: text}
}

// Paragraphs picks one fixed paragraph per attempt.
type Paragraphs struct {
	ID    string
	Label string
	Texts []string
}

func (e Paragraphs) Name() string  { return e.ID }
func (e Paragraphs) Title() string { return e.Label }
func (e Paragraphs) Mode() Mode    { return ModeParagraphs }

func (e Paragraphs) Passage(g *generator.Generator) model.Passage {
	return model.Passage{Title: e.Label, Text: g.Pick(e.Texts)}
}

// Tests are timed passages with a set of allowed durations.
type Tests struct {
	ID        string
	Label     string
	Texts     []string
	Durations []time.Duration
}

func (e Tests) Name() string  { return e.ID }
func (e Tests) Title() string { return e.Label }
func (e Tests) Mode() Mode    { return ModeTests }

func (e Tests) Passage(g *generator.Generator) model.Passage {
	return model.Passage{Title: e.Label, Text: g.Pick(e.Texts)}
}

// AllowsDuration reports whether d is one of the configured durations.
func (e Tests) AllowsDuration(d time.Duration) bool {
	for _, allowed := range e.Durations {
		if allowed == d {
			return true
		}
	}
	return false
}

type catalogFile struct {
	Exercises []rawExercise `toml:"exercise"`
}

type rawExercise struct {
	Name       string   `toml:"name"`
	Title      string   `toml:"title"`
	Mode       string   `toml:"mode"`
	Keys       string   `toml:"keys"`
	Words      int      `toml:"words"`
	WordList   []string `toml:"word-list"`
	Drills     []string `toml:"drills"`
	CapsPct    float64  `toml:"caps"`
	PunctPct   float64  `toml:"punct"`
	PunctSet   string   `toml:"punct-set"`
	Paragraphs []string `toml:"paragraphs"`
	Passages   []string `toml:"passages"`
	Durations  []int    `toml:"durations"`
}

// Catalog holds exercises by name.
type Catalog struct {
	byName map[string]Exercise
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalog, wordlist.DefaultWords())
}

// LoadCatalog returns the embedded catalog merged with the TOML file at path.
// A missing file is not an error.
func LoadCatalog(path string, words []string) (Catalog, error) {
	cat, err := ParseCatalog(defaultCatalog, words)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to parse built-in catalog: %w", err)
	}
	if path == "" {
		return cat, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cat, nil
		}
		return Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	user, err := ParseCatalog(string(data), words)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	for name, ex := range user.byName {
		cat.byName[name] = ex
	}
	return cat, nil
}

// ParseCatalog decodes a TOML catalog. words is the default word source for
// learn-keys and practice-words entries without their own word list.
func ParseCatalog(data string, words []string) (Catalog, error) {
	var file catalogFile
	if _, err := toml.Decode(data, &file); err != nil {
		return Catalog{}, fmt.Errorf("failed to decode catalog: %w", err)
	}
	cat := Catalog{byName: map[string]Exercise{}}
	for i, raw := range file.Exercises {
		ex, err := resolve(raw, words)
		if err != nil {
			return Catalog{}, fmt.Errorf("exercise %d (%q): %w", i+1, raw.Name, err)
		}
		if _, dup := cat.byName[ex.Name()]; dup {
			return Catalog{}, fmt.Errorf("duplicate exercise %q", ex.Name())
		}
		cat.byName[ex.Name()] = ex
	}
	return cat, nil
}

func resolve(raw rawExercise, words []string) (Exercise, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return nil, fmt.Errorf("name must not be empty")
	}
	title := raw.Title
	if title == "" {
		title = name
	}
	source := words
	if len(raw.WordList) > 0 {
		source = raw.WordList
	}
	count := raw.Words
	if count <= 0 {
		count = defaultDrillWords
	}

	switch Mode(raw.Mode) {
	case ModeLearnKeys:
		if strings.TrimSpace(raw.Keys) == "" {
			return nil, fmt.Errorf("learn-keys requires keys")
		}
		if len(raw.Drills) == 0 && len(wordlist.Filter(source, wordlist.FilterForKeys(raw.Keys))) == 0 {
			return nil, fmt.Errorf("no drills or words for keys %q", raw.Keys)
		}
		return LearnKeys{ID: name, Label: title, Keys: raw.Keys, Words: count, Drills: raw.Drills, Source: source}, nil
	case ModePracticeWords:
		if len(source) == 0 {
			return nil, fmt.Errorf("practice-words requires a word list")
		}
		if raw.CapsPct < 0 || raw.CapsPct > 1 || raw.PunctPct < 0 || raw.PunctPct > 1 {
			return nil, fmt.Errorf("caps and punct must be between 0 and 1")
		}
		return PracticeWords{
			ID:       name,
			Label:    title,
			Words:    source,
			Count:    count,
			CapsPct:  raw.CapsPct,
			PunctPct: raw.PunctPct,
			PunctSet: raw.PunctSet,
		}, nil
	case ModeParagraphs:
		if len(raw.Paragraphs) == 0 {
			return nil, fmt.Errorf("paragraphs requires at least one paragraph")
		}
		return Paragraphs{ID: name, Label: title, Texts: raw.Paragraphs}, nil
	case ModeTests:
		if len(raw.Passages) == 0 {
			return nil, fmt.Errorf("tests requires at least one passage")
		}
		durations := make([]time.Duration, 0, len(raw.Durations))
		for _, secs := range raw.Durations {
			if secs <= 0 {
				return nil, fmt.Errorf("durations must be > 0 seconds")
			}
			durations = append(durations, time.Duration(secs)*time.Second)
		}
		if len(durations) == 0 {
			durations = []time.Duration{time.Minute}
		}
		return Tests{ID: name, Label: title, Texts: raw.Passages, Durations: durations}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", raw.Mode)
	}
}

// Get returns the exercise with the given name.
func (c Catalog) Get(name string) (Exercise, bool) {
	ex, ok := c.byName[name]
	return ex, ok
}

// Names returns all exercise names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of exercises.
func (c Catalog) Len() int { return len(c.byName) }

// Tune overrides generation settings. words <= 0 and negative probabilities
// keep the catalog values. Exercises without such settings are returned as is.
func Tune(ex Exercise, words int, capsPct, punctPct float64) Exercise {
	switch e := ex.(type) {
	case LearnKeys:
		if words > 0 {
			e.Words = words
		}
		return e
	case PracticeWords:
		if words > 0 {
			e.Count = words
		}
		if capsPct >= 0 {
			e.CapsPct = capsPct
		}
		if punctPct >= 0 {
			e.PunctPct = punctPct
		}
		return e
	default:
		return ex
	}
}
