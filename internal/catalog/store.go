package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/draftforge/draftforge/internal/errors"
	"github.com/draftforge/draftforge/internal/rules"
)

// Directory names under the content root. Subclasses and lineages nest one
// level deeper, keyed by their parent class or species.
const (
	classesDir     = "classes"
	subclassesDir  = "subclasses"
	backgroundsDir = "backgrounds"
	speciesDir     = "species"
	lineagesDir    = "lineages"
	featsDir       = "feats"
)

// Store is an immutable in-memory catalog. Build one with Load from a
// content directory, or with NewMemory from documents assembled in code.
type Store struct {
	classes     map[string]*rules.ClassDoc
	subclasses  map[string]map[string]*rules.SubclassDoc
	backgrounds map[string]*rules.BackgroundDoc
	species     map[string]*rules.SpeciesDoc
	lineages    map[string]map[string]*rules.LineageDoc
	feats       map[string]*rules.FeatDoc
	languages   []string
}

var _ Client = (*Store)(nil)

// Content holds documents for building an in-memory Store
type Content struct {
	Classes     []*rules.ClassDoc
	Subclasses  []*rules.SubclassDoc
	Backgrounds []*rules.BackgroundDoc
	Species     []*rules.SpeciesDoc
	Lineages    []*rules.LineageDoc
	Feats       []*rules.FeatDoc
	Languages   []string
}

// NewMemory builds a Store from documents assembled in code
func NewMemory(content Content) *Store {
	s := newStore()
	for _, c := range content.Classes {
		s.classes[key(c.Name)] = c
	}
	for _, sub := range content.Subclasses {
		byClass := s.subclasses[key(sub.Class)]
		if byClass == nil {
			byClass = make(map[string]*rules.SubclassDoc)
			s.subclasses[key(sub.Class)] = byClass
		}
		byClass[key(sub.Name)] = sub
	}
	for _, b := range content.Backgrounds {
		s.backgrounds[key(b.Name)] = b
	}
	for _, sp := range content.Species {
		s.species[key(sp.Name)] = sp
	}
	for _, l := range content.Lineages {
		bySpecies := s.lineages[key(l.Species)]
		if bySpecies == nil {
			bySpecies = make(map[string]*rules.LineageDoc)
			s.lineages[key(l.Species)] = bySpecies
		}
		bySpecies[key(l.Name)] = l
	}
	for _, f := range content.Feats {
		s.feats[key(f.Name)] = f
	}
	if len(content.Languages) > 0 {
		s.languages = content.Languages
	}
	return s
}

// Load reads every rule document under dir into an immutable Store. It is
// called once at startup; a malformed document fails the load rather than
// surfacing later as a lookup error.
func Load(dir string) (*Store, error) {
	s := newStore()

	if err := loadDocs(filepath.Join(dir, classesDir), func(doc *rules.ClassDoc) {
		s.classes[key(doc.Name)] = doc
	}); err != nil {
		return nil, err
	}

	if err := loadNestedDocs(filepath.Join(dir, subclassesDir), func(parent string, doc *rules.SubclassDoc) {
		if doc.Class == "" {
			doc.Class = parent
		}
		byClass := s.subclasses[key(doc.Class)]
		if byClass == nil {
			byClass = make(map[string]*rules.SubclassDoc)
			s.subclasses[key(doc.Class)] = byClass
		}
		byClass[key(doc.Name)] = doc
	}); err != nil {
		return nil, err
	}

	if err := loadDocs(filepath.Join(dir, backgroundsDir), func(doc *rules.BackgroundDoc) {
		s.backgrounds[key(doc.Name)] = doc
	}); err != nil {
		return nil, err
	}

	if err := loadDocs(filepath.Join(dir, speciesDir), func(doc *rules.SpeciesDoc) {
		s.species[key(doc.Name)] = doc
	}); err != nil {
		return nil, err
	}

	if err := loadNestedDocs(filepath.Join(dir, lineagesDir), func(parent string, doc *rules.LineageDoc) {
		if doc.Species == "" {
			doc.Species = parent
		}
		bySpecies := s.lineages[key(doc.Species)]
		if bySpecies == nil {
			bySpecies = make(map[string]*rules.LineageDoc)
			s.lineages[key(doc.Species)] = bySpecies
		}
		bySpecies[key(doc.Name)] = doc
	}); err != nil {
		return nil, err
	}

	if err := loadDocs(filepath.Join(dir, featsDir), func(doc *rules.FeatDoc) {
		s.feats[key(doc.Name)] = doc
	}); err != nil {
		return nil, err
	}

	return s, nil
}

func newStore() *Store {
	return &Store{
		classes:     make(map[string]*rules.ClassDoc),
		subclasses:  make(map[string]map[string]*rules.SubclassDoc),
		backgrounds: make(map[string]*rules.BackgroundDoc),
		species:     make(map[string]*rules.SpeciesDoc),
		lineages:    make(map[string]map[string]*rules.LineageDoc),
		feats:       make(map[string]*rules.FeatDoc),
		languages:   rules.StandardLanguages,
	}
}

// GetClass returns the class document for the given name
func (s *Store) GetClass(name string) (*rules.ClassDoc, error) {
	doc, ok := s.classes[key(name)]
	if !ok {
		return nil, errors.NotFoundf("class %q not found", name).
			WithMeta("field", "class")
	}
	return doc, nil
}

// GetSubclass returns the subclass document for the given class
func (s *Store) GetSubclass(className, subclassName string) (*rules.SubclassDoc, error) {
	doc, ok := s.subclasses[key(className)][key(subclassName)]
	if !ok {
		return nil, errors.NotFoundf("subclass %q not found for class %q", subclassName, className).
			WithMeta("field", "subclass")
	}
	return doc, nil
}

// ListSubclasses returns the subclass names available to a class, sorted
func (s *Store) ListSubclasses(className string) ([]string, error) {
	if _, ok := s.classes[key(className)]; !ok {
		return nil, errors.NotFoundf("class %q not found", className).
			WithMeta("field", "class")
	}

	names := make([]string, 0, len(s.subclasses[key(className)]))
	for _, doc := range s.subclasses[key(className)] {
		names = append(names, doc.Name)
	}
	sort.Strings(names)
	return names, nil
}

// GetBackground returns the background document for the given name
func (s *Store) GetBackground(name string) (*rules.BackgroundDoc, error) {
	doc, ok := s.backgrounds[key(name)]
	if !ok {
		return nil, errors.NotFoundf("background %q not found", name).
			WithMeta("field", "background")
	}
	return doc, nil
}

// GetSpecies returns the species document for the given name
func (s *Store) GetSpecies(name string) (*rules.SpeciesDoc, error) {
	doc, ok := s.species[key(name)]
	if !ok {
		return nil, errors.NotFoundf("species %q not found", name).
			WithMeta("field", "species")
	}
	return doc, nil
}

// GetLineage returns the lineage document for the given species
func (s *Store) GetLineage(speciesName, lineageName string) (*rules.LineageDoc, error) {
	doc, ok := s.lineages[key(speciesName)][key(lineageName)]
	if !ok {
		return nil, errors.NotFoundf("lineage %q not found for species %q", lineageName, speciesName).
			WithMeta("field", "lineage")
	}
	return doc, nil
}

// GetFeat returns the feat document for the given name
func (s *Store) GetFeat(name string) (*rules.FeatDoc, error) {
	doc, ok := s.feats[key(name)]
	if !ok {
		return nil, errors.NotFoundf("feat %q not found", name).
			WithMeta("field", "feat")
	}
	return doc, nil
}

// Languages returns every recognized language name
func (s *Store) Languages() []string {
	return s.languages
}

// Lookups are case-insensitive so content file naming and player input
// don't have to agree on casing.
func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func loadDocs[T any](dir string, index func(doc *T)) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read content directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path) // #nosec G304 -- path is under the configured content root
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", path)
		}
		doc := new(T)
		if err := json.Unmarshal(data, doc); err != nil {
			return errors.Wrapf(err, "failed to parse %s", path)
		}
		index(doc)
	}
	return nil
}

func loadNestedDocs[T any](dir string, index func(parent string, doc *T)) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read content directory %s", dir)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		parent := entry.Name()
		if err := loadDocs(filepath.Join(dir, parent), func(doc *T) {
			index(parent, doc)
		}); err != nil {
			return err
		}
	}
	return nil
}
