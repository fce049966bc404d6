// Package catalog provides read-only access to authored rule content.
// Content is loaded once, ahead of time; lookups never touch I/O.
package catalog

//go:generate mockgen -destination=mock/mock_client.go -package=catalogmock github.com/draftforge/draftforge/internal/catalog Client

import (
	"github.com/draftforge/draftforge/internal/rules"
)

// Client defines the lookup surface the assembly engine consumes.
// Implementations return errors.NotFound for unknown names.
type Client interface {
	// GetClass returns the class document for the given name
	GetClass(name string) (*rules.ClassDoc, error)

	// GetSubclass returns the subclass document for the given class
	GetSubclass(className, subclassName string) (*rules.SubclassDoc, error)

	// ListSubclasses returns the subclass names available to a class
	ListSubclasses(className string) ([]string, error)

	// GetBackground returns the background document for the given name
	GetBackground(name string) (*rules.BackgroundDoc, error)

	// GetSpecies returns the species document for the given name
	GetSpecies(name string) (*rules.SpeciesDoc, error)

	// GetLineage returns the lineage document for the given species
	GetLineage(speciesName, lineageName string) (*rules.LineageDoc, error)

	// GetFeat returns the feat document for the given name
	GetFeat(name string) (*rules.FeatDoc, error)

	// Languages returns every recognized language name
	Languages() []string
}
