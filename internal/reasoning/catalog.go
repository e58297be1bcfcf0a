package reasoning

import (
	"errors"
	"fmt"
	"math"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"
)

// Interval is the compacted label range of a class or property and its
// entire sub-hierarchy closure: every member of the closure carries a label
// in [Low, High).
type Interval struct {
	Low  uint32
	High uint32
}

// Catalog holds the label-compaction output the reasoning rewriter consumes:
// per-class and per-property closure intervals, keyed by IRI.
//
// How the closure labels are computed is the reasoner's business; this core
// only reads the result.
type Catalog struct {
	Classes    map[string]Interval
	Properties map[string]Interval
}

// ClassInterval returns the closure interval for a class IRI.
func (c *Catalog) ClassInterval(iri string) (Interval, bool) {
	iv, ok := c.Classes[iri]
	return iv, ok
}

// PropertyInterval returns the closure interval for a property IRI.
func (c *Catalog) PropertyInterval(iri string) (Interval, bool) {
	iv, ok := c.Properties[iri]
	return iv, ok
}

// CatalogError is a catalog load or validation failure. It carries the CUE
// source position when one is available.
type CatalogError struct {
	Field   string
	Message string
	Pos     token.Pos
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("catalog %s: %s (%s:%d:%d)",
			e.Field, e.Message, e.Pos.Filename(), e.Pos.Line(), e.Pos.Column())
	}
	return fmt.Sprintf("catalog %s: %s", e.Field, e.Message)
}

// LoadCatalog reads and validates a CUE catalog file.
//
// Expected shape:
//
//	catalog: {
//		classes: {
//			"http://example.org/Person": {label: 10, span: 4}
//		}
//		properties: {
//			"http://example.org/knows": {label: 3, span: 2}
//		}
//	}
//
// A span of n means the closure occupies labels [label, label+n).
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile catalog: %w", err)
	}

	root := v.LookupPath(cue.ParsePath("catalog"))
	if !root.Exists() {
		return nil, &CatalogError{
			Field:   "catalog",
			Message: "top-level catalog struct is required",
			Pos:     v.Pos(),
		}
	}

	return ParseCatalog(root)
}

// ParseCatalog parses a CUE value holding the catalog struct.
func ParseCatalog(v cue.Value) (*Catalog, error) {
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("catalog value: %w", err)
	}

	classes, err := parseIntervals(v, "classes")
	if err != nil {
		return nil, err
	}
	properties, err := parseIntervals(v, "properties")
	if err != nil {
		return nil, err
	}

	return &Catalog{Classes: classes, Properties: properties}, nil
}

func parseIntervals(v cue.Value, section string) (map[string]Interval, error) {
	intervals := make(map[string]Interval)

	sectionVal := v.LookupPath(cue.ParsePath(section))
	if !sectionVal.Exists() {
		return intervals, nil // both sections are optional
	}

	iter, err := sectionVal.Fields()
	if err != nil {
		return nil, &CatalogError{
			Field:   section,
			Message: err.Error(),
			Pos:     sectionVal.Pos(),
		}
	}

	for iter.Next() {
		iri := iter.Selector().Unquoted()
		entry := iter.Value()

		label, err := parseBoundedInt(entry, "label")
		if err != nil {
			return nil, wrapFieldError(section, iri, err)
		}
		span, err := parseBoundedInt(entry, "span")
		if err != nil {
			return nil, wrapFieldError(section, iri, err)
		}
		if span < 1 {
			return nil, &CatalogError{
				Field:   section + "." + iri,
				Message: "span must be at least 1",
				Pos:     entry.Pos(),
			}
		}
		if label+span > math.MaxUint32 {
			return nil, &CatalogError{
				Field:   section + "." + iri,
				Message: "label interval exceeds the 32-bit label space",
				Pos:     entry.Pos(),
			}
		}

		intervals[iri] = Interval{Low: uint32(label), High: uint32(label + span)}
	}

	return intervals, nil
}

func parseBoundedInt(v cue.Value, field string) (int64, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return 0, &CatalogError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	n, err := fieldVal.Int64()
	if err != nil {
		return 0, &CatalogError{
			Field:   field,
			Message: "must be an integer",
			Pos:     fieldVal.Pos(),
		}
	}
	if n < 0 {
		return 0, &CatalogError{
			Field:   field,
			Message: "must not be negative",
			Pos:     fieldVal.Pos(),
		}
	}
	return n, nil
}

func wrapFieldError(section, iri string, err error) error {
	var catErr *CatalogError
	if errors.As(err, &catErr) {
		catErr.Field = section + "." + iri + "." + catErr.Field
		return catErr
	}
	return err
}
