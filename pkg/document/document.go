// Package document models a tangle page: running text with inline control and
// output declarations, in document order. Documents are either assembled in
// code or loaded from YAML; renderers walk the segment list to produce output.
package document

import (
	"fmt"

	"github.com/coatless-rpkg/shinytangle/pkg/control"
)

// SegmentKind discriminates the document segment variants.
type SegmentKind int

const (
	// SegmentText is a literal run of text.
	SegmentText SegmentKind = iota
	// SegmentControl is an inline input control declaration.
	SegmentControl
	// SegmentOutput is an inline output slot bound by identifier.
	SegmentOutput
)

// Segment is one piece of a document, in flow order.
type Segment struct {
	Kind     SegmentKind
	Text     string
	Control  control.Spec
	OutputID string
}

// Text returns a literal text segment.
func Text(text string) Segment {
	return Segment{Kind: SegmentText, Text: text}
}

// Control returns an inline control segment.
func Control(spec control.Spec) Segment {
	return Segment{Kind: SegmentControl, Control: spec}
}

// Output returns an inline output slot segment.
func Output(id string) Segment {
	return Segment{Kind: SegmentOutput, OutputID: id}
}

// Document is an ordered tangle page description.
type Document struct {
	Title    string
	Segments []Segment
}

// New assembles a document, validating identifier uniqueness and control
// invariants.
func New(title string, segments ...Segment) (Document, error) {
	doc := Document{Title: title, Segments: segments}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate checks control invariants and that control and output identifiers
// are unique within the document.
func (d Document) Validate() error {
	controls := make(map[string]struct{})
	outputs := make(map[string]struct{})
	for i, segment := range d.Segments {
		switch segment.Kind {
		case SegmentText:
			// any text is fine, including empty
		case SegmentControl:
			if err := segment.Control.Validate(); err != nil {
				return fmt.Errorf("document: segment %d: %w", i, err)
			}
			id := segment.Control.ID
			if _, dup := controls[id]; dup {
				return fmt.Errorf("document: duplicate control id %q", id)
			}
			controls[id] = struct{}{}
		case SegmentOutput:
			if segment.OutputID == "" {
				return fmt.Errorf("document: segment %d: output id is required", i)
			}
			if _, dup := outputs[segment.OutputID]; dup {
				return fmt.Errorf("document: duplicate output id %q", segment.OutputID)
			}
			outputs[segment.OutputID] = struct{}{}
		default:
			return fmt.Errorf("document: segment %d: unknown kind %d", i, segment.Kind)
		}
	}
	return nil
}

// Controls returns the control specs in document order.
func (d Document) Controls() []control.Spec {
	var specs []control.Spec
	for _, segment := range d.Segments {
		if segment.Kind == SegmentControl {
			specs = append(specs, segment.Control)
		}
	}
	return specs
}

// OutputIDs returns the output identifiers in document order.
func (d Document) OutputIDs() []string {
	var ids []string
	for _, segment := range d.Segments {
		if segment.Kind == SegmentOutput {
			ids = append(ids, segment.OutputID)
		}
	}
	return ids
}
