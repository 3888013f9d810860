package document

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coatless-rpkg/shinytangle/pkg/control"
)

// yamlDocument mirrors the on-disk document schema.
type yamlDocument struct {
	Title    string        `yaml:"title"`
	Segments []yamlSegment `yaml:"segments"`
}

// yamlSegment carries exactly one of text, control, or output.
type yamlSegment struct {
	Text    *string      `yaml:"text"`
	Control *yamlControl `yaml:"control"`
	Output  *string      `yaml:"output"`
}

type yamlControl struct {
	ID          string   `yaml:"id"`
	Value       float64  `yaml:"value"`
	Min         *float64 `yaml:"min"`
	Max         *float64 `yaml:"max"`
	Step        *float64 `yaml:"step"`
	Sensitivity *float64 `yaml:"sensitivity"`
}

// Load reads a YAML document description. Unknown fields are rejected so typos
// in declarations fail loudly instead of silently dropping behaviour.
func Load(r io.Reader) (Document, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw yamlDocument
	if err := decoder.Decode(&raw); err != nil {
		return Document{}, fmt.Errorf("document: decode yaml: %w", err)
	}

	segments := make([]Segment, 0, len(raw.Segments))
	for i, entry := range raw.Segments {
		segment, err := entry.toSegment()
		if err != nil {
			return Document{}, fmt.Errorf("document: segment %d: %w", i, err)
		}
		segments = append(segments, segment)
	}

	return New(raw.Title, segments...)
}

// LoadFile reads a YAML document from path.
func LoadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("document: open %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

func (s yamlSegment) toSegment() (Segment, error) {
	set := 0
	if s.Text != nil {
		set++
	}
	if s.Control != nil {
		set++
	}
	if s.Output != nil {
		set++
	}
	if set != 1 {
		return Segment{}, fmt.Errorf("exactly one of text, control, or output is required")
	}

	switch {
	case s.Text != nil:
		return Text(*s.Text), nil
	case s.Output != nil:
		return Output(*s.Output), nil
	default:
		spec, err := s.Control.toSpec()
		if err != nil {
			return Segment{}, err
		}
		return Control(spec), nil
	}
}

func (c *yamlControl) toSpec() (control.Spec, error) {
	var options []control.Option
	if c.Min != nil {
		options = append(options, control.WithMin(*c.Min))
	}
	if c.Max != nil {
		options = append(options, control.WithMax(*c.Max))
	}
	if c.Step != nil {
		options = append(options, control.WithStep(*c.Step))
	}
	if c.Sensitivity != nil {
		options = append(options, control.WithSensitivity(*c.Sensitivity))
	}
	return control.New(c.ID, c.Value, options...)
}
