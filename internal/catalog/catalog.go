package catalog

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"vaidya/internal/domain"
)

//go:embed therapy_templates.yaml
var templatesFS embed.FS

var ErrInvalidCatalog = errors.New("invalid therapy catalog")

// Catalog es el registro inmutable id -> plantilla, construido una vez al arrancar.
// Nunca entrega referencias internas: Get devuelve copias estructurales.
type Catalog struct {
	templates map[string]domain.TherapyTemplate
	order     []string
}

type yamlCatalog struct {
	Version   int            `yaml:"version"`
	Templates []yamlTemplate `yaml:"templates"`
}

type yamlTemplate struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Sections    []yamlSection `yaml:"sections"`
}

type yamlSection struct {
	ID           string            `yaml:"id"`
	Title        string            `yaml:"title"`
	Instructions []yamlInstruction `yaml:"instructions"`
}

type yamlInstruction struct {
	ID      string   `yaml:"id"`
	Text    string   `yaml:"text"`
	Alert   bool     `yaml:"alert"`
	Timing  string   `yaml:"timing"`
	Details string   `yaml:"details"`
	Tips    []string `yaml:"tips"`
}

// New construye un catalogo a partir de plantillas ya armadas (usado en tests).
func New(templates ...domain.TherapyTemplate) (*Catalog, error) {
	c := &Catalog{templates: make(map[string]domain.TherapyTemplate, len(templates))}
	for _, t := range templates {
		if err := validateTemplate(t); err != nil {
			return nil, err
		}
		if _, dup := c.templates[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate template id %q", ErrInvalidCatalog, t.ID)
		}
		c.templates[t.ID] = t.Clone()
		c.order = append(c.order, t.ID)
	}
	return c, nil
}

// LoadDefault parsea el catalogo embebido.
func LoadDefault() (*Catalog, error) {
	data, err := templatesFS.ReadFile("therapy_templates.yaml")
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Load usa el archivo en path si se indica; si no, el catalogo embebido.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodifica un catalogo YAML.
func Parse(data []byte) (*Catalog, error) {
	var spec yamlCatalog
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(spec.Templates) == 0 {
		return nil, fmt.Errorf("%w: no templates", ErrInvalidCatalog)
	}

	templates := make([]domain.TherapyTemplate, 0, len(spec.Templates))
	for _, yt := range spec.Templates {
		templates = append(templates, yt.toDomain())
	}
	return New(templates...)
}

func (yt yamlTemplate) toDomain() domain.TherapyTemplate {
	t := domain.TherapyTemplate{
		ID:          strings.TrimSpace(yt.ID),
		Name:        strings.TrimSpace(yt.Name),
		Description: strings.TrimSpace(yt.Description),
		Sections:    make([]domain.Section, 0, len(yt.Sections)),
	}
	for _, ys := range yt.Sections {
		s := domain.Section{
			ID:           strings.TrimSpace(ys.ID),
			Title:        strings.TrimSpace(ys.Title),
			Instructions: make([]domain.Instruction, 0, len(ys.Instructions)),
		}
		for _, yi := range ys.Instructions {
			s.Instructions = append(s.Instructions, domain.Instruction{
				ID:      strings.TrimSpace(yi.ID),
				Text:    strings.TrimSpace(yi.Text),
				Alert:   yi.Alert,
				Timing:  strings.TrimSpace(yi.Timing),
				Details: strings.TrimSpace(yi.Details),
				Tips:    yi.Tips,
			})
		}
		t.Sections = append(t.Sections, s)
	}
	return t
}

func validateTemplate(t domain.TherapyTemplate) error {
	if t.ID == "" {
		return fmt.Errorf("%w: template without id", ErrInvalidCatalog)
	}
	if len(t.Sections) == 0 {
		return fmt.Errorf("%w: template %q has no sections", ErrInvalidCatalog, t.ID)
	}
	seenSections := make(map[string]struct{}, len(t.Sections))
	for _, s := range t.Sections {
		if s.ID == "" {
			return fmt.Errorf("%w: template %q has a section without id", ErrInvalidCatalog, t.ID)
		}
		if _, dup := seenSections[s.ID]; dup {
			return fmt.Errorf("%w: template %q repeats section %q", ErrInvalidCatalog, t.ID, s.ID)
		}
		seenSections[s.ID] = struct{}{}

		seen := make(map[string]struct{}, len(s.Instructions))
		for _, ins := range s.Instructions {
			if ins.ID == "" {
				return fmt.Errorf("%w: section %q/%q has an instruction without id", ErrInvalidCatalog, t.ID, s.ID)
			}
			if _, dup := seen[ins.ID]; dup {
				return fmt.Errorf("%w: section %q/%q repeats instruction %q", ErrInvalidCatalog, t.ID, s.ID, ins.ID)
			}
			seen[ins.ID] = struct{}{}
		}
	}
	return nil
}

// Get devuelve una copia de la plantilla; ok=false si el id no existe.
func (c *Catalog) Get(id string) (domain.TherapyTemplate, bool) {
	if c == nil {
		return domain.TherapyTemplate{}, false
	}
	t, ok := c.templates[strings.TrimSpace(id)]
	if !ok {
		return domain.TherapyTemplate{}, false
	}
	return t.Clone(), true
}

// IDs lista los ids en el orden de carga.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Len devuelve la cantidad de plantillas.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.templates)
}

// TemplateSummary es la vista resumida usada por el listado de terapias.
type TemplateSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	SectionCount     int    `json:"sectionCount"`
	InstructionCount int    `json:"instructionCount"`
}

// Summaries devuelve un resumen por plantilla ordenado por id.
func (c *Catalog) Summaries() []TemplateSummary {
	if c == nil {
		return []TemplateSummary{}
	}
	out := make([]TemplateSummary, 0, len(c.templates))
	for _, t := range c.templates {
		count := 0
		for _, s := range t.Sections {
			count += len(s.Instructions)
		}
		out = append(out, TemplateSummary{
			ID:               t.ID,
			Name:             t.Name,
			Description:      t.Description,
			SectionCount:     len(t.Sections),
			InstructionCount: count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
