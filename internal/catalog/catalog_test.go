package catalog

import (
	"errors"
	"testing"

	"vaidya/internal/domain"
)

func TestLoadDefault_VataBastiShape(t *testing.T) {
	c, err := LoadDefault()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	if c.Len() < 5 {
		t.Fatalf("expected at least 5 templates, got %d", c.Len())
	}

	tpl, ok := c.Get("vata-basti")
	if !ok {
		t.Fatalf("expected vata-basti template")
	}
	if len(tpl.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(tpl.Sections))
	}
	for _, s := range tpl.Sections {
		if len(s.Instructions) != 4 {
			t.Fatalf("expected 4 instructions in %s, got %d", s.ID, len(s.Instructions))
		}
		for _, ins := range s.Instructions {
			if ins.Completed {
				t.Fatalf("template instruction %s/%s must start incomplete", s.ID, ins.ID)
			}
		}
	}
}

func TestGet_ReturnsIndependentCopies(t *testing.T) {
	c, err := LoadDefault()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}

	first, _ := c.Get("vata-basti")
	first.Sections[0].Instructions[0].Completed = true
	first.Sections[0].Instructions[0].Tips[0] = "mutated"
	first.Sections = first.Sections[:1]

	second, _ := c.Get("vata-basti")
	if len(second.Sections) != 2 {
		t.Fatalf("expected catalog sections untouched, got %d", len(second.Sections))
	}
	if second.Sections[0].Instructions[0].Completed {
		t.Fatalf("expected catalog completion flag untouched")
	}
	if second.Sections[0].Instructions[0].Tips[0] == "mutated" {
		t.Fatalf("expected catalog tips untouched")
	}
}

func TestGet_UnknownID(t *testing.T) {
	c, err := LoadDefault()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	before := c.Len()
	if _, ok := c.Get("does-not-exist"); ok {
		t.Fatalf("expected unknown id to be absent")
	}
	if c.Len() != before {
		t.Fatalf("lookup must not change the catalog")
	}

	var nilCatalog *Catalog
	if _, ok := nilCatalog.Get("vata-basti"); ok {
		t.Fatalf("expected nil catalog lookup to miss")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		tpls []domain.TherapyTemplate
	}{
		{
			name: "missing id",
			tpls: []domain.TherapyTemplate{{Sections: []domain.Section{{ID: "s"}}}},
		},
		{
			name: "no sections",
			tpls: []domain.TherapyTemplate{{ID: "t"}},
		},
		{
			name: "duplicate template",
			tpls: []domain.TherapyTemplate{
				{ID: "t", Sections: []domain.Section{{ID: "s"}}},
				{ID: "t", Sections: []domain.Section{{ID: "s"}}},
			},
		},
		{
			name: "duplicate instruction",
			tpls: []domain.TherapyTemplate{{ID: "t", Sections: []domain.Section{{
				ID:           "s",
				Instructions: []domain.Instruction{{ID: "a"}, {ID: "a"}},
			}}}},
		},
		{
			name: "duplicate section",
			tpls: []domain.TherapyTemplate{{ID: "t", Sections: []domain.Section{{ID: "s"}, {ID: "s"}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.tpls...); !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestParse_RejectsEmptyAndMalformed(t *testing.T) {
	if _, err := Parse([]byte("version: 1\ntemplates: []\n")); !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog for empty catalog, got %v", err)
	}
	if _, err := Parse([]byte("templates: [")); !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog for malformed yaml, got %v", err)
	}
}

func TestSummaries_SortedWithCounts(t *testing.T) {
	c, err := LoadDefault()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	sums := c.Summaries()
	if len(sums) != c.Len() {
		t.Fatalf("expected %d summaries, got %d", c.Len(), len(sums))
	}
	for i := 1; i < len(sums); i++ {
		if sums[i-1].ID > sums[i].ID {
			t.Fatalf("expected summaries sorted by id, got %q before %q", sums[i-1].ID, sums[i].ID)
		}
	}
	for _, s := range sums {
		if s.ID == "vata-basti" && (s.SectionCount != 2 || s.InstructionCount != 8) {
			t.Fatalf("unexpected vata-basti summary: %+v", s)
		}
	}
}
