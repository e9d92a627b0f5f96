package service

import (
	"reflect"
	"testing"
	"time"

	"vaidya/internal/catalog"
	"vaidya/internal/domain"
)

func loadTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.LoadDefault()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

func newTestFactory(src TemplateSource) *TherapyModuleFactory {
	f := NewTherapyModuleFactory(src)
	n := 0
	f.newID = func() string {
		n++
		return "module-" + string(rune('0'+n))
	}
	f.now = func() time.Time { return time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC) }
	return f
}

func TestInstantiate_UnknownTemplate(t *testing.T) {
	c := loadTestCatalog(t)
	before := c.Summaries()

	f := newTestFactory(c)
	m, ok := f.Instantiate("does-not-exist", "Clinic", "2026-05-05", "09:00", nil)
	if ok || m != nil {
		t.Fatalf("expected nil module for unknown template, got %+v", m)
	}
	if !reflect.DeepEqual(before, c.Summaries()) {
		t.Fatalf("catalog changed after failed instantiation")
	}

	var nilFactory *TherapyModuleFactory
	if m, ok := nilFactory.Instantiate("vata-basti", "Clinic", "", "", nil); ok || m != nil {
		t.Fatalf("expected nil factory to return nil")
	}
}

func TestInstantiate_StampsBookingContext(t *testing.T) {
	f := newTestFactory(loadTestCatalog(t))
	booking := "bk-77"

	m, ok := f.Instantiate("vata-basti", "Sukha Clinic", "2026-05-05", "09:00", &booking)
	if !ok || m == nil {
		t.Fatalf("expected module")
	}
	if m.ID != "module-1" || m.TemplateID != "vata-basti" || m.ClinicName != "Sukha Clinic" {
		t.Fatalf("unexpected module header %+v", m)
	}
	if m.ScheduledDate != "2026-05-05" || m.ScheduledTime != "09:00" {
		t.Fatalf("unexpected schedule %s %s", m.ScheduledDate, m.ScheduledTime)
	}
	if m.BookingID == nil || *m.BookingID != "bk-77" || m.Key() != "bk-77" {
		t.Fatalf("unexpected booking id %v", m.BookingID)
	}
	if m.OverallProgress != 0 || m.Version != 0 || m.CreatedAt.IsZero() {
		t.Fatalf("unexpected initial state %+v", m)
	}

	// El id de reserva se copia: cambiar la variable del llamador no afecta al modulo.
	booking = "other"
	if *m.BookingID != "bk-77" {
		t.Fatalf("module shares booking id pointer with caller")
	}

	completed, total := m.InstructionCount()
	if completed != 0 || total != 8 || len(m.Sections) != 2 {
		t.Fatalf("expected 2 sections / 8 instructions, got %d sections, %d/%d", len(m.Sections), completed, total)
	}

	second, _ := f.Instantiate("vata-basti", "Sukha Clinic", "2026-05-05", "09:00", nil)
	if second.ID == m.ID {
		t.Fatalf("expected fresh ids per instance")
	}
	if second.Key() != second.ID {
		t.Fatalf("module without booking should be keyed by its id")
	}
}

func TestInstantiate_ResetsCompletionFlags(t *testing.T) {
	tpl := domain.TherapyTemplate{
		ID:   "pre-done",
		Name: "Pre done",
		Sections: []domain.Section{{ID: "s1", Title: "S1", Instructions: []domain.Instruction{
			{ID: "a", Text: "A", Completed: true},
			{ID: "b", Text: "B", Completed: true},
		}}},
	}
	c, err := catalog.New(tpl)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	m, ok := newTestFactory(c).Instantiate("pre-done", "Clinic", "", "", nil)
	if !ok {
		t.Fatalf("expected module")
	}
	if completed, _ := m.InstructionCount(); completed != 0 {
		t.Fatalf("expected all flags reset, got %d completed", completed)
	}
	stored, _ := c.Get("pre-done")
	if !stored.Sections[0].Instructions[0].Completed {
		t.Fatalf("template default was modified by instantiation")
	}
}

func TestInstantiate_InstancesAreStructurallyIndependent(t *testing.T) {
	c := loadTestCatalog(t)
	f := newTestFactory(c)
	pristine, _ := c.Get("vata-basti")

	a, _ := f.Instantiate("vata-basti", "Clinic A", "", "", nil)
	b, _ := f.Instantiate("vata-basti", "Clinic B", "", "", nil)

	a.Sections[0].Instructions[0].Completed = true
	a.Sections[0].Instructions[0].Text = "changed"
	a.Sections[0].Instructions[0].Tips[0] = "changed tip"
	a.Sections[1].Instructions = a.Sections[1].Instructions[:1]
	a.Sections[0].Title = "changed title"

	if b.Sections[0].Instructions[0].Completed || b.Sections[0].Instructions[0].Text == "changed" {
		t.Fatalf("sibling module affected by mutation")
	}
	if b.Sections[0].Instructions[0].Tips[0] == "changed tip" || len(b.Sections[1].Instructions) != 4 {
		t.Fatalf("sibling module shares nested slices")
	}

	after, _ := c.Get("vata-basti")
	if !reflect.DeepEqual(pristine, after) {
		t.Fatalf("template affected by module mutation")
	}
}
