package domain

import "time"

// Instruction es un paso de la lista de control de una terapia.
type Instruction struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Alert     bool     `json:"alert,omitempty"`
	Timing    string   `json:"timing,omitempty"` // Ej: "2 horas antes"
	Details   string   `json:"details,omitempty"`
	Tips      []string `json:"tips,omitempty"`
	Completed bool     `json:"completed"`
}

// Section agrupa instrucciones (pre-procedimiento, post-procedimiento).
type Section struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Instructions []Instruction `json:"instructions"`
}

// TherapyTemplate es una entrada de solo lectura del catalogo.
type TherapyTemplate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Sections    []Section `json:"sections"`
}

// TherapyModule es la instancia mutable de una plantilla para una reserva.
type TherapyModule struct {
	ID              string    `json:"id"`
	TemplateID      string    `json:"templateId"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	ClinicName      string    `json:"clinicName"`
	ScheduledDate   string    `json:"scheduledDate"`
	ScheduledTime   string    `json:"scheduledTime"`
	BookingID       *string   `json:"bookingId,omitempty"`
	PatientID       string    `json:"patientId,omitempty"` // vacio = sin dueño conocido
	Sections        []Section `json:"sections"`
	OverallProgress int       `json:"overallProgress"`
	Version         int       `json:"version"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Key devuelve la clave de persistencia: la reserva si existe, si no el id del modulo.
func (m TherapyModule) Key() string {
	if m.BookingID != nil && *m.BookingID != "" {
		return *m.BookingID
	}
	return m.ID
}

// InstructionCount devuelve completadas y totales sobre todas las secciones.
func (m TherapyModule) InstructionCount() (completed, total int) {
	for _, s := range m.Sections {
		for _, ins := range s.Instructions {
			total++
			if ins.Completed {
				completed++
			}
		}
	}
	return completed, total
}

// Clone copia la instruccion sin compartir el slice de tips.
func (i Instruction) Clone() Instruction {
	out := i
	if i.Tips != nil {
		out.Tips = append([]string(nil), i.Tips...)
	}
	return out
}

// Clone copia la seccion y todas sus instrucciones.
func (s Section) Clone() Section {
	out := Section{ID: s.ID, Title: s.Title}
	if s.Instructions != nil {
		out.Instructions = make([]Instruction, len(s.Instructions))
		for i, ins := range s.Instructions {
			out.Instructions[i] = ins.Clone()
		}
	}
	return out
}

func cloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = s.Clone()
	}
	return out
}

// Clone devuelve una copia estructural de la plantilla.
func (t TherapyTemplate) Clone() TherapyTemplate {
	out := t
	out.Sections = cloneSections(t.Sections)
	return out
}

// Clone devuelve una copia estructural del modulo.
func (m TherapyModule) Clone() TherapyModule {
	out := m
	out.Sections = cloneSections(m.Sections)
	if m.BookingID != nil {
		id := *m.BookingID
		out.BookingID = &id
	}
	return out
}
