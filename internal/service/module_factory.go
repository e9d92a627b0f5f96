package service

import (
	"time"

	"github.com/google/uuid"

	"vaidya/internal/domain"
)

// TemplateSource es el registro de plantillas de solo lectura.
type TemplateSource interface {
	Get(id string) (domain.TherapyTemplate, bool)
}

// TherapyModuleFactory crea instancias independientes a partir de plantillas del catalogo.
type TherapyModuleFactory struct {
	templates TemplateSource
	now       func() time.Time
	newID     func() string
}

func NewTherapyModuleFactory(templates TemplateSource) *TherapyModuleFactory {
	return &TherapyModuleFactory{
		templates: templates,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
}

// Instantiate devuelve (nil, false) si la plantilla no existe; no es un error.
// El modulo es una copia estructural con todas las instrucciones sin completar.
func (f *TherapyModuleFactory) Instantiate(templateID, clinicName, scheduledDate, scheduledTime string, bookingID *string) (*domain.TherapyModule, bool) {
	if f == nil || f.templates == nil {
		return nil, false
	}
	tpl, ok := f.templates.Get(templateID)
	if !ok {
		return nil, false
	}

	// Get ya entrega una copia, pero se clona de nuevo para no depender de la fuente.
	sections := tpl.Clone().Sections
	for si := range sections {
		for ii := range sections[si].Instructions {
			sections[si].Instructions[ii].Completed = false
		}
	}

	var booking *string
	if bookingID != nil {
		id := *bookingID
		booking = &id
	}

	now := f.now()
	return &domain.TherapyModule{
		ID:              f.newID(),
		TemplateID:      tpl.ID,
		Name:            tpl.Name,
		Description:     tpl.Description,
		ClinicName:      clinicName,
		ScheduledDate:   scheduledDate,
		ScheduledTime:   scheduledTime,
		BookingID:       booking,
		Sections:        sections,
		OverallProgress: 0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, true
}
