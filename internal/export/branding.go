// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

// =============================================================================
// BRANDING
// =============================================================================

// Branding carries the attribution printed in every export. It is copied
// into a Renderer at construction and never read from globals.
type Branding struct {
	AppName     string `toml:"app_name" json:"app_name"`
	Attribution string `toml:"attribution" json:"attribution"`
	Credits     string `toml:"credits" json:"credits"`
	Author      string `toml:"author" json:"author"`
	Year        int    `toml:"year" json:"year"`
}

// DefaultBranding returns the stock CurriculumLab attribution.
func DefaultBranding() Branding {
	return Branding{
		AppName:     "CurriculumLab",
		Attribution: "Diseñado y publicado con CurriculumLab, un laboratorio digital de diseño pedagógico y experimentación curricular.",
		Credits:     "CurriculumLab · Diseño pedagógico y desarrollo: Patricia Valladares · 2025",
		Author:      "Patricia Valladares",
		Year:        2025,
	}
}

// =============================================================================
// LABELS
// =============================================================================

// Labels are the human-visible strings placed around course content.
// Empty fields fall back to the defaults.
type Labels struct {
	Module         string `toml:"module" json:"module"`
	Of             string `toml:"of" json:"of"`
	Question       string `toml:"question" json:"question"`
	Description    string `toml:"description" json:"description"`
	KeyPoints      string `toml:"key_points" json:"key_points"`
	Quiz           string `toml:"quiz" json:"quiz"`
	QuizShort      string `toml:"quiz_short" json:"quiz_short"`
	Correct        string `toml:"correct" json:"correct"`
	BackToCourse   string `toml:"back_to_course" json:"back_to_course"`
	Audience       string `toml:"audience" json:"audience"`
	Objectives     string `toml:"objectives" json:"objectives"`
	Aesthetic      string `toml:"aesthetic" json:"aesthetic"`
	Modules        string `toml:"modules" json:"modules"`
	CourseDetails  string `toml:"course_details" json:"course_details"`
	CourseInfo     string `toml:"course_info" json:"course_info"`
	CourseContext  string `toml:"course_context" json:"course_context"`
	Exported       string `toml:"exported" json:"exported"`
	SuggestedImage string `toml:"suggested_image" json:"suggested_image"`
	ModuleFile     string `toml:"module_file" json:"module_file"`
	ArchiveFailed  string `toml:"archive_failed" json:"archive_failed"`
	ExportFailed   string `toml:"export_failed" json:"export_failed"`
}

// DefaultLabels returns the Spanish labels used by the authoring tool.
func DefaultLabels() Labels {
	return Labels{
		Module:         "Módulo",
		Of:             "de",
		Question:       "Pregunta",
		Description:    "Descripción",
		KeyPoints:      "Puntos Clave",
		Quiz:           "Evaluación del Módulo",
		QuizShort:      "Evaluación",
		Correct:        "Respuesta Correcta",
		BackToCourse:   "← Volver al curso",
		Audience:       "Público Objetivo",
		Objectives:     "Objetivos de Aprendizaje",
		Aesthetic:      "Estética Sugerida",
		Modules:        "Módulos del Curso",
		CourseDetails:  "Detalles del Curso",
		CourseInfo:     "Información del Curso",
		CourseContext:  "Contexto del Curso",
		Exported:       "Exportado",
		SuggestedImage: "Imagen sugerida",
		ModuleFile:     "Modulo",
		ArchiveFailed:  "Error al generar el paquete ZIP. Por favor, intenta de nuevo.",
		ExportFailed:   "No se pudo exportar el curso. Por favor, intenta de nuevo.",
	}
}

// WithDefaults fills empty fields from DefaultLabels.
func (l Labels) WithDefaults() Labels {
	d := DefaultLabels()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&l.Module, d.Module)
	fill(&l.Of, d.Of)
	fill(&l.Question, d.Question)
	fill(&l.Description, d.Description)
	fill(&l.KeyPoints, d.KeyPoints)
	fill(&l.Quiz, d.Quiz)
	fill(&l.QuizShort, d.QuizShort)
	fill(&l.Correct, d.Correct)
	fill(&l.BackToCourse, d.BackToCourse)
	fill(&l.Audience, d.Audience)
	fill(&l.Objectives, d.Objectives)
	fill(&l.Aesthetic, d.Aesthetic)
	fill(&l.Modules, d.Modules)
	fill(&l.CourseDetails, d.CourseDetails)
	fill(&l.CourseInfo, d.CourseInfo)
	fill(&l.CourseContext, d.CourseContext)
	fill(&l.Exported, d.Exported)
	fill(&l.SuggestedImage, d.SuggestedImage)
	fill(&l.ModuleFile, d.ModuleFile)
	fill(&l.ArchiveFailed, d.ArchiveFailed)
	fill(&l.ExportFailed, d.ExportFailed)
	return l
}
