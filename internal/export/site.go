// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/curriculumlab/internal/course"
	"github.com/jeranaias/curriculumlab/internal/markup"
)

// =============================================================================
// STATIC SITE INDEX
// =============================================================================

// SiteIndex builds the static-site landing page: course header, metadata
// grid and one card per module linking to its page.
func (r *Renderer) SiteIndex(c *course.Course) (*markup.Document, error) {
	if err := checkCourse(c); err != nil {
		return nil, err
	}

	objectives := markup.El("ul")
	for _, obj := range c.LearningObjectives {
		objectives.Append(markup.El("li", markup.Text(obj)))
	}

	meta := markup.El("div",
		markup.El("div",
			markup.El("div",
				markup.El("h3", markup.Text(r.labels.Audience)),
				markup.El("p", markup.Text(c.TargetAudience)),
			).Class("meta-item"),
			markup.El("div",
				markup.El("h3", markup.Text(r.labels.Objectives)),
				objectives,
			).Class("meta-item"),
			markup.El("div",
				markup.El("h3", markup.Text(r.labels.Aesthetic)),
				markup.El("p", markup.Text(c.ColorPalette)),
			).Class("meta-item"),
		).Class("meta-grid"),
	).Class("course-meta")

	list := markup.El("div", markup.El("h2", markup.Text(r.labels.Modules))).Class("modules-list")
	total := len(c.Modules)
	for i, mod := range c.Modules {
		list.Append(markup.El("div",
			markup.El("a",
				markup.El("span", markup.Textf("%s %d", r.labels.Module, i+1)).Class("module-number"),
				markup.El("h3", markup.Text(mod.Title)),
				markup.El("p", markup.Text(mod.Subtitle)).Class("module-subtitle"),
			).Attr("href", ModuleFileName(i+1, total)).Class("module-link"),
		).Class("module-card"))
	}

	body := markup.El("body",
		markup.El("header",
			markup.El("div",
				markup.El("h1", markup.Text(c.Title)),
				markup.El("p", markup.Text(c.Description)).Class("description"),
			).Class("container"),
		).Class("site-header"),
		markup.El("main", meta, list).Class("container"),
		r.footer(),
	)

	return &markup.Document{
		Lang:  r.lang,
		Title: c.Title,
		Meta: map[string]string{
			"description": c.Description,
			"author":      r.branding.AppName,
		},
		Head: []markup.Node{markup.StyleSheet(siteIndexCSS)},
		Body: body,
	}, nil
}

// RenderSiteIndex renders the static-site landing page to bytes.
func (r *Renderer) RenderSiteIndex(c *course.Course) ([]byte, error) {
	doc, err := r.SiteIndex(c)
	if err != nil {
		return nil, err
	}
	return []byte(markup.Render(doc)), nil
}

// =============================================================================
// DEPLOYMENT GUIDE
// =============================================================================

// RenderReadme renders the README.md placed in the static-site bundle.
// Besides the title and description it only lists the bundle's files.
func (r *Renderer) RenderReadme(c *course.Course) ([]byte, error) {
	if err := checkCourse(c); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", c.Title))
	sb.WriteString(fmt.Sprintf("## %s\n\n%s\n\n", r.labels.Description, c.Description))

	sb.WriteString("## Instrucciones de Despliegue\n\n")
	sb.WriteString("### Opción 1: GitHub Pages\n\n")
	sb.WriteString("1. Crea un nuevo repositorio en GitHub\n")
	sb.WriteString("2. Sube todos los archivos de esta carpeta\n")
	sb.WriteString("3. Ve a Settings > Pages\n")
	sb.WriteString("4. Selecciona la rama main y la carpeta / (root)\n")
	sb.WriteString("5. Tu sitio estará disponible en: `https://tu-usuario.github.io/nombre-repo/`\n\n")
	sb.WriteString("### Opción 2: Netlify\n\n")
	sb.WriteString("1. Ve a [Netlify](https://netlify.com)\n")
	sb.WriteString("2. Arrastra esta carpeta a la zona de deploy\n")
	sb.WriteString("3. Tu sitio estará disponible inmediatamente\n\n")
	sb.WriteString("### Opción 3: Vercel\n\n")
	sb.WriteString("1. Instala Vercel CLI: `npm i -g vercel`\n")
	sb.WriteString("2. Ejecuta `vercel` en esta carpeta\n")
	sb.WriteString("3. Sigue las instrucciones\n\n")
	sb.WriteString("### Opción 4: Servidor Web Local\n\n")
	sb.WriteString("Abre `index.html` en un navegador o sirve la carpeta con cualquier servidor web, por ejemplo `python3 -m http.server`.\n\n")

	sb.WriteString("## Estructura de Archivos\n\n")
	sb.WriteString("- `index.html` - Página principal del curso\n")
	sb.WriteString("- `README.md` - Este archivo\n")
	total := len(c.Modules)
	for i, mod := range c.Modules {
		sb.WriteString(fmt.Sprintf("- `%s` - %s %d: %s\n", ModuleFileName(i+1, total), r.labels.Module, i+1, mod.Title))
	}

	sb.WriteString("\n## Personalización\n\n")
	sb.WriteString("Puedes editar los archivos HTML directamente para personalizar colores, fuentes o estructura.\n\n")
	sb.WriteString("## Licencia\n\n")
	sb.WriteString(r.branding.Attribution + "\n\n")
	sb.WriteString(r.branding.Credits + "\n")

	return []byte(sb.String()), nil
}
