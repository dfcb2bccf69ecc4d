// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

// Instructions is a titled list of steps shown after a bundle is saved.
type Instructions struct {
	Title string
	Steps []string
	Tip   string
}

// InstructionsFor returns the follow-up steps for f, or false when the
// format needs none.
func InstructionsFor(f Format) (Instructions, bool) {
	switch f {
	case FormatSite:
		return Instructions{
			Title: "Cómo desplegar el sitio web estático",
			Steps: []string{
				"GitHub Pages: crea un repositorio, sube el contenido del ZIP y activa Settings > Pages con la rama main y la carpeta / (root).",
				"Netlify: descomprime el ZIP y arrastra la carpeta a la zona de deploy de https://netlify.com.",
				"Vercel: instala la CLI con `npm i -g vercel` y ejecuta `vercel` en la carpeta descomprimida.",
				"Local: abre index.html en un navegador o sirve la carpeta con cualquier servidor web.",
			},
			Tip: "El sitio es completamente autónomo. No requiere servidor ni base de datos.",
		}, true
	case FormatLMS:
		return Instructions{
			Title: "Cómo importar a Canvas LMS",
			Steps: []string{
				"Descomprime el ZIP. La carpeta canvas contiene una página por módulo y una página de resumen.",
				"En Canvas, ve a tu curso, luego Páginas y + Página, y dale el nombre del módulo.",
				"Abre el editor HTML de Canvas y pega TODO el contenido de module-NN.html.",
				"Guarda y publica la página. Repite para cada módulo.",
			},
			Tip: "canvas/index.html reúne todos los módulos en una sola página si prefieres importar el curso completo.",
		}, true
	default:
		return Instructions{}, false
	}
}
