// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

// =============================================================================
// STYLE SHEETS
// =============================================================================

// Style sheets are constants and are embedded verbatim. Course text never
// reaches them.

const baseCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
:root {
  --primary-color: #4f46e5;
  --primary-dark: #4338ca;
  --text-primary: #1e293b;
  --text-secondary: #64748b;
  --bg-primary: #ffffff;
  --bg-secondary: #f8fafc;
  --border-color: #e2e8f0;
  --success-color: #10b981;
}
body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
  line-height: 1.6;
  color: var(--text-primary);
  background: var(--bg-secondary);
}
.container { max-width: 1200px; margin: 0 auto; padding: 2rem; }
footer {
  text-align: center;
  padding: 2rem;
  color: var(--text-secondary);
  font-size: 0.875rem;
  margin-top: 4rem;
  border-top: 2px solid var(--border-color);
}
.credits { font-weight: 600; margin-bottom: 0.5rem; color: var(--text-primary); }
.credits-meta { font-size: 0.8rem; color: var(--text-secondary); }
`

const moduleCSS = `
.module-section { background: white; padding: 3rem; border-radius: 1rem; margin-bottom: 2rem; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.module-header { border-bottom: 3px solid var(--primary-color); padding-bottom: 1rem; margin-bottom: 2rem; }
.module-header .back-link { color: var(--primary-color); text-decoration: none; font-size: 0.9rem; }
.module-number {
  display: inline-block;
  background: var(--primary-color);
  color: white;
  padding: 0.25rem 0.75rem;
  border-radius: 0.25rem;
  font-size: 0.875rem;
  font-weight: 600;
  margin: 0.5rem 0;
}
.module-header h1, .module-header h2 { font-size: 2rem; margin: 0.5rem 0; }
.module-subtitle { color: var(--text-secondary); font-size: 1.1rem; font-style: italic; }
.module-image { margin: 2rem 0; border-radius: 0.5rem; overflow: hidden; background: var(--bg-secondary); }
.module-image img { width: 100%; height: auto; display: block; }
.module-image-placeholder { margin: 2rem 0; border: 2px dashed var(--border-color); border-radius: 0.5rem; }
.image-caption { padding: 1rem; color: var(--text-secondary); font-size: 0.875rem; font-style: italic; }
.description { font-size: 1.1rem; line-height: 1.8; margin-bottom: 2rem; }
.description p { margin-bottom: 1rem; }
.key-points { background: var(--bg-secondary); padding: 2rem; border-radius: 0.5rem; margin: 2rem 0; border-left: 4px solid var(--success-color); }
.key-points h3 { margin-bottom: 1rem; font-size: 1.25rem; }
.key-points ul { list-style: none; }
.key-points li { padding: 0.75rem 0 0.75rem 2rem; position: relative; }
.key-points li:before { content: "✓"; position: absolute; left: 0; color: var(--success-color); font-weight: bold; }
.quiz-section { margin-top: 3rem; padding-top: 2rem; border-top: 2px solid var(--border-color); }
.quiz-section h3 { margin-bottom: 1.5rem; font-size: 1.5rem; }
.quiz-item { background: var(--bg-secondary); padding: 1.5rem; border-radius: 0.5rem; margin-bottom: 1.5rem; }
.quiz-item .question { font-weight: 600; font-size: 1.1rem; margin-bottom: 1rem; }
.quiz-options { list-style: none; }
.quiz-options li { padding: 0.75rem 1rem; margin: 0.5rem 0; background: white; border-radius: 0.25rem; border: 1px solid var(--border-color); }
.quiz-options li.correct { border-color: var(--success-color); background: #f0fdf4; }
.correct-badge { color: var(--success-color); font-weight: 600; margin-left: 0.5rem; }
.course-context { background: #f1f5f9; padding: 1rem; border-radius: 0.5rem; font-size: 0.875rem; color: var(--text-secondary); margin-top: 2rem; }
@media (max-width: 768px) {
  .container { padding: 1rem; }
  .module-section { padding: 1.5rem; }
}
@media print {
  body { background: white; }
  .back-link { display: none; }
  .module-section { box-shadow: none; page-break-inside: avoid; }
}
`

const siteIndexCSS = baseCSS + `
header.site-header {
  background: linear-gradient(135deg, var(--primary-color) 0%, #7c3aed 100%);
  color: white;
  padding: 3rem 2rem;
  margin-bottom: 2rem;
  border-radius: 0 0 1rem 1rem;
}
header.site-header h1 { font-size: 2.5rem; margin-bottom: 1rem; }
header.site-header .description { font-size: 1.1rem; opacity: 0.95; max-width: 800px; }
.course-meta { background: white; padding: 2rem; border-radius: 1rem; margin-bottom: 2rem; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.meta-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(250px, 1fr)); gap: 2rem; }
.meta-item h3 { color: var(--primary-color); font-size: 0.875rem; text-transform: uppercase; letter-spacing: 0.05em; margin-bottom: 0.5rem; }
.meta-item p, .meta-item ul { color: var(--text-secondary); }
.meta-item ul { list-style: none; }
.meta-item li { padding: 0.25rem 0 0.25rem 1.5rem; position: relative; }
.meta-item li:before { content: "•"; position: absolute; left: 0; color: var(--primary-color); }
.modules-list h2 { margin: 2rem 0 1.5rem; font-size: 1.75rem; }
.module-card { background: white; padding: 1.5rem; border-radius: 0.5rem; margin-bottom: 1rem; border: 1px solid var(--border-color); transition: all 0.2s; }
.module-card:hover { border-color: var(--primary-color); box-shadow: 0 2px 8px rgba(79, 70, 229, 0.1); }
.module-link { text-decoration: none; color: inherit; display: block; }
.module-link .module-number {
  display: inline-block;
  background: var(--primary-color);
  color: white;
  padding: 0.25rem 0.75rem;
  border-radius: 0.25rem;
  font-size: 0.875rem;
  font-weight: 600;
  margin-bottom: 0.5rem;
}
.module-link h3 { margin: 0.5rem 0; font-size: 1.25rem; }
.module-link .module-subtitle { color: var(--text-secondary); font-size: 0.95rem; }
@media (max-width: 768px) {
  .container { padding: 1rem; }
  header.site-header { padding: 2rem 1rem; }
  header.site-header h1 { font-size: 1.75rem; }
}
`

const siteModuleCSS = baseCSS + moduleCSS

const standaloneCSS = baseCSS + moduleCSS + `
body { padding: 2rem; }
.container { max-width: 900px; background: white; border-radius: 1rem; box-shadow: 0 4px 6px rgba(0,0,0,0.1); }
`

const lmsCSS = `
body {
  font-family: 'Lato', 'Helvetica Neue', Helvetica, Arial, sans-serif;
  line-height: 1.6;
  color: #2d3b45;
  max-width: 1000px;
  margin: 0 auto;
  padding: 20px;
  background: #ffffff;
}
.canvas-header { background: #2d3b45; color: white; padding: 30px; margin-bottom: 30px; border-radius: 4px; }
.canvas-header h1 { margin: 0 0 10px 0; font-size: 2rem; }
.canvas-meta { background: #f5f5f5; padding: 20px; margin-bottom: 30px; border-radius: 4px; border-left: 4px solid #2d3b45; }
.canvas-meta h2 { margin-top: 0; color: #2d3b45; }
.module-header h2 { color: #2d3b45; border-bottom: 3px solid #2d3b45; padding-bottom: 10px; }
.module-number { color: #666; font-size: 0.9rem; }
.module-subtitle { color: #666; font-style: italic; font-size: 1.1rem; }
.module-image { margin: 1.5rem 0; text-align: center; }
.module-image img { max-width: 100%; height: auto; border-radius: 8px; }
.module-image-placeholder { margin: 1.5rem 0; padding: 1rem; border: 1px dashed #ddd; color: #666; font-style: italic; }
.key-points { background: #e8f4f8; padding: 20px; border-radius: 4px; margin: 20px 0; }
.quiz-item { background: #f9f9f9; padding: 20px; margin: 20px 0; border-left: 4px solid #2d3b45; border-radius: 4px; }
.quiz-item .question { font-weight: 600; margin-bottom: 10px; }
.quiz-options { list-style: none; padding-left: 0; }
.quiz-options li { padding: 8px; margin: 5px 0; background: white; border-radius: 4px; border: 1px solid #ddd; }
.quiz-options li.correct { border-color: #10b981; background: #f0fdf4; }
.correct-badge { color: #10b981; font-weight: 600; }
footer { margin-top: 40px; padding: 20px; border-top: 2px solid #ddd; text-align: center; color: #666; font-size: 0.9em; }
hr { border: none; border-top: 2px solid #ddd; margin: 40px 0; }
`

// lmsInline are per-element styles for module sections pasted into an LMS
// editor, which strips <style> blocks.
var lmsInline = map[string]string{
	"section":     "margin-bottom: 3rem; padding-bottom: 2rem; border-bottom: 2px solid #ddd;",
	"number":      "display: block; color: #666; font-size: 0.9rem;",
	"title":       "color: #2d3b45; font-size: 1.75rem; margin-bottom: 0.5rem; padding-bottom: 0.5rem; border-bottom: 3px solid #2d3b45;",
	"subtitle":    "color: #666; font-style: italic; font-size: 1.1rem; margin-bottom: 1.5rem;",
	"image":       "margin: 1.5rem 0; text-align: center;",
	"img":         "max-width: 100%; height: auto; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);",
	"placeholder": "margin: 1.5rem 0; padding: 1rem; border: 1px dashed #ddd; color: #666; font-style: italic;",
	"heading":     "color: #2d3b45; font-size: 1.3rem; margin-top: 2rem; margin-bottom: 1rem;",
	"description": "line-height: 1.8; color: #333; margin-bottom: 2rem;",
	"paragraph":   "margin-bottom: 1rem;",
	"list":        "line-height: 1.8; color: #333; margin-bottom: 2rem; padding-left: 1.5rem;",
	"item":        "margin-bottom: 0.75rem;",
	"quiz":        "background-color: #f9f9f9; padding: 1.5rem; margin: 1.5rem 0; border-left: 4px solid #2d3b45; border-radius: 4px;",
	"question":    "font-weight: 600; font-size: 1.1rem; color: #2d3b45; margin-bottom: 1rem;",
	"options":     "list-style: none; padding-left: 0; margin: 0;",
	"option":      "padding: 0.75rem 1rem; margin: 0.5rem 0; background: white; border-radius: 4px; border: 1px solid #ddd;",
	"correct":     "padding: 0.75rem 1rem; margin: 0.5rem 0; border-radius: 4px; border: 1px solid #10b981; background-color: #f0fdf4;",
	"badge":       "color: #10b981; font-weight: 600;",
}
