package ui

// appCSS is the single stylesheet for the web UI, served inline so the UI
// works without a static asset pipeline.
const appCSS = `
:root { --fg: #1f2328; --muted: #656d76; --border: #d0d7de; --accent: #0969da; --danger: #cf222e; }
* { box-sizing: border-box; }
body { margin: 0; font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; color: var(--fg); }
a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }
.topbar { display: flex; align-items: center; gap: 1rem; padding: 0.75rem 1.5rem; border-bottom: 1px solid var(--border); }
.topbar .brand { font-weight: 700; color: var(--fg); }
.topbar .spacer { flex: 1; }
.topbar .who { color: var(--muted); }
.container { max-width: 720px; margin: 0 auto; padding: 1.5rem; }
.card { border: 1px solid var(--border); border-radius: 6px; padding: 1rem; margin-bottom: 1rem; }
.card h3 { margin: 0 0 0.25rem; }
.meta { color: var(--muted); font-size: 0.85rem; }
.form-row { margin-bottom: 0.75rem; }
.form-row label { display: block; margin-bottom: 0.25rem; font-weight: 600; }
.form-row input, .form-row textarea { width: 100%; padding: 0.5rem; border: 1px solid var(--border); border-radius: 6px; font: inherit; }
button { padding: 0.5rem 1rem; border: 1px solid var(--border); border-radius: 6px; background: var(--accent); color: #fff; font: inherit; cursor: pointer; }
button.danger { background: var(--danger); }
button.plain { background: transparent; color: var(--accent); border: none; padding: 0; }
.flash-error { border: 1px solid var(--danger); color: var(--danger); border-radius: 6px; padding: 0.75rem; margin-bottom: 1rem; }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: 0.5rem; border-bottom: 1px solid var(--border); }
.inline-form { display: inline; }
`
