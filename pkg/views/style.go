package views

// Stylesheet is the inline CSS shipped with every page.
const Stylesheet = `
:root {
  --bg: #f7f5ef; --fg: #1d1d1b; --muted: #6b6b66; --card: #fffdf8;
  --green: #2f9e44; --blue: #1c7ed6; --violet: #7048e8; --amber: #e8a10c;
}
* { box-sizing: border-box; }
body {
  margin: 0; background: var(--bg); color: var(--fg);
  font: 14px/1.5 ui-monospace, SFMono-Regular, Menlo, Consolas, monospace;
  background-image: radial-gradient(rgba(0,0,0,.06) 1px, transparent 1px);
  background-size: 16px 16px;
}
a { color: inherit; text-decoration: none; }
.shell { min-height: 100vh; display: flex; flex-direction: column; }
.skip-link { position: absolute; left: -999px; }
.skip-link:focus { left: 1rem; top: 1rem; background: var(--card); padding: .5rem; }
header, footer {
  display: flex; justify-content: space-between; align-items: center;
  padding: .75rem 1.5rem; border-color: rgba(0,0,0,.1); border-style: solid; border-width: 0;
}
header { border-bottom-width: 2px; }
footer { border-top-width: 2px; font-size: 12px; color: var(--muted); }
.brand { display: flex; gap: .75rem; text-transform: uppercase; letter-spacing: .05em; }
main { flex: 1; width: 100%; max-width: 72rem; margin: 0 auto; padding: 2rem 1.5rem; }
.muted { color: var(--muted); }
.cursor { animation: blink 1s steps(1) infinite; color: var(--muted); }
@keyframes blink { 50% { opacity: 0; } }
.stack > * + * { margin-top: 1.5rem; }
.stack-lg > * + * { margin-top: 3.5rem; }
.hero { text-align: center; padding: 2rem 0; }
.hero h1 { font-size: 2.25rem; margin: 0 0 1rem; }
.category-head { display: flex; align-items: center; gap: .75rem; }
.category-head h2 { margin: 0; font-size: 1.1rem; }
.rule { flex: 1; border-top: 2px dashed rgba(0,0,0,.1); }
.dot { width: .6rem; height: .6rem; border-radius: 50%; display: inline-block; }
.dot-creational { background: var(--green); }
.dot-structural { background: var(--blue); }
.dot-behavioral { background: var(--violet); }
.grid { display: grid; gap: 1.25rem; grid-template-columns: repeat(auto-fill, minmax(16rem, 1fr)); margin-top: 1.25rem; }
.card { display: flex; flex-direction: column; height: 100%; border: 2px solid rgba(0,0,0,.15); background: var(--card); }
.card:hover { border-style: dashed; border-color: rgba(0,0,0,.4); }
.card-art { padding: 1rem; border-bottom: 2px solid rgba(0,0,0,.08); background: var(--bg); }
.card-art pre { font-size: 10px; margin: 0; overflow: hidden; opacity: .7; }
.card-body { padding: 1rem; }
.card-body h3 { margin: 0 0 .5rem; font-size: 14px; }
.card-body p { margin: 0; font-size: 12px; }
.loading { display: flex; gap: .5rem; padding: 3rem 0; color: var(--muted); }
.alert { border: 2px solid rgba(0,0,0,.2); padding: 1.5rem; }
.alert-title { font-weight: bold; margin: 0; }
.alert .muted, .hint { font-size: 12px; margin: .25rem 0 0; }
.hint a { text-decoration: underline; }
.back { font-size: 12px; font-weight: bold; color: var(--muted); }
.breadcrumb { display: flex; gap: .5rem; font-size: 12px; color: var(--muted); }
.breadcrumb strong { color: var(--fg); }
.detail { display: grid; gap: 1.5rem; grid-template-columns: 2fr 1fr; }
.detail-main > * + *, .detail-side > * + * { margin-top: 1.25rem; }
.panel { border: 2px solid rgba(0,0,0,.15); background: var(--card); }
.panel > :not(.panel-title) { margin: 1rem 1.25rem; }
.panel h1 { font-size: 1.5rem; }
.panel-creational { border-color: rgba(47,158,68,.3); }
.panel-structural { border-color: rgba(28,126,214,.3); }
.panel-behavioral { border-color: rgba(112,72,232,.3); }
.panel-ref { border-color: rgba(232,161,12,.4); }
.panel-title {
  padding: .5rem 1.25rem; font-size: 10px; font-weight: bold; text-transform: uppercase;
  letter-spacing: .15em; color: var(--muted); border-bottom: 2px solid rgba(0,0,0,.1);
}
.category-tag { display: flex; gap: .5rem; align-items: center; font-size: 12px; }
.diagram { border: 2px dashed rgba(0,0,0,.15); padding: 1.25rem; background: var(--bg); }
.diagram pre { margin: 0; }
.demo { border: 2px dashed rgba(0,0,0,.2); padding: 2rem; text-align: center; }
dl .row { display: flex; justify-content: space-between; font-size: 12px; padding: .25rem 0; }
dl .row + .row { border-top: 2px dashed rgba(0,0,0,.1); }
dt { color: var(--muted); }
dd { margin: 0; font-weight: bold; }
.panel ul { list-style: none; padding: 0; font-size: 12px; color: var(--muted); }
.sibling { display: flex; justify-content: space-between; padding: .6rem .75rem; font-size: 12px; font-weight: bold; border: 2px solid transparent; }
.sibling:hover { border-color: rgba(0,0,0,.15); }
@media (max-width: 48rem) { .detail { grid-template-columns: 1fr; } .tagline { display: none; } }
`
