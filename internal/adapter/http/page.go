package http

import (
	"html/template"

	"github.com/couchcryptid/vancouver-crime-dashboard/internal/dashboard"
)

// pageData feeds pageTemplate.
type pageData struct {
	Options  []string
	Selected string
	Figures  dashboard.Figures
}

// pageTemplate is the dashboard layout. Figures are embedded for the first
// paint; later selections are fetched from /api/figures.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Vancouver crime dashboard</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js" charset="utf-8"></script>
<style>
body{font-family:"Open Sans",verdana,arial,sans-serif;margin:16px 24px;color:#2a3f5f}
h1{font-size:28px;margin:8px 0}
h3{font-size:16px;font-weight:400;margin:8px 0 16px}
select{width:100%;min-height:8em;font-size:14px}
.chart{min-height:450px;margin-top:16px}
</style>
</head>
<body>
<h1>Vancouver crime dashboard</h1>
<h3>Please select the crime (or multiple/all crimes) to see the statistics per year and their location on the map.</h3>
<div>
<select id="type-dropdown" multiple aria-label="Select a type">
{{- range .Options}}
<option value="{{.}}"{{if eq . $.Selected}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
</div>
<div><div id="year-histplot" class="chart"></div></div>
<div><div id="map" class="chart"></div></div>
<script>
(function () {
  const initial = {{.Figures}};
  const dropdown = document.getElementById('type-dropdown');
  let seq = 0;

  function draw(figs, react) {
    const plot = react ? Plotly.react : Plotly.newPlot;
    plot('year-histplot', figs.histogram.data, figs.histogram.layout);
    plot('map', figs.map.data, figs.map.layout);
  }

  dropdown.addEventListener('change', async function () {
    const mine = ++seq;
    const types = Array.from(dropdown.selectedOptions, function (o) { return o.value; });
    const resp = await fetch('/api/figures', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({types: types})
    });
    if (!resp.ok || mine !== seq) {
      return;
    }
    const figs = await resp.json();
    // A newer selection may have been drawn while this body was decoding.
    if (mine !== seq) {
      return;
    }
    draw(figs, true);
  });

  draw(initial, false);
})();
</script>
</body>
</html>
`))
