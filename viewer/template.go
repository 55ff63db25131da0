package viewer

import "html/template"

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; background: #222; color: #ddd; font-family: sans-serif; text-align: center; }
h1 { font-size: 1.2em; padding: 0.5em; }
img { display: block; max-width: 100%; margin: 0 auto 8px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .SourceURL}}<p><a href="{{.SourceURL}}">{{.SourceURL}}</a></p>{{end}}
{{range .Images}}<img id="p{{.Index}}" src="{{.FileName}}" alt="{{.Index}}" loading="lazy">
{{end}}</body>
</html>
`

var tmpl = template.Must(template.New("index.html").Parse(pageTemplate))
