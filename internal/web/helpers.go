package web

import (
	"html"
	"strconv"
	"time"
)

func escape(value string) string {
	if value == "" {
		return ""
	}
	return html.EscapeString(value)
}

func itoa(value int) string {
	return strconv.Itoa(value)
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02 15:04:05")
}

func page(title, body string) string {
	return `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>` + escape(title) + `</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
` + body + `  </body>
</html>
`
}
