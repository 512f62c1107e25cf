package dashboard

import (
	"fmt"
	"html"

	"github.com/dmitrymomot/dashboard/core/handler"
	"github.com/dmitrymomot/dashboard/core/response"
)

// page renders a placeholder for a dashboard view. Charts and maps are
// drawn client-side.
func page(title string) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return response.HTML(fmt.Sprintf(
			"<!doctype html><html><head><meta charset=\"utf-8\"><title>%[1]s</title></head>"+
				"<body><main id=\"app\" data-view=\"%[1]s\"></main></body></html>",
			html.EscapeString(title),
		))
	}
}
