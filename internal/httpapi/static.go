package httpapi

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"priced/internal/predictor"
	"priced/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// indexData is the view model for the form page. Values echoes the submitted
// input back into the form after a post.
type indexData struct {
	Schema types.SchemaResponse
	Result *types.PredictResponse
	Error  string
	Values predictor.Input
}

func renderIndex(w http.ResponseWriter, status int, data indexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, data); err != nil {
		if zlog != nil {
			zlog.Error().Err(err).Msg("render index")
		} else {
			log.Printf("render index: %v", err)
		}
	}
}
