package label

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// batchLabel groups labels printed in the same sorting batch.
const batchLabel = "Batch-001-HEL"

const labelHTMLTemplate = `<!doctype html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8" />
  <title>{{.Strings.Title}} {{.TrackingCode}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 16px;
      width: 105mm;
      height: 148mm;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .carrier { text-align: center; font-size: 20px; font-weight: bold; }
    .batch { text-align: center; font-size: 16px; font-weight: bold; margin-top: 8px; }
    .tracking { text-align: center; font-size: 13px; margin-top: 6px; }
    .addresses { margin-top: 24px; font-size: 11px; }
    .addresses .label { color: #6b7280; text-transform: uppercase; font-size: 9px; }
    .addresses p { margin: 2px 0 10px; }
    .details { margin-top: 12px; font-size: 11px; }
    .footer { margin-top: 24px; text-align: center; font-size: 9px; color: #6b7280; }
  </style>
</head>
<body>
  <div class="carrier">{{.CarrierName}}</div>
  <div class="batch">{{.Batch}}</div>
  <div class="tracking">{{.Strings.Tracking}}: {{.TrackingCode}}</div>
  <div class="addresses">
    <div class="label">{{.Strings.From}}</div>
    <p>{{.SenderAddress}}</p>
    <div class="label">{{.Strings.To}}</div>
    <p>{{.RecipientAddress}}</p>
  </div>
  <div class="details">
    <div>{{.Strings.Weight}}: {{.Weight}}</div>
    <div>{{.Strings.Dimensions}}: {{.Dimensions}}</div>
  </div>
  <div class="footer">{{.Strings.ShipmentID}}: {{.ShipmentID}}</div>
</body>
</html>`

type labelStrings struct {
	Title      string
	Tracking   string
	From       string
	To         string
	Weight     string
	Dimensions string
	ShipmentID string
}

var labelLocales = map[string]labelStrings{
	"en": {
		Title:      "Shipping label",
		Tracking:   "Tracking",
		From:       "From",
		To:         "To",
		Weight:     "Weight",
		Dimensions: "Dimensions",
		ShipmentID: "Shipment ID",
	},
	"fi": {
		Title:      "Osoitekortti",
		Tracking:   "Seuranta",
		From:       "Lahettaja",
		To:         "Vastaanottaja",
		Weight:     "Paino",
		Dimensions: "Mitat",
		ShipmentID: "Lahetystunnus",
	},
}

// HTMLRenderer writes A6-sized label documents into a local directory.
type HTMLRenderer struct {
	dir    string
	tmpl   *template.Template
	logger *slog.Logger
}

// NewHTMLRenderer parses the label template and ensures the output directory.
func NewHTMLRenderer(dir string, logger *slog.Logger) (*HTMLRenderer, error) {
	if dir == "" {
		return nil, fmt.Errorf("label directory must be provided")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create label directory: %w", err)
	}
	tmpl, err := template.New("label").Parse(labelHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse label template: %w", err)
	}
	return &HTMLRenderer{dir: dir, tmpl: tmpl, logger: logger}, nil
}

type labelData struct {
	Request
	Lang    string
	Batch   string
	Strings labelStrings
}

// Generate renders the label and returns a file URL to it.
func (r *HTMLRenderer) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lang := strings.ToLower(req.Language)
	locale, ok := labelLocales[lang]
	if !ok {
		lang = "en"
		locale = labelLocales[lang]
	}

	var buf strings.Builder
	data := labelData{Request: req, Lang: lang, Batch: batchLabel, Strings: locale}
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render label: %w", err)
	}

	path := filepath.Join(r.dir, req.ShipmentID+".html")
	if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write label: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	r.logger.Info("label generated",
		slog.String("shipment", req.ShipmentID),
		slog.String("path", abs),
	)
	return &Response{LabelURL: "file://" + abs}, nil
}
