// Package pdf stamps attendee details onto certificate templates.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"eventpass/internal/domain"
)

const (
	nameStyle       = "font:Helvetica-Bold, points:28, position:c, offset:0 30, scalefactor:1 abs, rotation:0, fillcolor:#000000"
	identifierStyle = "font:Helvetica, points:16, position:c, offset:0 -10, scalefactor:1 abs, rotation:0, fillcolor:#333333"
)

type renderer struct {
	conf *model.Configuration
}

var firstPage = []string{"1"}

// NewRenderer returns a CertificateRenderer that stamps the name and identifier centered on
// the first page of the template. Only that page is kept in the output.
func NewRenderer() domain.CertificateRenderer {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &renderer{conf: conf}
}

func (r *renderer) Render(ctx context.Context, template []byte, name, identifier string) ([]byte, error) {
	if len(template) == 0 {
		return nil, fmt.Errorf("%w: empty certificate template", domain.ErrInvalidInput)
	}
	out := template
	for _, stamp := range []struct {
		text  string
		style string
	}{
		{name, nameStyle},
		{"Identificación: " + identifier, identifierStyle},
	} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		wm, err := api.TextWatermark(stamp.text, stamp.style, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("build stamp: %w", err)
		}
		var buf bytes.Buffer
		if err := api.AddWatermarks(bytes.NewReader(out), &buf, firstPage, wm, r.conf); err != nil {
			return nil, fmt.Errorf("%w: stamp certificate: %v", domain.ErrInvalidInput, err)
		}
		out = buf.Bytes()
	}
	var page bytes.Buffer
	if err := api.Trim(bytes.NewReader(out), &page, firstPage, r.conf); err != nil {
		return nil, fmt.Errorf("%w: keep first page: %v", domain.ErrInvalidInput, err)
	}
	return page.Bytes(), nil
}
