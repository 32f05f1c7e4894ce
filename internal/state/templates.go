package state

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"github.com/kk-code-lab/clipfrag/internal/fragment"
	fsutil "github.com/kk-code-lab/clipfrag/internal/fs"
)

const (
	DefaultHeaderTemplate = "以下に、ファイル: {{ .Name }} を入力します。\n---\n"
	DefaultFooterTemplate = "以上が、ファイル: {{ .Name }} の内容である。\n"
)

// Values is a struct that holds variables we make available for header and
// footer template expansion
type Values struct {
	Name      string
	Path      string
	Encoding  string
	Unit      string
	Limit     int
	Fragments int
	Total     int
}

// NewValues collects template variables for a file input.
func NewValues(src fsutil.Source, enc fsutil.Encoding, budget fragment.Budget, fragments []fragment.Fragment) Values {
	return Values{
		Name:      src.DisplayName,
		Path:      src.Path,
		Encoding:  enc.String(),
		Unit:      budget.Unit.String(),
		Limit:     budget.Limit,
		Fragments: len(fragments),
		Total:     fragment.Total(fragments, budget.Unit),
	}
}

// ExpandTemplate renders field as a text/template with slim-sprig functions.
func ExpandTemplate(name, field string, values Values) (string, error) {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", name, err)
	}
	return buf.String(), nil
}

// BuildFraming expands header and footer templates. Stdin input gets no framing.
func BuildFraming(headerTmpl, footerTmpl string, values Values, src fsutil.Source) (Framing, error) {
	if !src.IsFile() {
		return Framing{}, nil
	}
	header, err := ExpandTemplate("header", headerTmpl, values)
	if err != nil {
		return Framing{}, err
	}
	footer, err := ExpandTemplate("footer", footerTmpl, values)
	if err != nil {
		return Framing{}, err
	}
	return Framing{Header: header, Footer: footer}, nil
}
