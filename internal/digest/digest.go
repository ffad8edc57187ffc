package digest

import (
	"bytes"
	_ "embed"
	"text/template"
)

// Item is one rendered entry in a wave.
type Item struct {
	Author  string
	Excerpt string
	Hint    string
	Label   string
	Created string
}

// Wave is one rendered group.
type Wave struct {
	Label       string
	Description string
	Items       []Item
}

// Data feeds the digest template.
type Data struct {
	Title    string
	Viewer   string
	Datetime string
	Waves    []Wave
	Era      string
}

//go:embed digest.tmpl
var digestTpl string

var compiled = template.Must(template.New("digest").Parse(digestTpl))

// Render produces a plain-text digest of one ranking pass.
func Render(d Data) (string, error) {
	var buf bytes.Buffer
	if err := compiled.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
