// Command actorgen writes the skeleton of a new stage actor.
//
//	actorgen -name Spinner -pkg main -out spinner_actor.go
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"text/template"
	"unicode"

	"golang.org/x/tools/imports"
)

const actorTemplate = `package {{.Package}}

import (
	"github.com/plus3/stagehand/stage"
{{- if .Object}}
	"github.com/plus3/stagehand/stage/scene"
{{- end}}
)

// {{.Name}} is a stage actor.
type {{.Name}} struct {
	stage.BaseActor
{{- if .Object}}

	object *scene.Object
{{- end}}
}

func (a *{{.Name}}) Start() {
{{- if .Object}}
	a.object = scene.NewObject("{{.Name}}", scene.NewBox(1, 1, 1))
	a.Scene().Add(a.object)
{{- end}}
}

func (a *{{.Name}}) Update(delta float64) {
{{- if .Object}}
	a.object.Rotation[1] += float32(delta)
{{- end}}
}
`

type params struct {
	Name    string
	Package string
	Object  bool
}

var tmpl = template.Must(template.New("actor").Parse(actorTemplate))

// Generate renders the actor source and runs it through goimports.
func Generate(p params) ([]byte, error) {
	if p.Name == "" {
		return nil, errors.New("actorgen: name is required")
	}
	if !unicode.IsLetter(rune(p.Name[0])) {
		return nil, fmt.Errorf("actorgen: invalid name %q", p.Name)
	}
	if p.Package == "" {
		p.Package = "main"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return nil, err
	}

	return imports.Process(p.Name+".go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
}

func main() {
	name := flag.String("name", "", "The type name of the actor.")
	pkg := flag.String("pkg", "main", "The package the actor belongs to.")
	out := flag.String("out", "", "Output file. Defaults to stdout.")
	object := flag.Bool("object", true, "Spawn a scene object on Start.")
	flag.Parse()

	src, err := Generate(params{Name: *name, Package: *pkg, Object: *object})
	if err != nil {
		log.Fatal(err)
	}

	if *out == "" {
		os.Stdout.Write(src)
		return
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s", *out)
}
