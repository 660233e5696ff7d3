package gen

import (
	"text/template"
)

// templateData holds all data needed for the views file.
type templateData struct {
	PackageName string
	Imports     []importSpec
	Views       []viewData
	Union       unionData
}

// importSpec is one import of the generated file.
type importSpec struct {
	Alias string
	Path  string
}

// viewData holds the three representations of one view and the
// conversions that produce them.
type viewData struct {
	Owned   structData
	Ref     structData
	Mut     structData
	Methods []funcData
}

// structData is one generated struct type.
type structData struct {
	Docs   []string
	Name   string
	Params string
	Fields []fieldLine
	// Lease is the lease field type of borrowed representations.
	Lease string
}

type fieldLine struct {
	Name string
	Type string
}

// funcData is one generated function or method. Body lines are emitted
// verbatim and indented by the formatter.
type funcData struct {
	Docs       []string
	Receiver   string
	Name       string
	TypeParams string
	Args       string
	Results    string
	Body       []string
}

// unionData is the tagged union over every view.
type unionData struct {
	Docs     []string
	Name     string
	Params   string
	Kind     string
	KindDoc  string
	Consts   []string
	Value    string
	Funcs    []funcData
	Accessor []funcData
}

var fileTemplate = template.Must(template.New("file").Parse(`{{define "struct"}}
{{range .Docs}}{{.}}
{{end}}type {{.Name}}{{.Params}} struct {
{{range .Fields}}	{{.Name}} {{.Type}}
{{end}}{{if .Lease}}	lease {{.Lease}}
{{end}}}
{{end}}{{define "func"}}
{{range .Docs}}{{.}}
{{end}}func {{if .Receiver}}({{.Receiver}}) {{end}}{{.Name}}{{.TypeParams}}({{.Args}}){{if .Results}} {{.Results}}{{end}} {
{{range .Body}}{{.}}
{{end}}}
{{end}}// Code generated by view-generator. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range .Views}}{{template "struct" .Owned}}{{template "struct" .Ref}}{{template "struct" .Mut}}{{range .Methods}}{{template "func" .}}{{end}}{{end}}
{{with .Union}}{{if .KindDoc}}
{{.KindDoc}}
{{end}}type {{.Kind}} uint8

const (
{{range $i, $c := .Consts}}	{{$c}}{{if eq $i 0}} {{$.Union.Kind}} = iota + 1{{end}}
{{end}})

{{range .Docs}}{{.}}
{{end}}type {{.Name}}{{.Params}} struct {
	{{.Value}} any
}
{{range .Funcs}}{{template "func" .}}{{end}}{{range .Accessor}}{{template "func" .}}{{end}}{{end}}`))
