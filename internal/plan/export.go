package plan

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Description is the YAML form of a plan, printed by the describe command.
type Description struct {
	Source    string                `yaml:"source"`
	Package   string                `yaml:"package,omitempty"`
	Params    []string              `yaml:"params,omitempty"`
	Views     []ViewDescription     `yaml:"views"`
	Accessors []AccessorDescription `yaml:"accessors"`
}

// ViewDescription describes one view.
type ViewDescription struct {
	Name   string             `yaml:"name"`
	Params []string           `yaml:"params,omitempty"`
	Fields []FieldDescription `yaml:"fields"`
}

// FieldDescription describes one field of a view.
type FieldDescription struct {
	Name      string `yaml:"name"`
	Mode      string `yaml:"mode"`
	Arm       string `yaml:"arm,omitempty"`
	Source    string `yaml:"source"`
	Owned     string `yaml:"owned"`
	Shared    string `yaml:"shared"`
	Exclusive string `yaml:"exclusive"`
	Guard     string `yaml:"guard,omitempty"`
}

// AccessorDescription describes one union accessor.
type AccessorDescription struct {
	Field  string   `yaml:"field"`
	Type   string   `yaml:"type"`
	Direct bool     `yaml:"direct"`
	Views  []string `yaml:"views"`
}

// Describe converts a plan into its YAML description.
func Describe(p *Plan) *Description {
	d := &Description{
		Source:  p.Source.Name,
		Package: p.Source.Package,
	}

	for _, tp := range p.Source.TypeParams {
		d.Params = append(d.Params, tp.Name+" "+tp.Constraint)
	}

	for _, v := range p.Views {
		vd := ViewDescription{Name: v.Name, Fields: []FieldDescription{}}

		for _, tp := range v.Params {
			vd.Params = append(vd.Params, tp.Name)
		}

		for _, f := range v.Fields {
			vd.Fields = append(vd.Fields, FieldDescription{
				Name:      f.Name,
				Mode:      f.Mode.String(),
				Arm:       f.Arm,
				Source:    f.SourceType,
				Owned:     f.Owned,
				Shared:    f.Shared,
				Exclusive: f.Exclusive,
				Guard:     f.Guard,
			})
		}

		d.Views = append(d.Views, vd)
	}

	for _, acc := range p.Accessors {
		ad := AccessorDescription{Field: acc.Field, Type: acc.Type, Direct: acc.Direct}
		for _, arm := range acc.Arms {
			ad.Views = append(ad.Views, arm.View)
		}

		d.Accessors = append(d.Accessors, ad)
	}

	return d
}

// DescribeYAML renders the plan description as YAML.
func DescribeYAML(p *Plan) ([]byte, error) {
	out, err := yaml.Marshal(Describe(p))
	if err != nil {
		return nil, fmt.Errorf("marshaling plan description: %w", err)
	}

	return out, nil
}
