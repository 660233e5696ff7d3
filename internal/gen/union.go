package gen

import (
	"fmt"

	"view-generator/internal/plan"
	"view-generator/internal/schema"
)

// union renders the tagged union, its kind enum and accessors.
func (e *emitter) union(p *plan.Plan) unionData {
	name := plan.UnionName(e.src.Name)
	kind := plan.KindName(e.src.Name)
	params := schema.ParamList(p.UnionParams)
	self := name + schema.ArgList(p.UnionParams)

	u := unionData{
		Docs:   e.docs(p.VariantAnnotations, fmt.Sprintf("// %s holds exactly one view of %s.", name, e.src.Name)),
		Name:   name,
		Params: params,
		Kind:   kind,
		Value:  plan.UnionValue,
	}

	if e.comments {
		u.KindDoc = fmt.Sprintf("// %s identifies the view a %s holds.", kind, name)
	}

	for _, v := range p.Views {
		u.Consts = append(u.Consts, plan.KindConst(e.src.Name, v.Name))
	}

	u.Funcs = append(u.Funcs, e.kindString(p, kind))

	for _, v := range p.Views {
		armType := v.Name + schema.ArgList(v.Params)
		ctor := plan.ConstructorName(e.src.Name, v.Name)

		u.Funcs = append(u.Funcs, funcData{
			Docs:       e.comment(fmt.Sprintf("// %s wraps a %s.", ctor, v.Name)),
			Name:       ctor,
			TypeParams: params,
			Args:       "v " + armType,
			Results:    self,
			Body:       []string{fmt.Sprintf("\treturn %s{%s: &v}", self, plan.UnionValue)},
		})
	}

	kindBody := []string{fmt.Sprintf("\tswitch u.%s.(type) {", plan.UnionValue)}
	for _, v := range p.Views {
		kindBody = append(kindBody,
			fmt.Sprintf("\tcase *%s%s:", v.Name, schema.ArgList(v.Params)),
			"\t\treturn "+plan.KindConst(e.src.Name, v.Name))
	}

	kindBody = append(kindBody, "\t}", "\treturn 0")

	u.Funcs = append(u.Funcs, funcData{
		Docs:     e.comment(fmt.Sprintf("// %s reports which view u holds, or 0 when it is empty.", plan.KindMethod)),
		Receiver: "u " + self,
		Name:     plan.KindMethod,
		Results:  kind,
		Body:     kindBody,
	})

	for _, v := range p.Views {
		armType := v.Name + schema.ArgList(v.Params)

		u.Funcs = append(u.Funcs, funcData{
			Docs:     e.comment(fmt.Sprintf("// %s returns the %s u holds.", v.Name, v.Name)),
			Receiver: "u " + self,
			Name:     v.Name,
			Results:  fmt.Sprintf("(*%s, bool)", armType),
			Body: []string{
				fmt.Sprintf("\tv, ok := u.%s.(*%s)", plan.UnionValue, armType),
				"\treturn v, ok",
			},
		})
	}

	for _, acc := range p.Accessors {
		u.Accessor = append(u.Accessor, e.accessor(p, self, acc))
	}

	return u
}

func (e *emitter) kindString(p *plan.Plan, kind string) funcData {
	body := []string{"\tswitch k {"}
	for _, v := range p.Views {
		body = append(body,
			"\tcase "+plan.KindConst(e.src.Name, v.Name)+":",
			fmt.Sprintf("\t\treturn %q", v.Name))
	}

	body = append(body, "\t}", fmt.Sprintf("\treturn %q", kind+"(invalid)"))

	return funcData{
		Receiver: "k " + kind,
		Name:     "String",
		Results:  "string",
		Body:     body,
	}
}

// accessor reads one field from whichever arm holds it. Direct accessors
// cover every arm and panic on an empty union.
func (e *emitter) accessor(p *plan.Plan, self string, acc plan.Accessor) funcData {
	fn := funcData{
		Receiver: "u " + self,
		Name:     acc.Field,
	}

	present := ", true"
	if acc.Direct {
		fn.Docs = e.comment(fmt.Sprintf("// %s returns the %s field of the held view.", acc.Field, acc.Field))
		fn.Results = "*" + acc.Type
		present = ""
	} else {
		fn.Docs = e.comment(fmt.Sprintf("// %s returns the %s field of the held view, if that view has one.",
			acc.Field, acc.Field))
		fn.Results = "(*" + acc.Type + ", bool)"
	}

	body := []string{fmt.Sprintf("\tswitch v := u.%s.(type) {", plan.UnionValue)}

	for _, arm := range acc.Arms {
		view := viewByName(p, arm.View)

		ret := "&v." + acc.Field + present
		if arm.PassThrough {
			// A pointer field held by value is present only when set.
			ret = "v." + acc.Field
			if !acc.Direct {
				ret += ", v." + acc.Field + " != nil"
			}
		}

		body = append(body,
			fmt.Sprintf("\tcase *%s%s:", view.Name, schema.ArgList(view.Params)),
			"\t\treturn "+ret)
	}

	body = append(body, "\t}")

	if acc.Direct {
		body = append(body, fmt.Sprintf("\tpanic(%q)", fmt.Sprintf("%s.%s called on an empty union", plan.UnionName(e.src.Name), acc.Field)))
	} else {
		body = append(body, "\treturn nil, false")
	}

	fn.Body = body

	return fn
}

func viewByName(p *plan.Plan, name string) *plan.ViewDescriptor {
	for _, v := range p.Views {
		if v.Name == name {
			return v
		}
	}

	return nil
}
