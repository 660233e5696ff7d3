package gen

import (
	"fmt"
	"strings"

	"view-generator/internal/dsl"
	"view-generator/internal/fieldmodel"
	"view-generator/internal/plan"
	"view-generator/internal/schema"
)

// representation selects which of the three view types a conversion builds.
type representation int

const (
	repOwned representation = iota
	repShared
	repExclusive
)

func (e *emitter) view(v *plan.ViewDescriptor) viewData {
	params := schema.ParamList(v.Params)
	lease := "*" + e.runtime + ".Lease"

	data := viewData{
		Owned: structData{
			Docs:   e.docs(v.Owned, fmt.Sprintf("// %s is a view of %s.", v.Name, e.src.Name)),
			Name:   v.Name,
			Params: params,
		},
		Ref: structData{
			Docs:   e.docs(v.Ref, fmt.Sprintf("// %s is a shared borrow of %s.", plan.RefName(v.Name), v.Name)),
			Name:   plan.RefName(v.Name),
			Params: params,
			Lease:  lease,
		},
		Mut: structData{
			Docs:   e.docs(v.Mut, fmt.Sprintf("// %s is an exclusive borrow of %s.", plan.MutName(v.Name), v.Name)),
			Name:   plan.MutName(v.Name),
			Params: params,
			Lease:  lease,
		},
	}

	for _, f := range v.Fields {
		data.Owned.Fields = append(data.Owned.Fields, fieldLine{Name: f.Name, Type: f.Owned})
		data.Ref.Fields = append(data.Ref.Fields, fieldLine{Name: f.Name, Type: f.Shared})
		data.Mut.Fields = append(data.Mut.Fields, fieldLine{Name: f.Name, Type: f.Exclusive})
	}

	data.Methods = append(data.Methods,
		e.release(v, plan.RefName(v.Name)),
		e.release(v, plan.MutName(v.Name)),
		e.project(v, repShared),
		e.project(v, repExclusive),
		e.conversion(v, repOwned),
		e.conversion(v, repShared),
		e.conversion(v, repExclusive),
	)

	return data
}

// docs returns the annotation lines of an item, or the default comment
// when nothing annotates it.
func (e *emitter) docs(annotations []string, fallback string) []string {
	if lines := propagate(annotations); len(lines) > 0 {
		return lines
	}

	if !e.comments {
		return nil
	}

	return []string{fallback}
}

func (e *emitter) release(v *plan.ViewDescriptor, typeName string) funcData {
	return funcData{
		Docs:     e.comment(fmt.Sprintf("// %s ends the borrow. Calling it again has no effect.", plan.ReleaseMethod)),
		Receiver: "r " + typeName + schema.ArgList(v.Params),
		Name:     plan.ReleaseMethod,
		Body:     []string{fmt.Sprintf("\tr.%s.Release()", plan.LeaseField)},
	}
}

// project borrows an owned view as its Ref or Mut representation.
func (e *emitter) project(v *plan.ViewDescriptor, rep representation) funcData {
	args := schema.ArgList(v.Params)
	name, result, acquire := plan.AsRefMethod, plan.RefName(v.Name), "Share"

	doc := fmt.Sprintf("// %s borrows v as a %s. It panics if v is exclusively borrowed.", name, result)
	if rep == repExclusive {
		name, result, acquire = plan.AsMutMethod, plan.MutName(v.Name), "Exclusive"
		doc = fmt.Sprintf("// %s borrows v as a %s. It panics if v is already borrowed.", name, result)
	}

	body := []string{fmt.Sprintf("\treturn %s%s{", result, args)}

	for _, f := range v.Fields {
		ptr := "&v." + f.Name
		if f.PassThrough {
			ptr = "v." + f.Name
		}

		body = append(body, fmt.Sprintf("\t\t%s: %s,", f.Name, ptr))
	}

	body = append(body,
		fmt.Sprintf("\t\t%s: %s.%s(v),", plan.LeaseField, e.runtime, acquire),
		"\t}",
	)

	return funcData{
		Docs:     e.comment(doc),
		Receiver: "v *" + v.Name + args,
		Name:     name,
		Results:  result + args,
		Body:     body,
	}
}

// conversion builds IntoV, AsVRef or AsVMut on the source.
func (e *emitter) conversion(v *plan.ViewDescriptor, rep representation) funcData {
	srcType := e.src.Name + schema.ArgList(e.src.TypeParams)
	args := schema.ArgList(v.Params)

	var fn funcData

	switch rep {
	case repOwned:
		fn = funcData{
			Docs: e.comment(fmt.Sprintf("// %s converts src into a %s. It reports false when a pattern or guard does not hold.",
				plan.IntoName(v.Name), v.Name)),
			Receiver: plan.SourceReceiver + " " + srcType,
			Name:     plan.IntoName(v.Name),
			Results:  fmt.Sprintf("(%s%s, bool)", v.Name, args),
		}
	case repShared:
		fn = funcData{
			Docs: e.comment(fmt.Sprintf("// %s borrows src as a %s. It reports false when a pattern or guard does not hold.",
				plan.AsRefName(v.Name), plan.RefName(v.Name))),
			Receiver: plan.SourceReceiver + " *" + srcType,
			Name:     plan.AsRefName(v.Name),
			Results:  fmt.Sprintf("(%s%s, bool)", plan.RefName(v.Name), args),
		}
	case repExclusive:
		fn = funcData{
			Docs: e.comment(fmt.Sprintf("// %s borrows src as a %s. It reports false when a pattern or guard does not hold.",
				plan.AsMutName(v.Name), plan.MutName(v.Name))),
			Receiver: plan.SourceReceiver + " *" + srcType,
			Name:     plan.AsMutName(v.Name),
			Results:  fmt.Sprintf("(%s%s, bool)", plan.MutName(v.Name), args),
		}
	}

	result := resultType(v, rep) + args
	fail := fmt.Sprintf("\t\treturn %s{}, false", result)

	var (
		body      []string
		writeBack []string
	)

	for _, f := range v.Fields {
		body = append(body, extract(f, rep, fail)...)
		body = append(body, guard(f, rep, fail)...)

		if rep == repExclusive && f.Mode == dsl.ModeVariant && !f.PassThrough {
			writeBack = append(writeBack, fmt.Sprintf("\t%s.Defer(func() { %s.%s = *%s })",
				plan.LeaseField, plan.SourceReceiver, f.Name, plan.Local(f.Name)))
		}
	}

	switch rep {
	case repShared:
		body = append(body, fmt.Sprintf("\t%s := %s.Share(%s)", plan.LeaseField, e.runtime, plan.SourceReceiver))
	case repExclusive:
		body = append(body, fmt.Sprintf("\t%s := %s.Exclusive(%s)", plan.LeaseField, e.runtime, plan.SourceReceiver))
		body = append(body, writeBack...)
	}

	body = append(body, fmt.Sprintf("\treturn %s{", result))
	for _, f := range v.Fields {
		body = append(body, fmt.Sprintf("\t\t%s: %s,", f.Name, plan.Local(f.Name)))
	}

	if rep != repOwned {
		body = append(body, fmt.Sprintf("\t\t%s: %s,", plan.LeaseField, plan.LeaseField))
	}

	body = append(body, "\t}, true")
	fn.Body = body

	return fn
}

func resultType(v *plan.ViewDescriptor, rep representation) string {
	switch rep {
	case repShared:
		return plan.RefName(v.Name)
	case repExclusive:
		return plan.MutName(v.Name)
	default:
		return v.Name
	}
}

// extract returns the statements binding the field's local, returning
// early when the pattern does not match.
func extract(f *fieldmodel.Field, rep representation, fail string) []string {
	field := plan.SourceReceiver + "." + f.Name
	local := plan.Local(f.Name)

	var (
		lines []string
		place string // addressable expression of the bound value
		addr  string // pointer to place
	)

	switch f.Mode {
	case dsl.ModePlain:
		place, addr = field, "&"+field
	case dsl.ModeOptional:
		lines = append(lines, "\tif "+field+" == nil {", fail, "\t}")
		place, addr = "*"+field, field
	case dsl.ModeOk:
		lines = append(lines, "\tif "+field+".Err != nil {", fail, "\t}")
		place, addr = field+".Value", "&"+field+".Value"
	case dsl.ModeErr:
		lines = append(lines, "\tif "+field+".Err == nil {", fail, "\t}")
		place, addr = field+".Err", "&"+field+".Err"
	case dsl.ModeVariant:
		payload := plan.AssertLocal(f.Name)
		lines = append(lines,
			fmt.Sprintf("\t%s, %s := %s.(%s)", payload, plan.OkLocal, field, f.Assert),
			"\tif !"+plan.OkLocal+" {", fail, "\t}")
		place, addr = payload, "&"+payload
	}

	var value string

	switch {
	case rep == repOwned:
		value = convert(f.Owned, place, f.Convert)
	case f.PassThrough:
		value = convert(f.Owned, place, f.Convert)
	default:
		value = convert(f.Shared, addr, f.Convert)
	}

	return append(lines, fmt.Sprintf("\t%s := %s", local, value))
}

// guard returns the statements evaluating the field's guard against a
// pointer to its local.
func guard(f *fieldmodel.Field, rep representation, fail string) []string {
	if f.Guard == "" {
		return nil
	}

	cond := "\tif !(" + f.Guard + ") {"

	if bindsSelf(f) {
		ptr := "&" + plan.Local(f.Name)
		if f.PassThrough || rep != repOwned {
			ptr = plan.Local(f.Name)
		}

		cond = fmt.Sprintf("\tif %s := %s; !(%s) {", f.Name, ptr, f.Guard)
	}

	return []string{cond, fail, "\t}"}
}

func bindsSelf(f *fieldmodel.Field) bool {
	for _, ref := range f.GuardRefs {
		if ref == f.Name {
			return true
		}
	}

	return false
}

// convert wraps expr in a conversion to typ when needed. Shared locals
// convert through the pointer type.
func convert(typ, expr string, needed bool) string {
	if !needed {
		return expr
	}

	if strings.HasPrefix(typ, "*") || strings.HasPrefix(typ, "<-") ||
		strings.HasPrefix(typ, "func") || strings.HasPrefix(typ, "chan") {
		typ = "(" + typ + ")"
	}

	return typ + "(" + expr + ")"
}

func (e *emitter) comment(line string) []string {
	if !e.comments {
		return nil
	}

	return []string{line}
}
