package plan

// Generated identifiers. Every name the generator emits is derived here so
// collisions can be checked before emission.

// RefName is the shared-borrow type of a view.
func RefName(view string) string { return view + "Ref" }

// MutName is the exclusive-borrow type of a view.
func MutName(view string) string { return view + "Mut" }

// IntoName is the consuming conversion on the source.
func IntoName(view string) string { return "Into" + view }

// AsRefName is the shared-borrow conversion on the source.
func AsRefName(view string) string { return "As" + view + "Ref" }

// AsMutName is the exclusive-borrow conversion on the source.
func AsMutName(view string) string { return "As" + view + "Mut" }

// UnionName is the tagged union over every view of source.
func UnionName(source string) string { return source + "Variant" }

// KindName is the discriminant type of the tagged union.
func KindName(source string) string { return UnionName(source) + "Kind" }

// KindConst is the discriminant constant of one arm.
func KindConst(source, view string) string { return UnionName(source) + view }

// ConstructorName builds the tagged union from one view.
func ConstructorName(source, view string) string { return UnionName(source) + "Of" + view }

// Local returns the generated local holding a field's extracted value.
func Local(field string) string { return "f" + field }

// AssertLocal returns the generated local holding a variant payload.
func AssertLocal(field string) string { return "a" + field }

// Fixed identifiers used by generated code.
const (
	SourceReceiver = "src"
	LeaseField     = "lease"
	OkLocal        = "ok"
	ReleaseMethod  = "Release"
	AsRefMethod    = "AsRef"
	AsMutMethod    = "AsMut"
	KindMethod     = "Kind"
	UnionValue     = "value"
)
