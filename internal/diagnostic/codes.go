package diagnostic

// Diagnostic codes reported by the compiler.
const (
	CodeSyntax             = "syntax"
	CodeDanglingAnnotation = "dangling_annotation"
	CodeDuplicateFragment  = "duplicate_fragment"
	CodeDuplicateView      = "duplicate_view"
	CodeNestedSpread       = "nested_spread"
	CodeUndeclaredFragment = "undeclared_fragment"
	CodeUnknownField       = "unknown_field"
	CodeTypeConflict       = "type_annotation_conflict"
	CodeInvalidType        = "invalid_type"
	CodeInvalidGuard       = "invalid_guard"
	CodeDuplicateField     = "conflicting_field"
	CodeUnresolvedInner    = "unresolved_inner_type"
	CodeUnknownIdentifier  = "guard_unknown_identifier"
	CodeModeMismatch       = "mode_type_mismatch"
	CodeUnknownParam       = "unknown_type_param"
	CodeIncompatibleType   = "incompatible_accessor_type"
	CodeNameCollision      = "name_collision"
	CodeEmptyView          = "empty_view"
	CodeNoViews            = "no_views"
)
