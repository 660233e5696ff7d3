package dsl

//go:generate go tool stringer -type=Mode -linecomment -output=mode_string.go

// Mode is how a field's bound value is extracted from the source.
type Mode int

const (
	ModePlain    Mode = iota // plain
	ModeVariant              // variant
	ModeOptional             // some
	ModeOk                   // ok
	ModeErr                  // err
)

// Pattern returns the pattern keyword for container modes.
func (m Mode) Pattern() string {
	switch m {
	case ModeOptional:
		return "Some"
	case ModeOk:
		return "Ok"
	case ModeErr:
		return "Err"
	default:
		return ""
	}
}

func modeForKeyword(kw string) (Mode, bool) {
	switch kw {
	case "Some":
		return ModeOptional, true
	case "Ok":
		return ModeOk, true
	case "Err":
		return ModeErr, true
	default:
		return ModePlain, false
	}
}
