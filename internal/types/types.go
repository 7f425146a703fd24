// Package types defines Lumen's primitive type tags and the compatibility
// relation the type checker uses to validate assignments, calls, and returns.
package types

// Tag is one of the language's primitive type tags.
type Tag int

const (
	INT Tag = iota
	FLOAT
	BOOL
	CHAR
	STRING
	VOID
	ANY
)

func (t Tag) String() string {
	switch t {
	case INT:
		return "int"
	case FLOAT:
		return "float"
	case BOOL:
		return "bool"
	case CHAR:
		return "char"
	case STRING:
		return "string"
	case VOID:
		return "void"
	case ANY:
		return "any"
	default:
		return "unknown"
	}
}

// Info is a primitive tag plus an optionality flag. ANY is the unknown/top
// type; Optional is never set by the parser and does not participate in
// compatibility in the core (spec §9 Open Questions).
type Info struct {
	Tag      Tag
	Optional bool
}

func (i Info) String() string {
	s := i.Tag.String()
	if i.Optional {
		s += "?"
	}
	return s
}

// FromName maps a primitive-keyword spelling to its Info. Anything else
// (a free identifier used as a type) is ANY.
func FromName(name string) Info {
	switch name {
	case "int":
		return Info{Tag: INT}
	case "float":
		return Info{Tag: FLOAT}
	case "bool":
		return Info{Tag: BOOL}
	case "char":
		return Info{Tag: CHAR}
	case "string":
		return Info{Tag: STRING}
	case "void":
		return Info{Tag: VOID}
	default:
		return Info{Tag: ANY}
	}
}

// CompatibleWith reports whether actual ≲ expected (spec §3): the relation
// holds when either side is ANY, the tags are equal, actual is INT and
// expected is FLOAT (widening), or actual is CHAR and expected is STRING.
// The relation is not symmetric.
func CompatibleWith(actual, expected Info) bool {
	if actual.Tag == ANY || expected.Tag == ANY {
		return true
	}
	if actual.Tag == expected.Tag {
		return true
	}
	if actual.Tag == INT && expected.Tag == FLOAT {
		return true
	}
	if actual.Tag == CHAR && expected.Tag == STRING {
		return true
	}
	return false
}
