package request

// Separator is the kind of separator a parsed line ends on.
type Separator uint8

const (
	SepNone              Separator = iota // none
	SepNode                               // node
	SepNodeTypeName                       // type-name
	SepOperation                          // operation
	SepPropertyListStart                  // property-list-start
	SepProperty                           // property
	SepPropertyValue                      // property-value
	SepPropertyListEnd                    // property-list-end
	SepHeaderListStart                    // header-list-start
	SepHeader                             // header
	SepHeaderListEnd                      // header-list-end
	SepOutput                             // output
)

var separatorNames = [...]string{
	SepNone:              "none",
	SepNode:              "node",
	SepNodeTypeName:      "type-name",
	SepOperation:         "operation",
	SepPropertyListStart: "property-list-start",
	SepProperty:          "property",
	SepPropertyValue:     "property-value",
	SepPropertyListEnd:   "property-list-end",
	SepHeaderListStart:   "header-list-start",
	SepHeader:            "header",
	SepHeaderListEnd:     "header-list-end",
	SepOutput:            "output",
}

func (s Separator) String() string {
	if int(s) < len(separatorNames) {
		return separatorNames[s]
	}

	return "unknown"
}

// MarshalText implements [encoding.TextMarshaler].
func (s Separator) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// opens reports whether more input is expected after s.
func (s Separator) opens() bool {
	switch s {
	case SepNone, SepPropertyListEnd, SepHeaderListEnd:
		return false
	}

	return true
}
