package request

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/ardnew/opline/grammar"
	"github.com/ardnew/opline/log"
	"github.com/ardnew/opline/parsing"
)

// Handler assembles a request from the events of one parse at a time.
// It is reset at the start of every parse and is not safe for concurrent
// use.
type Handler struct {
	prefix Address
	opts   []parsing.Option
	logger log.Logger

	address      Address
	hasAddress   bool
	operation    string
	hasOperation bool
	properties   []Property
	headers      []Header
	output       string
	hasOutput    bool
	command      string
	sep          Separator
	complete     bool
	valueIndex   int
	locks        int

	// per-token scratch
	buf     strings.Builder
	fresh   bool
	prop    Property
	header  GenericHeader
	plan    *planBuilder
	item    rolloutItem
	inItem  bool
	setting Setting
}

// New returns a handler configured with opts.
func New(opts ...Option) *Handler {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}

	h.reset()

	return h
}

// ParseLine reads a command line: an operation request if the line starts
// with '/', '.' or ':', and a command with arguments otherwise.
func (h *Handler) ParseLine(ctx context.Context, line string) error {
	return h.parse(ctx, line, grammar.CommandLine)
}

// ParseOperation reads an operation request.
func (h *Handler) ParseOperation(ctx context.Context, line string) error {
	return h.parse(ctx, line, grammar.OperationRequest)
}

// ParseAddress reads an address alone.
func (h *Handler) ParseAddress(ctx context.Context, line string) error {
	return h.parse(ctx, line, grammar.AddressLine)
}

// ParseArguments reads command arguments alone.
func (h *Handler) ParseArguments(ctx context.Context, line string) error {
	return h.parse(ctx, line, grammar.ArgumentList)
}

func (h *Handler) parse(ctx context.Context, line string, initial parsing.StateID) error {
	h.reset()

	err := grammar.Default().Parse(ctx, line, initial, h, h.opts...)
	if err != nil {
		h.logger.DebugContext(ctx, "parse failed",
			slog.String("line", line),
			slog.Any("error", err),
		)

		return err
	}

	h.logger.DebugContext(ctx, "parsed request",
		slog.String("line", line),
		slog.String("address", h.address.String()),
		slog.String("operation", h.operation),
		slog.Int("properties", len(h.properties)),
		slog.Int("headers", len(h.headers)),
		slog.String("ends-on", h.sep.String()),
	)

	return nil
}

func (h *Handler) reset() {
	*h = Handler{
		prefix:     h.prefix,
		opts:       h.opts,
		logger:     h.logger,
		address:    h.prefix.Clone(),
		valueIndex: -1,
	}
}

// Address returns the address read, starting from the prefix.
func (h *Handler) Address() Address { return h.address.Clone() }

// Operation returns the operation name.
func (h *Handler) Operation() string { return h.operation }

// Properties returns the operation properties or command arguments in
// the order read.
func (h *Handler) Properties() []Property { return append([]Property(nil), h.properties...) }

// Property returns the first property named name.
func (h *Handler) Property(name string) (Property, bool) {
	for _, p := range h.properties {
		if p.Name == name {
			return p, true
		}
	}

	return Property{}, false
}

// Headers returns the operation headers in the order read.
func (h *Handler) Headers() []Header { return append([]Header(nil), h.headers...) }

// OutputTarget returns the output redirection target.
func (h *Handler) OutputTarget() string { return h.output }

// Command returns the command name of a command line.
func (h *Handler) Command() string { return h.command }

// Separator returns the separator the line ends on.
func (h *Handler) Separator() Separator { return h.sep }

// ValueIndex returns the offset at which the last value began, or -1.
// Completion replaces the text from this offset.
func (h *Handler) ValueIndex() int { return h.valueIndex }

func (h *Handler) HasAddress() bool       { return h.hasAddress }
func (h *Handler) HasOperationName() bool { return h.hasOperation }
func (h *Handler) HasProperties() bool    { return len(h.properties) > 0 }
func (h *Handler) HasHeaders() bool       { return len(h.headers) > 0 }
func (h *Handler) HasOutputTarget() bool  { return h.hasOutput }
func (h *Handler) IsCommand() bool        { return h.command != "" }

// IsRequestComplete reports whether the property list was closed.
func (h *Handler) IsRequestComplete() bool { return h.complete }

// EndsOnSeparator reports whether the line ends on a separator after
// which more input is expected.
func (h *Handler) EndsOnSeparator() bool { return h.sep.opens() }

func (h *Handler) EndsOnNodeSeparator() bool          { return h.sep == SepNode }
func (h *Handler) EndsOnNodeTypeNameSeparator() bool  { return h.sep == SepNodeTypeName }
func (h *Handler) EndsOnPropertyListStart() bool      { return h.sep == SepPropertyListStart }
func (h *Handler) EndsOnPropertySeparator() bool      { return h.sep == SepProperty }
func (h *Handler) EndsOnPropertyValueSeparator() bool { return h.sep == SepPropertyValue }
func (h *Handler) EndsOnPropertyListEnd() bool        { return h.sep == SepPropertyListEnd }
func (h *Handler) EndsOnHeaderListStart() bool        { return h.sep == SepHeaderListStart }
func (h *Handler) EndsOnHeaderSeparator() bool        { return h.sep == SepHeader }
func (h *Handler) EndsOnOutputTargetSeparator() bool  { return h.sep == SepOutput }

func (h *Handler) EndsOnAddressOperationNameSeparator() bool {
	return h.sep == SepOperation
}

// EnteredState implements [parsing.Callback].
func (h *Handler) EnteredState(c *parsing.Context) error {
	s := c.State()

	if h.locks == 0 && s.UpdatesValueIndex() {
		h.valueIndex = c.Location()
	}

	if s.LocksValueIndex() {
		h.locks++
	}

	switch s.ID() {
	case grammar.Address:
		h.hasAddress, h.fresh = true, true
	case grammar.NodeSeparator:
		if h.fresh {
			h.address.reset()
		}

		h.sep = SepNode
	case grammar.NodeName:
		h.buf.Reset()
		h.sep = SepNodeTypeName
	case grammar.OperationName:
		h.buf.Reset()
		h.sep = SepOperation
	case grammar.PropertyList:
		h.sep = SepPropertyListStart
	case grammar.PropertySeparator:
		h.sep = SepProperty
	case grammar.Property, grammar.Argument:
		h.prop = Property{}
	case grammar.PropertyValue, grammar.ArgumentValue:
		h.buf.Reset()
		h.prop.HasValue = true
		h.sep = SepPropertyValue
	case grammar.ArgumentValueSeparator:
		h.prop.HasValue = true
		h.sep = SepPropertyValue
	case grammar.HeaderList:
		h.sep = SepHeaderListStart
	case grammar.HeaderSeparator:
		h.sep = SepHeader
	case grammar.Header:
		h.header = GenericHeader{}
	case grammar.OutputTarget:
		h.buf.Reset()
		h.hasOutput = true
		h.sep = SepOutput
	case grammar.RolloutPlan:
		h.plan = newPlanBuilder()
	case grammar.RolloutSeries:
		h.plan.series()
	case grammar.RolloutConcurrent:
		h.plan.together()
	case grammar.RolloutItem:
		h.item, h.inItem = rolloutItem{}, true
	case grammar.RolloutGroupProps:
		h.item.grouped = true
	case grammar.RolloutProperty:
		h.setting = Setting{}
	case grammar.NodeType, grammar.PropertyName,
		grammar.HeaderName, grammar.HeaderValue, grammar.HeaderArguments,
		grammar.CommandName, grammar.ArgumentName,
		grammar.RolloutItemName, grammar.RolloutItemValue,
		grammar.RolloutPropertyName, grammar.RolloutPropertyValue:
		h.buf.Reset()
	}

	return nil
}

// LeavingState implements [parsing.Callback].
func (h *Handler) LeavingState(c *parsing.Context) error {
	s := c.State()

	if s.LocksValueIndex() {
		h.locks--
	}

	// the character that closed the state, if any
	closer := rune(-1)
	if !c.IsEndOfContent() {
		closer = c.Character()
	}

	text := h.buf.String()

	switch s.ID() {
	case grammar.NodeType:
		h.fresh = false

		return h.nodeType(text, closer == '=')
	case grammar.NodeName:
		if text == "" {
			return nil
		}

		if h.address.IsRoot() {
			return ErrInvalidAddress.Detail("node name " + text + " has no type")
		}

		h.address.toNode(text)
	case grammar.OperationName:
		h.operation, h.hasOperation = text, text != ""
	case grammar.PropertyList:
		if closer == ')' {
			h.sep, h.complete = SepPropertyListEnd, true
		}
	case grammar.PropertyName, grammar.ArgumentName:
		h.prop.Name = text
	case grammar.PropertyValue, grammar.ArgumentValue:
		h.prop.Value = strings.TrimSpace(text)
	case grammar.Property, grammar.Argument:
		if h.prop.Name != "" || h.prop.HasValue {
			h.properties = append(h.properties, h.prop)
		}
	case grammar.HeaderList:
		if closer == '}' {
			h.sep = SepHeaderListEnd
		}
	case grammar.HeaderName:
		h.header.name = text
	case grammar.HeaderValue:
		h.header.value = strings.TrimSpace(text)
	case grammar.HeaderArguments:
		h.header.value, h.header.args = strings.TrimSpace(text), true
	case grammar.Header:
		if h.header.name != "" {
			hdr := h.header
			h.headers = append(h.headers, &hdr)
		}
	case grammar.RolloutPlan:
		h.headers = append(h.headers, h.plan.plan)
	case grammar.RolloutItemName:
		h.item.name = text
	case grammar.RolloutItemValue:
		if !h.inItem {
			return h.plan.assign(text)
		}

		h.item.value, h.item.valued = text, true
	case grammar.RolloutPropertyName:
		h.setting.Name = text
	case grammar.RolloutPropertyValue:
		h.setting.Value = text
	case grammar.RolloutProperty:
		if h.setting.Name == "" {
			return nil
		}

		if h.setting.Value == "" {
			h.setting.Value = "true"
		}

		h.item.settings = append(h.item.settings, h.setting)
	case grammar.RolloutItem:
		h.inItem = false

		if h.item.name == "" {
			return nil
		}

		return h.plan.add(h.item)
	case grammar.OutputTarget:
		h.output = strings.TrimSpace(text)
	case grammar.CommandName:
		h.command = text
	}

	return nil
}

// Character implements [parsing.Callback].
func (h *Handler) Character(c *parsing.Context) error {
	ch := c.Character()

	h.buf.WriteRune(ch)

	if !unicode.IsSpace(ch) {
		h.sep = SepNone
	}

	return nil
}

// nodeType applies a word read where a node type may appear. Followed by
// '=' it is a type. Otherwise it is a path segment: ".", "..", ".type",
// the name of the type the address ends on, or a new type.
func (h *Handler) nodeType(text string, typed bool) error {
	switch {
	case typed:
		h.address.toNodeType(text)
	case text == ".":
	case text == "..":
		h.address.toParent()
	case text == ".type":
		h.address.toType()
	case h.address.EndsOnType():
		h.address.toNode(text)
	default:
		h.address.toNodeType(text)
	}

	return nil
}
