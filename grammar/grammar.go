package grammar

import (
	"sync"

	"github.com/ardnew/opline/parsing"
)

var g = parsing.NewGrammar()

// Initial states. Pass one of these to [parsing.Grammar.Parse] with the
// grammar returned by [Default].
var (
	// CommandLine reads either a command with arguments or an operation
	// request.
	CommandLine = g.Declare("COMMAND_LINE")
	// OperationRequest reads an operation request.
	OperationRequest = g.Declare("OPERATION_REQUEST")
	// AddressLine reads a node address alone.
	AddressLine = g.Declare("ADDRESS_LINE")
	// ArgumentList reads command arguments alone.
	ArgumentList = g.Declare("ARGUMENT_LIST")
	// Value reads a parameter value.
	Value = g.Declare("VALUE")
	// Text reads a single word, removing quotes and escapes.
	Text = g.Declare("TEXT")
)

// Operation request states.
var (
	OperationLine     = g.Declare("OPERATION_LINE")
	Address           = g.Declare("ADDRESS")
	NodeSeparator     = g.Declare("NODE_SEPARATOR")
	NodeType          = g.Declare("NODE_TYPE")
	NodeName          = g.Declare("NODE_NAME")
	OperationName     = g.Declare("OPERATION_NAME")
	PropertyList      = g.Declare("PROPERTY_LIST")
	PropertySeparator = g.Declare("PROPERTY_SEPARATOR")
	Property          = g.Declare("PROPERTY")
	PropertyName      = g.Declare("PROPERTY_NAME")
	PropertyValue     = g.Declare("PROPERTY_VALUE")
	OutputTarget      = g.Declare("OUTPUT_TARGET")
)

// Header states.
var (
	HeaderList      = g.Declare("HEADER_LIST")
	HeaderSeparator = g.Declare("HEADER_SEPARATOR")
	Header          = g.Declare("HEADER")
	HeaderName      = g.Declare("HEADER_NAME")
	HeaderValue     = g.Declare("HEADER_VALUE")
	HeaderArguments = g.Declare("HEADER_ARGUMENTS")

	RolloutPlan          = g.Declare("ROLLOUT_PLAN")
	RolloutSeries        = g.Declare("ROLLOUT_SERIES")
	RolloutConcurrent    = g.Declare("ROLLOUT_CONCURRENT")
	RolloutItem          = g.Declare("ROLLOUT_ITEM")
	RolloutItemName      = g.Declare("ROLLOUT_ITEM_NAME")
	RolloutItemValue     = g.Declare("ROLLOUT_ITEM_VALUE")
	RolloutGroupProps    = g.Declare("ROLLOUT_GROUP_PROPERTIES")
	RolloutProperty      = g.Declare("ROLLOUT_PROPERTY")
	RolloutPropertyName  = g.Declare("ROLLOUT_PROPERTY_NAME")
	RolloutPropertyValue = g.Declare("ROLLOUT_PROPERTY_VALUE")
)

// Command states.
var (
	CommandName            = g.Declare("COMMAND_NAME")
	Argument               = g.Declare("ARGUMENT")
	ArgumentName           = g.Declare("ARGUMENT_NAME")
	ArgumentValueSeparator = g.Declare("ARGUMENT_VALUE_SEPARATOR")
	ArgumentValue          = g.Declare("ARGUMENT_VALUE")
)

// Value states.
var (
	Item      = g.Declare("ITEM")
	ItemValue = g.Declare("ITEM_VALUE")
	List      = g.Declare("LIST")
	Object    = g.Declare("OBJECT")
)

// Default returns the sealed grammar holding every state of this package.
// It is built on first use and safe for concurrent use.
var Default = sync.OnceValue(func() *parsing.Grammar {
	defineOperation()
	defineHeaders()
	defineRollout()
	defineCommand()
	defineValue()

	return g.Seal()
})
