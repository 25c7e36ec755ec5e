package request

import (
	"github.com/ardnew/opline/parsing"
)

// Errors reported while converting a parsed request into its model.
var (
	ErrMissingOperation = parsing.NewError("missing operation name")
	ErrMissingNodeName  = parsing.NewError("missing node name")
	ErrMissingPropName  = parsing.NewError("missing property name")
	ErrUnknownHeader    = parsing.NewError("unknown header")
	ErrInvalidPlan      = parsing.NewError("invalid rollout plan")
	ErrInvalidAddress   = parsing.NewError("invalid address")
)
