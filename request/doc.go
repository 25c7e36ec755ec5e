// Package request assembles management requests from parse events.
//
// A [Handler] is a [parsing.Callback] that watches the states of package
// grammar and records what they read: the node address, the operation
// name, its properties, the header block, an output target, or the name
// and arguments of a command. After a parse, the handler answers the
// ends-on predicates used by completion and converts the request into its
// model with [Handler.ToModel].
//
//	h := request.New(request.WithPrefix(request.NewAddress(
//		request.Node{Type: "subsystem", Name: "logging"},
//	)))
//	if err := h.ParseOperation(ctx, ":read-resource(recursive=true)"); err != nil {
//		return err
//	}
//	model, err := h.ToModel(ctx)
package request
