// Package value converts raw parameter text into structured [Node] trees.
//
// Text is parsed with the value states of package grammar while a
// [TermBuilder] records the visited states. The resulting [Term] tree is
// then folded into nodes. Nodes encode to JSON and YAML with object
// fields in their original order.
package value
