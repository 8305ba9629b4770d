// Package msgs defines the messages published by a simulated line,
// serialized with protobuf inside a Typed envelope.
package msgs
