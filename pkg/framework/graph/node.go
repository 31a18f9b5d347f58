// Package graph defines the processing-graph node contract: real-time
// block processing, channel layout negotiation and topology state.
package graph

import (
	"encoding/xml"
	"errors"

	"github.com/justyntemme/metergo/pkg/framework/bus"
	"github.com/justyntemme/metergo/pkg/framework/process"
)

// ErrChannelMismatch is returned when a node rejects a layout whose
// output channel count differs from its input.
var ErrChannelMismatch = errors.New("graph: output layout must match input layout")

// Node is a processor within the graph.
type Node interface {
	// Run processes one block. It is called from the real-time audio
	// context and must not allocate, lock or block.
	Run(ctx *process.Context)

	// CanSupportIO reports the output layout the node would produce for
	// an input layout, and whether it accepts that input at all.
	CanSupportIO(in bus.Count) (bus.Count, bool)

	// ConfigureIO applies a negotiated layout. It must not be called
	// concurrently with Run or with the reduction tick.
	ConfigureIO(in, out bus.Count) error

	// State returns the node's topology state for serialization.
	State() NodeState
}

// NodeState is the XML node a processor contributes when the graph
// serializes its topology. It carries no numeric state.
type NodeState struct {
	XMLName xml.Name `xml:"processor"`
	Name    string   `xml:"name,attr"`
	Type    string   `xml:"type,attr"`
}

// Marshal renders the state as an XML fragment.
func (s NodeState) Marshal() ([]byte, error) {
	return xml.Marshal(s)
}
