package usecase

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// IDGenerator produces shipment identifiers and tracking codes.
type IDGenerator struct {
	node *snowflake.Node
}

// NewIDGenerator builds a generator backed by a snowflake node.
func NewIDGenerator() (*IDGenerator, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("init snowflake node: %w", err)
	}
	return &IDGenerator{node: node}, nil
}

// ShipmentID returns the store-internal shipment identifier.
func (g *IDGenerator) ShipmentID() string {
	return "SHIP-" + g.node.Generate().String()
}

// TrackingCode returns a candidate tracking code. Uniqueness is the
// caller's concern: the booking flow retries on collision.
func (g *IDGenerator) TrackingCode() string {
	return fmt.Sprintf("%s%07d%s", trackingPrefix, g.node.Generate().Int64()%10000000, trackingSuffix)
}
