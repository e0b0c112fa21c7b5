// File: services/realtime/publisher.go
package realtime

// Publisher fans workflow events out to connected clients. Broadcast is
// at-most-once and best-effort: no persistence, no replay, no per-client
// routing. Clients filter relevance from the payload fields themselves.
type Publisher interface {
	Publish(event string, payload any)
}

// Envelope is the wire format for a broadcast event.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}
