package component

// TTL destroys its entity once Seconds run out. Systems tick it with the
// frame delta.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()
