package component

// TTL removes an entity from its world once Remaining seconds of simulated
// time have elapsed. OnExpire runs in the tick the entity is scheduled for
// removal.
type TTL struct {
	Remaining float64
	OnExpire  func()
}

var TTLComponent = NewComponent[TTL]()
