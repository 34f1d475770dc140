package bus

// Handler receives one state report for an entity.
type Handler func(id, value string)

// Bus carries entity state in and commands out. State arrives on
// <prefix>/state/<entity>, commands leave on <prefix>/set/<entity>.
// Devices report the applied state back on the state topic, so a
// command's effect shows up as a later state report.
type Bus interface {
	// Subscribe registers the handler for state reports of the given
	// entities.
	Subscribe(ids []string, handler Handler) error

	// Command asks an entity to assume a value. Fire and forget, the
	// device confirms through its state report.
	Command(id, value string) error

	// PublishRetained publishes a retained message below the prefix.
	PublishRetained(topic string, payload []byte) error

	Close()
}

// Command is one recorded outgoing command, used by the fake.
type Command struct {
	ID    string
	Value string
}
