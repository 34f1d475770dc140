package bus

import "sync"

// Fake records commands in memory. With Echo set every command is
// reported straight back as the entity's new state, imitating a well
// behaved device.
type Fake struct {
	mutex    sync.Mutex
	commands []Command
	handler  Handler
	retained map[string][]byte

	Echo bool
}

func NewFake() *Fake {
	return &Fake{retained: make(map[string][]byte)}
}

func (f *Fake) Subscribe(_ []string, handler Handler) error {
	f.mutex.Lock()
	f.handler = handler
	f.mutex.Unlock()
	return nil
}

func (f *Fake) Command(id, value string) error {
	f.mutex.Lock()
	f.commands = append(f.commands, Command{ID: id, Value: value})
	handler := f.handler
	echo := f.Echo
	f.mutex.Unlock()

	if echo && handler != nil {
		handler(id, value)
	}
	return nil
}

func (f *Fake) PublishRetained(topic string, payload []byte) error {
	f.mutex.Lock()
	f.retained[topic] = payload
	f.mutex.Unlock()
	return nil
}

func (f *Fake) Close() {}

// Report injects a state report as if a device published it.
func (f *Fake) Report(id, value string) {
	f.mutex.Lock()
	handler := f.handler
	f.mutex.Unlock()
	if handler != nil {
		handler(id, value)
	}
}

// Commands returns a copy of everything sent so far.
func (f *Fake) Commands() []Command {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	out := make([]Command, len(f.commands))
	copy(out, f.commands)
	return out
}

// Reset drops the recorded commands.
func (f *Fake) Reset() {
	f.mutex.Lock()
	f.commands = nil
	f.mutex.Unlock()
}

// Retained returns the last retained payload for a topic.
func (f *Fake) Retained(topic string) ([]byte, bool) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	b, ok := f.retained[topic]
	return b, ok
}
