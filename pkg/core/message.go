package core

// InspectorMessage is a single finding produced by a check.
//
// Messages are plain values: once constructed they are only changed by the
// dispatcher, which stamps File after the check has run. Two messages are equal
// when all of their fields are equal, so tests compare them with ==.
type InspectorMessage struct {
	Message           string     `json:"message"`
	Importance        Importance `json:"importance"`
	Severity          Severity   `json:"severity"`
	CheckFunctionName string     `json:"check_function_name"`
	ObjectType        string     `json:"object_type"`
	ObjectName        string     `json:"object_name"`
	Location          string     `json:"location"`
	File              string     `json:"file"`
}

// MessageOption sets an optional field of an InspectorMessage.
type MessageOption func(*InspectorMessage)

// NewMessage builds a message with the required fields. Optional fields keep
// their zero values (SeverityNone, empty strings) unless an option sets them.
func NewMessage(message string, importance Importance, opts ...MessageOption) InspectorMessage {
	m := InspectorMessage{
		Message:    message,
		Importance: importance,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithSeverity sets the severity.
func WithSeverity(s Severity) MessageOption {
	return func(m *InspectorMessage) { m.Severity = s }
}

// WithCheck sets the name of the check that produced the message.
func WithCheck(name string) MessageOption {
	return func(m *InspectorMessage) { m.CheckFunctionName = name }
}

// WithObject sets the type, name and location of the inspected object.
func WithObject(objectType, objectName, location string) MessageOption {
	return func(m *InspectorMessage) {
		m.ObjectType = objectType
		m.ObjectName = objectName
		m.Location = location
	}
}

// WithLocation sets only the location.
func WithLocation(location string) MessageOption {
	return func(m *InspectorMessage) { m.Location = location }
}

// WithFile returns a copy of the message stamped with the file it came from.
func (m InspectorMessage) WithFile(file string) InspectorMessage {
	m.File = file
	return m
}
