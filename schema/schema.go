package schema

import "encoding/json"

// Schema is message content exchanged with the engine
type Schema interface {
	String() string
}

// Stringify renders a schema as prompt text. Plain strings are passed
// through, anything else is JSON encoded.
func Stringify(s Schema) string {
	if s == nil {
		return ""
	}
	if v, ok := s.(String); ok {
		return string(v)
	}
	bs, err := json.Marshal(s)
	if err != nil {
		return s.String()
	}
	return string(bs)
}

// ToBytes is Stringify for writers
func ToBytes(s Schema) []byte {
	return []byte(Stringify(s))
}
