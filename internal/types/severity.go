package types

import "fmt"

// Severity controls how a rule's findings are reported.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityError
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "OFF"
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// MarshalYAML renders the severity in the lowercase form used by the
// configuration file.
func (s Severity) MarshalYAML() (interface{}, error) {
	switch s {
	case SeverityOff:
		return "off", nil
	case SeverityError:
		return "error", nil
	case SeverityWarning:
		return "warning", nil
	case SeverityInfo:
		return "info", nil
	default:
		return nil, fmt.Errorf("unknown severity: %d", int(s))
	}
}

func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch raw {
	case "off":
		*s = SeverityOff
	case "error":
		*s = SeverityError
	case "warning", "":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity: %q", raw)
	}
	return nil
}
