package core

import "fmt"

// ConfigError is a configuration failure with an actionable instruction, so
// startup errors tell the user how to fix them rather than just what broke.
type ConfigError struct {
	Code    string
	Message string
	Action  string
}

func (e *ConfigError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

// Error codes for programmatic handling.
const (
	ErrCodeMissingInput   = "MISSING_INPUT"
	ErrCodeBadInput       = "BAD_INPUT_DIR"
	ErrCodeInvalidSetting = "INVALID_SETTING"
)

// ErrMissingInput reports that no input directory was configured.
func ErrMissingInput() *ConfigError {
	return &ConfigError{
		Code:    ErrCodeMissingInput,
		Message: "No input directory configured",
		Action:  "Set PNGUNCRUSH_INPUT_DIR or pass -in <dir>",
	}
}

// ErrInputNotADirectory reports an input path that is missing or not a
// directory.
func ErrInputNotADirectory(path string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeBadInput,
		Message: fmt.Sprintf("Input path %q is not a readable directory", path),
		Action:  "Point PNGUNCRUSH_INPUT_DIR (or -in) at an existing directory",
	}
}

// ErrInvalidSetting reports a setting whose value is out of range.
func ErrInvalidSetting(name, got, want string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidSetting,
		Message: fmt.Sprintf("Invalid value %q for %s", got, name),
		Action:  fmt.Sprintf("Set %s to %s", name, want),
	}
}

// AsConfigError returns err as a *ConfigError when it is one.
func AsConfigError(err error) (*ConfigError, bool) {
	ce, ok := err.(*ConfigError)
	return ce, ok
}
