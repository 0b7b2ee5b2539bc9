package rdirect

import "fmt"

// Read variants. The two are mutually exclusive strategies behind the same
// interface; a layer instance runs exactly one of them for its whole
// lifetime. They are never mixed, because their semantics are incompatible:
// the in-place variant supports continuation reads, the re-opened variant
// truncates everything past the first call.
const (
	// ModeDirect reads in place through the already-open handle, which the
	// open-flag policy opened with the direct-I/O flag. Supports ordinary
	// short-read continuation and is the default.
	ModeDirect = "direct"

	// ModeReopen re-opens the file with the direct-I/O flag for every read.
	// For hosts that do not propagate adjusted open flags onto the handle.
	// Single-shot: any read at a nonzero offset returns 0, so the whole
	// file must fit in one call.
	ModeReopen = "reopen"
)

// Config controls a single rdirect layer instance.
type Config struct {
	// Mode selects the read variant.
	// Valid values: direct, reopen. Defaults to direct.
	Mode string `mapstructure:"mode"`

	// AppendNUL writes a single zero byte immediately past the returned
	// data on the re-opened read path, for callers that treat the result
	// as a terminated string. The byte is only written when the buffer has
	// spare capacity past the count; it is never written past the
	// caller's buffer. Off by default.
	AppendNUL bool `mapstructure:"append_nul"`
}

// ApplyDefaults fills in defaults for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeDirect
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeDirect, ModeReopen:
	default:
		return fmt.Errorf("mode: invalid value %q (valid: %s, %s)", c.Mode, ModeDirect, ModeReopen)
	}

	if c.AppendNUL && c.Mode != ModeReopen {
		return fmt.Errorf("append_nul: only meaningful with mode %q", ModeReopen)
	}

	return nil
}
