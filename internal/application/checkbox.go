package application

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Checkbox is a boolean request field that accepts what HTML checkboxes and
// JSON clients send: "on", "true", "1" and "yes" are checked, while an empty
// value, "off", "false", "0" and "no" are not.
type Checkbox bool

// UnmarshalParam implements gin's binding.BindUnmarshaler for form fields.
func (c *Checkbox) UnmarshalParam(param string) error {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "on", "true", "1", "yes":
		*c = true
	case "", "off", "false", "0", "no":
		*c = false
	default:
		return fmt.Errorf("invalid checkbox value %q", param)
	}
	return nil
}

// UnmarshalJSON accepts a JSON boolean or any string UnmarshalParam accepts.
func (c *Checkbox) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*c = Checkbox(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid checkbox value %s", data)
	}
	return c.UnmarshalParam(s)
}
