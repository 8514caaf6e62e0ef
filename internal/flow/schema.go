package flow

import "github.com/svj/nbeconnect/internal/model"

// SelectorType selects the input widget of a Field.
type SelectorType string

const (
	SelectorText     SelectorType = "text"
	SelectorPassword SelectorType = "password"
)

// Selector describes how a field is rendered.
type Selector struct {
	Type         SelectorType
	Autocomplete string
}

// Field is one entry of a form schema.
type Field struct {
	Key        string
	Required   bool
	Default    string
	HasDefault bool
	Label      string
	Hint       string
	Selector   Selector
}

// Schema is an ordered list of form fields.
type Schema []Field

// Field returns the field with the given key.
func (s Schema) Field(key string) (Field, bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Defaults returns the default value of every field that has one.
func (s Schema) Defaults() map[string]string {
	out := make(map[string]string, len(s))
	for _, f := range s {
		if f.HasDefault {
			out[f.Key] = f.Default
		}
	}
	return out
}

func serialField() Field {
	return Field{
		Key:      model.KeySerial,
		Required: true,
		Label:    "Boiler Serial Number",
		Hint:     "Enter the serial number found on your NBE boiler label.",
		Selector: Selector{Type: SelectorText, Autocomplete: "serial"},
	}
}

func passwordField() Field {
	return Field{
		Key:      model.KeyPassword,
		Required: true,
		Label:    "Boiler Password",
		Hint:     "Enter the password found on your NBE boiler label.",
		Selector: Selector{Type: SelectorPassword, Autocomplete: "current-password"},
	}
}

func ipAddressField(autocomplete string) Field {
	return Field{
		Key:      model.KeyIPAddress,
		Label:    "Boiler IP Address (Optional)",
		Hint:     "Enter the fixed IP address of your boiler. Leave empty for auto-discovery.",
		Selector: Selector{Type: SelectorText, Autocomplete: autocomplete},
	}
}

// userSchema is the setup form.
func userSchema() Schema {
	return Schema{serialField(), passwordField(), ipAddressField("ip_address")}
}

// optionsSchema is the edit form, pre-filled from current.
func optionsSchema(current model.EntryData) Schema {
	values := current.Values()
	s := Schema{serialField(), passwordField(), ipAddressField("")}
	for i := range s {
		s[i].Default = values[s[i].Key]
		s[i].HasDefault = true
	}
	return s
}
