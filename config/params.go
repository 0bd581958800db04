package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
)

// Params hold eagerly loaded parameters for config values and fall back to
// environment variables.
type Params struct {
	params map[string]string
}

func NewParams() *Params {
	return &Params{
		params: make(map[string]string),
	}
}

func (pl *Params) Set(key, value string) {
	pl.params[key] = value
}

// Get retrieves key's value from the params map, falling back to the
// SEGVIEW_PARAM_<key> environment variable.
func (pl *Params) Get(key string) (string, bool) {
	value, exists := pl.params[key]
	if exists {
		return value, true
	}

	value = os.Getenv("SEGVIEW_PARAM_" + key)
	if value != "" {
		return value, true
	}

	return "", false
}

// Resolve replaces every string value of the form ${NAME} with the value of
// the parameter NAME.
func (c *Config) Resolve(params *Params) error {
	return resolveVars(reflect.ValueOf(c), params)
}

func resolveVars(v reflect.Value, params *Params) error {
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return resolveVars(v.Elem(), params)

	case reflect.Struct:
		for i := range v.NumField() {
			if err := resolveVars(v.Field(i), params); err != nil {
				return fmt.Errorf("%s: %w", v.Type().Field(i).Name, err)
			}
		}

	case reflect.String:
		name, ok := paramName(v.String())
		if !ok {
			return nil // Not a param reference, nothing to resolve
		}
		value, found := params.Get(name)
		if !found {
			return fmt.Errorf("parameter %q not found", name)
		}
		if v.CanSet() {
			v.SetString(value)
		}
	}

	return nil
}

func paramName(s string) (string, bool) {
	if !strings.HasPrefix(s, "${") || !strings.HasSuffix(s, "}") {
		return "", false
	}
	name := s[2 : len(s)-1]
	return name, name != ""
}
