/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package attributes

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/mitchellh/mapstructure"

	"github.com/suparena/entityfactory/errors"
)

var (
	dateTimeType = reflect.TypeOf(strfmt.DateTime{})
	timeType     = reflect.TypeOf(time.Time{})
)

// StringToDateTimeHookFunc converts RFC3339 strings and time.Time values
// into strfmt.DateTime fields.
func StringToDateTimeHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != dateTimeType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return strfmt.ParseDateTime(v)
		case time.Time:
			return strfmt.DateTime(v), nil
		case *time.Time:
			if v == nil {
				return strfmt.DateTime{}, nil
			}
			return strfmt.DateTime(*v), nil
		}
		return data, nil
	}
}

// DecodeHook returns the hook chain Decode uses when no extra hooks are given.
func DecodeHook(extra ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFunc {
	hooks := []mapstructure.DecodeHookFunc{
		StringToDateTimeHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToTimeDurationHookFunc(),
	}
	hooks = append(hooks, extra...)
	return mapstructure.ComposeDecodeHookFunc(hooks...)
}

// Decode copies m into the struct pointed to by out.
// Keys without a matching field and values of the wrong type are reported
// as a ValidationError.
func Decode(m Map, out any, hooks ...mapstructure.DecodeHookFunc) error {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  DecodeHook(hooks...),
		ErrorUnused: true,
		Metadata:    &md,
		Result:      out,
	})
	if err != nil {
		return errors.NewValidationError("", err.Error())
	}
	if err := dec.Decode(map[string]any(m)); err != nil {
		return errors.NewValidationError(failedField(err), err.Error())
	}
	return nil
}

// Encode flattens a struct into a Map keyed by its mapstructure field names.
func Encode(in any) (Map, error) {
	out := Map{}
	if err := mapstructure.Decode(in, &out); err != nil {
		return nil, errors.NewValidationError("", err.Error())
	}
	return out, nil
}

// failedField pulls the field name out of the first mapstructure message
// when there is exactly one problem.
func failedField(err error) string {
	merr, ok := err.(*mapstructure.Error)
	if !ok || len(merr.Errors) != 1 {
		return ""
	}
	msg := merr.Errors[0]
	if strings.HasPrefix(msg, "'") {
		if end := strings.Index(msg[1:], "'"); end > 0 {
			return msg[1 : end+1]
		}
	}
	return ""
}
