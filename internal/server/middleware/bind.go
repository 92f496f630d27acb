package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"

	"github.com/cstockton/go-conv"
	"github.com/labstack/echo/v4"
)

// BindAndValidate decodes query string and headers into req, then validates it.
// Query values are bound by tag `query:"name"`, headers by `header:"name"`.
func BindAndValidate(c echo.Context, req interface{}) error {
	if err := bindQuery(c.QueryParams(), req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := bindHeader(c.Request().Header, req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}

// bindQuery decode query values to struct by tag `query:"<name>"`.
// Only the first value of a repeated key is used; missing keys leave the field untouched.
func bindQuery(values url.Values, dst interface{}) error {
	getValueFn := func(tagValue string) (interface{}, bool) {
		vs, ok := values[tagValue]
		if !ok || len(vs) == 0 {
			return nil, false
		}
		return vs[0], true
	}

	return bindStruct(dst, "query", getValueFn)
}

// bindHeader decode http header to struct by tag `header:"<header_name>"`
// out must be a pointer to a struct
func bindHeader(header http.Header, dst interface{}) error {
	getValueFn := func(tagValue string) (interface{}, bool) {
		v := header.Get(tagValue)
		return v, v != ""
	}

	return bindStruct(dst, "header", getValueFn)
}

// bindStruct decode to struct by custom tag `tagName:"tagValue"`
// dst must be a pointer to a struct
func bindStruct(dst interface{}, tagName string, getValueFn func(tagValue string) (interface{}, bool)) error {
	ptr := reflect.ValueOf(dst)
	if ptr.Kind() != reflect.Ptr {
		return fmt.Errorf("non-pointer passed to bind")
	}

	indirect := reflect.Indirect(ptr)
	structType := indirect.Type()
	if structType.Kind() != reflect.Struct {
		return fmt.Errorf("bind target must be a struct, got %s", structType.Kind())
	}

	for i := 0; i < structType.NumField(); i++ {
		structField := structType.Field(i)
		tagValue := structField.Tag.Get(tagName)
		if tagValue == "-" || tagValue == "" {
			continue
		}

		value, ok := getValueFn(tagValue)
		if !ok {
			continue
		}
		field := indirect.Field(i)
		if err := conv.Infer(field, value); err != nil {
			return fmt.Errorf("cannot parse %s.%s as %s from: %#v / %s",
				structType.Name(), structField.Name, field.Type(), value, err)
		}
	}

	return nil
}
