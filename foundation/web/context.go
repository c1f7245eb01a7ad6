package web

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// BindFunc binds the request body (JSON or form) into v and verifies that the
// named struct fields were actually provided. Field groups may be given either
// as separate arguments or comma-joined ("Latitude,Longitude").
func (c *Context) BindFunc(v interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(v); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request"), http.StatusBadRequest)
	}

	var missing []string

	elem := reflect.ValueOf(v).Elem()
	for _, group := range requiredFields {
		for _, name := range strings.Split(group, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}

			field := elem.FieldByName(name)
			if !field.IsValid() {
				continue
			}
			if field.Kind() == reflect.Ptr && field.IsNil() {
				missing = append(missing, name)
			}
		}
	}

	if len(missing) > 0 {
		return NewRequestError(
			errors.New("required fields: "+strings.Join(missing, ", ")),
			http.StatusBadRequest,
		)
	}

	return nil
}

// GetParam parses a path parameter into the requested kind. Parse failures are
// collected and reported by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.paramErr = NewRequestError(errors.Wrapf(err, "parsing param %q", name), http.StatusBadRequest)
			return 0
		}
		return v
	case reflect.String:
		return value
	default:
		c.paramErr = NewRequestError(fmt.Errorf("unsupported param kind %q", kind), http.StatusBadRequest)
		return nil
	}
}

func (c *Context) ValidParam() error {
	return c.paramErr
}

// GetQueryFunc parses an optional query parameter and returns a typed pointer,
// nil-valued when the parameter is absent.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok {
			return (*int)(nil)
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			c.queryErr = NewRequestError(errors.Wrapf(err, "parsing query %q", name), http.StatusBadRequest)
			return (*int)(nil)
		}
		return &v
	case reflect.Bool:
		if !ok {
			return (*bool)(nil)
		}
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErr = NewRequestError(errors.Wrapf(err, "parsing query %q", name), http.StatusBadRequest)
			return (*bool)(nil)
		}
		return &v
	case reflect.Float64:
		if !ok {
			return (*float64)(nil)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			c.queryErr = NewRequestError(errors.Wrapf(err, "parsing query %q", name), http.StatusBadRequest)
			return (*float64)(nil)
		}
		return &v
	case reflect.String:
		if !ok {
			return (*string)(nil)
		}
		return &value
	default:
		c.queryErr = NewRequestError(fmt.Errorf("unsupported query kind %q", kind), http.StatusBadRequest)
		return nil
	}
}

func (c *Context) ValidQuery() error {
	return c.queryErr
}

// Respond writes data as JSON with the given status code.
func (c *Context) Respond(data interface{}, statusCode int) error {
	c.JSON(statusCode, data)
	return nil
}

// RespondError writes the error envelope. *web.Error carries its own status;
// anything else is an internal error.
func (c *Context) RespondError(err error) error {
	status := http.StatusInternalServerError

	var webErr *Error
	if errors.As(err, &webErr) {
		status = webErr.Status
	}

	c.JSON(status, map[string]interface{}{
		"error":  err.Error(),
		"status": false,
	})

	return nil
}
