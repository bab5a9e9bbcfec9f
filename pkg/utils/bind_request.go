package utils

import (
	"encoding/json"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
)

// BindJSONRows decodes a JSON body into T keeping numbers as json.Number, so
// integral row values stay integers, then validates it.
func BindJSONRows[T any](c echo.Context) (T, error) {
	var v T

	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return v, httperror.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}

	if v, err := Validate(v); err != nil {
		return v, httperror.WrapError(http.StatusBadRequest, err)
	}

	return v, nil
}
