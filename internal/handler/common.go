package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dondesalimos/donde-salimos/internal/lifecycle"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getActor builds the lifecycle actor for the authenticated request, combining
// the subject and role claims injected by the JWT middleware.
func getActor(c echo.Context) (lifecycle.Actor, error) {
	uid, err := getUserID(c)
	if err != nil {
		return lifecycle.Actor{}, err
	}
	rol, _ := c.Get("role").(string)
	if rol == "" {
		return lifecycle.Actor{}, errors.New("invalid role in context")
	}
	return lifecycle.Actor{UsuarioID: uid, Rol: rol}, nil
}

// pathID parses the named path parameter as an unsigned id.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
