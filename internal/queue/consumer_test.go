package queue

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func envelope(t *testing.T, tipo string, payload any) Evento {
	t.Helper()
	datos, err := json.Marshal(payload)
	assert.NoError(t, err)
	return Evento{Tipo: tipo, EmitidoEn: "2026-09-01T12:00:00Z", Datos: datos}
}

func TestFormatLineReservaDecidida(t *testing.T) {
	env := envelope(t, TipoReservaDecidida, ReservaDecididaEvent{
		ReservaID:      7,
		UsuarioID:      3,
		ComercioID:     5,
		NombreComercio: "Bar Uno",
		Estado:         "RECHAZADA",
		Motivo:         "sin lugar",
		Fecha:          "2026-09-05T21:00:00Z",
		Cantidad:       4,
	})

	line, err := formatLine(env)
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Contains(t, line, "[2026-09-01T12:00:00Z]")
	assert.Contains(t, line, "reserva_id=7")
	assert.Contains(t, line, `comercio="Bar Uno"`)
	assert.Contains(t, line, "estado=RECHAZADA")
	assert.Contains(t, line, `motivo="sin lugar"`)
	assert.Contains(t, line, "cantidad=4")
}

func TestFormatLineReservaDecididaSinMotivo(t *testing.T) {
	env := envelope(t, TipoReservaDecidida, ReservaDecididaEvent{
		ReservaID: 1,
		Estado:    "APROBADA",
	})

	line, err := formatLine(env)
	assert.NoError(t, err)
	assert.Contains(t, line, `motivo="-"`)
}

func TestFormatLineComercioModerado(t *testing.T) {
	env := envelope(t, TipoComercioModerado, ComercioModeradoEvent{
		ComercioID: 9,
		UsuarioID:  2,
		Nombre:     "Resto Dos",
		Aprobado:   false,
		Motivo:     "datos incompletos",
	})

	line, err := formatLine(env)
	assert.NoError(t, err)
	assert.Contains(t, line, "Comercio moderado")
	assert.Contains(t, line, "resultado=rechazado")
	assert.Contains(t, line, `motivo="datos incompletos"`)
}

func TestFormatLineComercioAprobado(t *testing.T) {
	env := envelope(t, TipoComercioModerado, ComercioModeradoEvent{
		ComercioID: 9,
		Nombre:     "Resto Dos",
		Aprobado:   true,
	})

	line, err := formatLine(env)
	assert.NoError(t, err)
	assert.Contains(t, line, "resultado=aprobado")
	assert.Contains(t, line, `motivo="-"`)
}

func TestFormatLinePublicidadActivada(t *testing.T) {
	env := envelope(t, TipoPublicidadActivada, PublicidadActivadaEvent{
		PublicidadID: 4,
		ComercioID:   9,
		Titulo:       "Happy hour",
		Dias:         7,
		Precio:       1500,
	})

	line, err := formatLine(env)
	assert.NoError(t, err)
	assert.Contains(t, line, "Publicidad activada")
	assert.Contains(t, line, "publicidad_id=4")
	assert.Contains(t, line, "dias=7")
	assert.Contains(t, line, "precio=1500")
}

func TestFormatLineUnknownType(t *testing.T) {
	env := Evento{Tipo: "reserva.creada", EmitidoEn: "2026-09-01T12:00:00Z", Datos: json.RawMessage(`{}`)}
	_, err := formatLine(env)
	assert.Error(t, err)
}

func TestFormatLineBadPayload(t *testing.T) {
	env := Evento{Tipo: TipoReservaDecidida, EmitidoEn: "2026-09-01T12:00:00Z", Datos: json.RawMessage(`"not-an-object"`)}
	_, err := formatLine(env)
	assert.Error(t, err)
}
