package clientid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive_EmailNormalizado(t *testing.T) {
	// Mayúsculas y espacios no cambian la clave.
	assert.Equal(t, "client_abcom", Derive("A@B.com", "", "Alguien"))
	assert.Equal(t, "client_abcom", Derive(" a@b.com ", "", "Otro Nombre"))
	assert.Equal(t, "client_juanxcom", Derive("juan@x.com", "1122334455", "Juan Perez"))
}

func TestDerive_Deterministico(t *testing.T) {
	a := Derive("juan@x.com", "1155667788", "Juan Perez")
	b := Derive("juan@x.com", "1155667788", "Juan Perez")
	assert.Equal(t, a, b)
}

func TestDerive_TelefonoSinEmail(t *testing.T) {
	assert.Equal(t, "client_tel_1155667788", Derive("", "11-5566-7788", "Juan"))
	// Con espacios y prefijo internacional también quedan solo dígitos.
	assert.Equal(t, "client_tel_5491155667788", Derive("", "+54 9 11 5566 7788", "Juan"))
}

func TestDerive_TelefonoCorto_CaeAlNombre(t *testing.T) {
	// 5 dígitos o menos no identifican: se usa el slug del nombre.
	assert.Equal(t, "client_juan_perez", Derive("", "12345", "Juan Perez"))
}

func TestDerive_SoloNombre(t *testing.T) {
	assert.Equal(t, "client_juan_perez", Derive("", "", "  Juan   Perez "))
	assert.Equal(t, "client_maría_lópez", Derive("", "", "María López"))
}
