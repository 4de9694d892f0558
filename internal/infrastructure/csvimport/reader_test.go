package csvimport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestRead_ConCabeceraYOpcionales(t *testing.T) {
	in := "name,quantity,department,par_level,reason\n" +
		"Laptop,5,Warehouse,2,compra\n" +
		"\n" +
		"Cable, 10, IT\n"

	rows, err := Read(strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Laptop", rows[0].Name)
	assert.Equal(t, 5, rows[0].Quantity)
	require.NotNil(t, rows[0].ParLevel)
	assert.Equal(t, 2, *rows[0].ParLevel)
	require.NotNil(t, rows[0].Reason)
	assert.Equal(t, "compra", *rows[0].Reason)

	assert.Equal(t, 4, rows[1].Line, "las líneas en blanco cuentan")
	assert.Equal(t, "IT", rows[1].Department)
	assert.Equal(t, 10, rows[1].Quantity)
	assert.Nil(t, rows[1].ParLevel)
	assert.Nil(t, rows[1].Reason)
}

func TestRead_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Cámara,1,Diseño\n")
	require.NoError(t, err)

	rows, err := Read(bytes.NewReader([]byte(encoded)), true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cámara", rows[0].Name)
	assert.Equal(t, "Diseño", rows[0].Department)
}

func TestRead_Errores(t *testing.T) {
	cases := map[string]string{
		"quantity":  "Laptop,muchas,IT\n",
		"par_level": "Laptop,1,IT,x\n",
		"columnas":  "Laptop,1\n",
	}
	for name, in := range cases {
		_, err := Read(strings.NewReader(in), false)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "línea 1", name)
	}
}
