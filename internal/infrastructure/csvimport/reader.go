// Package csvimport lee el archivo de carga masiva de stock:
// name,quantity,department,par_level,reason (par_level y reason opcionales).
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-api/internal/application/usecase"
)

const minFields = 3

// Read parsea todas las filas. Con latin1 decodifica ISO-8859-1 (exportaciones de Excel).
// La cabecera es opcional y se detecta por el texto "name" en la primera columna.
func Read(r io.Reader, latin1 bool) ([]usecase.StockRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []usecase.StockRow
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if first && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		if isBlank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		row, err := parseRecord(line, rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(line int, rec []string) (usecase.StockRow, error) {
	if len(rec) < minFields {
		return usecase.StockRow{}, fmt.Errorf("línea %d: se esperaban al menos %d columnas", line, minFields)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(rec[1]))
	if err != nil {
		return usecase.StockRow{}, fmt.Errorf("línea %d: quantity inválida %q", line, rec[1])
	}
	row := usecase.StockRow{
		Line:       line,
		Name:       strings.TrimSpace(rec[0]),
		Quantity:   qty,
		Department: strings.TrimSpace(rec[2]),
	}
	if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
		par, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil {
			return usecase.StockRow{}, fmt.Errorf("línea %d: par_level inválido %q", line, rec[3])
		}
		row.ParLevel = &par
	}
	if len(rec) > 4 && strings.TrimSpace(rec[4]) != "" {
		reason := strings.TrimSpace(rec[4])
		row.Reason = &reason
	}
	return row, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
