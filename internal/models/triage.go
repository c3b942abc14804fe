package models

import "strings"

// TriageLevel adalah label warna triase IGD
type TriageLevel string

const (
	TriageRed    TriageLevel = "Rojo"
	TriageOrange TriageLevel = "Naranja"
	TriageYellow TriageLevel = "Amarillo"
	TriageGreen  TriageLevel = "Verde"
	TriageBlue   TriageLevel = "Azul"
)

// TriageLevels urut dari yang paling gawat
var TriageLevels = []TriageLevel{TriageRed, TriageOrange, TriageYellow, TriageGreen, TriageBlue}

// Severity: 0 untuk level paling gawat, len(TriageLevels) untuk label tidak dikenal
func (t TriageLevel) Severity() int {
	for i, l := range TriageLevels {
		if strings.EqualFold(string(l), string(t)) {
			return i
		}
	}
	return len(TriageLevels)
}

// Valid true kalau t salah satu label triase
func (t TriageLevel) Valid() bool {
	return t.Severity() < len(TriageLevels)
}
