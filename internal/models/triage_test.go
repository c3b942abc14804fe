package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriageLevel_Severity(t *testing.T) {
	assert.Equal(t, 0, TriageRed.Severity())
	assert.Equal(t, 4, TriageBlue.Severity())
	assert.Equal(t, 1, TriageLevel("naranja").Severity())
	assert.Equal(t, len(TriageLevels), TriageLevel("Morado").Severity())
	assert.False(t, TriageLevel("").Valid())
	assert.True(t, TriageGreen.Valid())
}

func TestDoctorAuth_IsSuper(t *testing.T) {
	var nilDoctor *DoctorAuth
	assert.False(t, nilDoctor.IsSuper())
	assert.True(t, (&DoctorAuth{Role: "super"}).IsSuper())
	assert.False(t, (&DoctorAuth{Role: "Super"}).IsSuper())
	assert.False(t, (&DoctorAuth{Role: "doctor"}).IsSuper())
	assert.False(t, (&DoctorAuth{Role: ""}).IsSuper())
}

func TestDoctorAuth_CloneIsDeep(t *testing.T) {
	specialty := "Cardiología"
	d := &DoctorAuth{ID: 1, Specialty: &specialty}
	cp := d.Clone()
	*cp.Specialty = "Pediatría"
	assert.Equal(t, "Cardiología", *d.Specialty)
}
