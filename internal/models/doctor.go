package models

// RoleSuper adalah role dokter yang boleh mendaftarkan dokter baru
const RoleSuper = "super"

// Doctor merepresentasikan data dokter di endpoint /doctores/
type Doctor struct {
	ID        uint64 `json:"id,omitempty"`
	Name      string `json:"nombre"`
	Email     string `json:"email"`
	GoogleID  string `json:"google_id,omitempty"`
	Specialty string `json:"especialidad"`
}

// DoctorAuth adalah identitas dokter yang sedang login (hasil /auth/me)
type DoctorAuth struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"nombre"`
	Email      string  `json:"email"`
	NationalID string  `json:"cedula"`
	Specialty  *string `json:"especialidad"`
	Role       string  `json:"role"`
}

// IsSuper true kalau dokter punya role super
func (d *DoctorAuth) IsSuper() bool {
	if d == nil {
		return false
	}
	return d.Role == RoleSuper
}

// Clone membuat salinan agar identitas di cache tidak ikut berubah
func (d *DoctorAuth) Clone() *DoctorAuth {
	if d == nil {
		return nil
	}
	cp := *d
	if d.Specialty != nil {
		s := *d.Specialty
		cp.Specialty = &s
	}
	return &cp
}

// Struct untuk menangkap input login dari dashboard
type LoginInput struct {
	NationalID string `json:"cedula"`
	Password   string `json:"password"`
}

// AuthToken adalah response dari POST /auth/login
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Struct untuk menangkap input registrasi dokter baru
type RegisterDoctorInput struct {
	Name       string `json:"nombre"`
	Email      string `json:"email"`
	NationalID string `json:"cedula"`
	Password   string `json:"password"`
	Specialty  string `json:"especialidad"`
}
