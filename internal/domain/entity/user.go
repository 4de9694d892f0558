package entity

import "time"

// RoleName nombre de rol. Enumeración cerrada; la comparación es exacta (sin jerarquía).
type RoleName string

// Roles válidos.
const (
	RoleAdmin            RoleName = "admin"
	RoleWarehouse        RoleName = "warehouse"
	RoleTechnicalSupport RoleName = "technical_support"
)

// Valid informa si el nombre pertenece a la enumeración.
func (r RoleName) Valid() bool {
	switch r {
	case RoleAdmin, RoleWarehouse, RoleTechnicalSupport:
		return true
	}
	return false
}

// Capability permiso abstracto que exige una ruta.
type Capability string

const (
	CapMutateStock  Capability = "mutate_stock"
	CapReadAudit    Capability = "read_audit"
	CapManageTenant Capability = "manage_tenant"
)

// CapabilityRole tabla capacidad -> único rol que la posee.
var CapabilityRole = map[Capability]RoleName{
	CapMutateStock:  RoleWarehouse,
	CapReadAudit:    RoleAdmin,
	CapManageTenant: RoleAdmin,
}

// Role rol con alcance de empresa.
type Role struct {
	ID        string
	CompanyID string
	Name      RoleName
}

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	DepartmentID string
	RoleID       string
	RoleName     RoleName // cargado por join con roles
	Username     string
	PasswordHash string // bcrypt hash
	FullName     string
	Email        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
