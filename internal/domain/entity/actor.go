package entity

// Actor identidad resuelta de quien ejecuta una operación (ya autenticada).
// CompanyID es el tenant con el que se filtran todas las lecturas y escrituras.
type Actor struct {
	UserID       string
	CompanyID    string
	DepartmentID string
	Role         RoleName
}
