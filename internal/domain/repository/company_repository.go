package repository

import "context"

// CompanyRepository acceso mínimo a los datos de la empresa que necesita la
// capa de presentación (cabecera del reporte PDF).
type CompanyRepository interface {
	// GetName devuelve el nombre de la empresa; domain.ErrNotFound si no existe.
	GetName(ctx context.Context, companyID string) (string, error)
}
