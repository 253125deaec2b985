package entity

import "errors"

// Puesto es un puesto de trabajo asignable a un empleado
type Puesto struct {
	IDPuesto int
	Nombre   string
}

// Tipo es una categoría de producto
type Tipo struct {
	IDTipo int
	Nombre string
}

var (
	ErrNombreRequerido = errors.New("nombre is required")

	// ErrNombreDuplicado: el chequeo local es solo consultivo; la
	// restricción real de unicidad vive en el backend (409).
	ErrNombreDuplicado = errors.New("nombre already exists")
)
