package entity

import "errors"

// Cliente representa un cliente del restaurante
type Cliente struct {
	IDCliente int
	Nombre    string
	Apellido  string
	Telefono  string
	Direccion string
	IDUsuario int
}

// NombreCompleto nombre para display
func (c *Cliente) NombreCompleto() string {
	if c.Apellido == "" {
		return c.Nombre
	}
	return c.Nombre + " " + c.Apellido
}

var ErrClienteNotFound = errors.New("cliente not found")
