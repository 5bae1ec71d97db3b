package domain

import "strings"

// Persona describe al dueño del portfolio que el asistente representa.
type Persona struct {
	Name         string
	Handle       string
	Role         string
	Skills       []string
	ContactEmail string
}

// FirstName devuelve el primer nombre, usado en el saludo y el acknowledgment.
func (p Persona) FirstName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return p.Handle
	}
	return fields[0]
}
