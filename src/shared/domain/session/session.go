package session

// Context representa la sesión activa del usuario que opera el POS.
// Se construye una vez en el borde (middleware/controller) y se pasa
// explícitamente a los casos de uso; nunca se lee de estado global.
type Context struct {
	IDUsuario  int
	IDEmpleado int
	AuthToken  string // se propaga como header Authorization al backend
}

// FromAuthHeader crea una sesión mínima a partir del header Authorization.
func FromAuthHeader(token string) Context {
	return Context{AuthToken: token}
}
