package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrMissingConfig = errors.New("configuración requerida ausente")
)
