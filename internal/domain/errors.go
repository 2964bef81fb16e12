package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los mapean
// uno a uno a códigos de estado; ninguno se reintenta automáticamente.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidState       = errors.New("la recomendación no está en el estado requerido")
	ErrInvalidQuantity    = errors.New("cantidad de pedido inválida")
	ErrEmptyDecision      = errors.New("ningún producto requiere reposición")
	ErrAlreadyRunning     = errors.New("ya hay una corrida del pipeline en curso")
	ErrProductMissing     = errors.New("un producto de la recomendación ya no existe")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
)
