package repository

import "github.com/jhoicas/distribuidora-api/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para usuarios administrativos.
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByUsuario(usuario string) (*entity.Usuario, error)
}
