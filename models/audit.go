package models

// Audit carries the actor columns every table has.
type Audit struct {
	CreatedBy int64 `gorm:"column:id_usuario_criacao;not null"`
	UpdatedBy int64 `gorm:"column:id_usuario_atualizacao;not null"`
}

// NewAudit stamps both columns with the same actor.
func NewAudit(actorID int64) Audit {
	return Audit{CreatedBy: actorID, UpdatedBy: actorID}
}
