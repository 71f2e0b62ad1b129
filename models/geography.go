package models

// Region is a Brazilian federated unit (state).
type Region struct {
	ID           int64  `gorm:"column:id_unidade_federativa;primaryKey;autoIncrement"`
	Code         int    `gorm:"column:co_unidade_federativa;not null"`
	Abbreviation string `gorm:"column:sg_unidade_federativa;type:char(2);uniqueIndex;not null"`
	Name         string `gorm:"column:no_unidade_federativa;size:50;not null"`
	Audit        `gorm:"embedded"`

	Municipalities []Municipality `gorm:"foreignKey:RegionID;constraint:OnDelete:RESTRICT"`
}

func (Region) TableName() string { return TableRegion }

type Municipality struct {
	ID       int64  `gorm:"column:id_municipio;primaryKey;autoIncrement"`
	RegionID int64  `gorm:"column:id_unidade_federativa;index;not null"`
	IBGECode int    `gorm:"column:co_municipio_ibge;uniqueIndex;not null"`
	Name     string `gorm:"column:no_municipio;size:100;not null"`
	Active   bool   `gorm:"column:in_ativo;not null;default:true"`
	Audit    `gorm:"embedded"`
}

func (Municipality) TableName() string { return TableMunicipality }

// RegionRef is the projection municipalities are resolved against.
type RegionRef struct {
	ID           int64  `gorm:"column:id_unidade_federativa"`
	Abbreviation string `gorm:"column:sg_unidade_federativa"`
}
