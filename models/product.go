package models

import (
	"github.com/shopspring/decimal"
)

type Category struct {
	ID     int64  `gorm:"column:id_produto_categoria;primaryKey;autoIncrement"`
	Name   string `gorm:"column:no_produto_categoria;size:100;uniqueIndex;not null"`
	Active bool   `gorm:"column:in_ativo;not null;default:true"`
	Audit  `gorm:"embedded"`

	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

func (Category) TableName() string { return TableCategory }

// Unit is a unit of measure products are sold in.
type Unit struct {
	ID           int64  `gorm:"column:id_produto_unidade_medida;primaryKey;autoIncrement"`
	Name         string `gorm:"column:no_unidade_medida;size:50;uniqueIndex;not null"`
	Abbreviation string `gorm:"column:sg_unidade_medida;size:5;not null"`
	Active       bool   `gorm:"column:in_ativo;not null;default:true"`
	Audit        `gorm:"embedded"`

	Products []Product `gorm:"foreignKey:UnitID;constraint:OnDelete:RESTRICT"`
}

func (Unit) TableName() string { return TableUnit }

type Product struct {
	ID          int64           `gorm:"column:id_produto;primaryKey;autoIncrement"`
	CategoryID  int64           `gorm:"column:id_produto_categoria;index;not null"`
	UnitID      int64           `gorm:"column:id_produto_unidade_medida;index;not null"`
	Name        string          `gorm:"column:no_produto;size:150;uniqueIndex;not null"`
	Description string          `gorm:"column:ds_produto;size:500"`
	UnitPrice   decimal.Decimal `gorm:"column:vl_produto_unitario;type:decimal(10,2);not null"`
	Active      bool            `gorm:"column:in_ativo;not null;default:true"`
	Audit       `gorm:"embedded"`
}

func (Product) TableName() string { return TableProduct }

// ProductRef is what order lines need from a product.
type ProductRef struct {
	ID        int64           `gorm:"column:id_produto"`
	UnitPrice decimal.Decimal `gorm:"column:vl_produto_unitario"`
}
