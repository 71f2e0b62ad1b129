package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus struct {
	Code  int64  `gorm:"column:co_pedido_situacao;primaryKey;autoIncrement:false"`
	Name  string `gorm:"column:no_pedido_situacao;size:30;uniqueIndex;not null"`
	Audit `gorm:"embedded"`
}

func (OrderStatus) TableName() string { return TableOrderStatus }

// Order total is derived: written as zero and recomputed from its items.
type Order struct {
	ID         int64           `gorm:"column:id_pedido;primaryKey;autoIncrement"`
	CustomerID int64           `gorm:"column:id_cliente;index;not null"`
	StatusCode int64           `gorm:"column:co_pedido_situacao;index;not null"`
	OrderDate  time.Time       `gorm:"column:dt_pedido;type:date;index;not null"`
	Total      decimal.Decimal `gorm:"column:vl_pedido_total;type:decimal(12,2);not null;default:0"`
	Note       *string         `gorm:"column:tx_observacao;size:255"`
	Audit      `gorm:"embedded"`

	Status *OrderStatus `gorm:"foreignKey:StatusCode;references:Code;constraint:OnDelete:RESTRICT"`
	Items  []OrderItem  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return TableOrder }

type OrderItem struct {
	ID        int64           `gorm:"column:id_pedido_item;primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"column:id_pedido;uniqueIndex:uk_pedido_produto,priority:1;not null"`
	ProductID int64           `gorm:"column:id_produto;uniqueIndex:uk_pedido_produto,priority:2;index;not null"`
	Quantity  int             `gorm:"column:qt_item;not null"`
	UnitPrice decimal.Decimal `gorm:"column:vl_unitario;type:decimal(10,2);not null"`
	Discount  decimal.Decimal `gorm:"column:vl_desconto;type:decimal(10,2);not null;default:0"`
	Total     decimal.Decimal `gorm:"column:vl_item_total;type:decimal(12,2);not null"`
	Audit     `gorm:"embedded"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

func (OrderItem) TableName() string { return TableOrderItem }
