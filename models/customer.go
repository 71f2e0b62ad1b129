package models

import (
	"time"
)

type Customer struct {
	ID        int64     `gorm:"column:id_cliente;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:no_cliente;size:150;not null"`
	CPF       string    `gorm:"column:nu_cpf;type:char(11);uniqueIndex;not null"`
	BirthDate time.Time `gorm:"column:dt_nascimento;type:date;not null"`
	Active    bool      `gorm:"column:in_ativo;not null;default:true"`
	Audit     `gorm:"embedded"`

	Addresses []CustomerAddress `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Emails    []CustomerEmail   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Contacts  []CustomerContact `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Orders    []Order           `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

func (Customer) TableName() string { return TableCustomer }

type CustomerAddress struct {
	ID             int64  `gorm:"column:id_cliente_endereco;primaryKey;autoIncrement"`
	CustomerID     int64  `gorm:"column:id_cliente;index;not null"`
	MunicipalityID int64  `gorm:"column:id_municipio;index;not null"`
	Street         string `gorm:"column:no_logradouro;size:150;not null"`
	Number         string `gorm:"column:nu_endereco;size:10;not null"`
	Complement     string `gorm:"column:ds_complemento;size:100"`
	District       string `gorm:"column:no_bairro;size:100;not null"`
	PostalCode     string `gorm:"column:nu_cep;type:char(8);not null"`
	Audit          `gorm:"embedded"`

	Municipality *Municipality `gorm:"foreignKey:MunicipalityID;constraint:OnDelete:RESTRICT"`
}

func (CustomerAddress) TableName() string { return TableCustomerAddress }

type CustomerEmail struct {
	ID         int64  `gorm:"column:id_cliente_email;primaryKey;autoIncrement"`
	CustomerID int64  `gorm:"column:id_cliente;uniqueIndex:uk_cliente_email,priority:1;not null"`
	Address    string `gorm:"column:tx_email;size:150;uniqueIndex:uk_cliente_email,priority:2;not null"`
	Primary    bool   `gorm:"column:in_principal;not null;default:false"`
	Audit      `gorm:"embedded"`
}

func (CustomerEmail) TableName() string { return TableCustomerEmail }

// ContactType is the tp_contato domain.
type ContactType int

const (
	ContactMobile ContactType = iota + 1
	ContactLandline
	ContactCommercial
	ContactWhatsApp
)

// ContactTypes lists every valid contact type.
var ContactTypes = []ContactType{ContactMobile, ContactLandline, ContactCommercial, ContactWhatsApp}

func (t ContactType) String() string {
	switch t {
	case ContactMobile:
		return "celular"
	case ContactLandline:
		return "fixo"
	case ContactCommercial:
		return "comercial"
	case ContactWhatsApp:
		return "whatsapp"
	}
	return "desconhecido"
}

type CustomerContact struct {
	ID         int64       `gorm:"column:id_cliente_contato;primaryKey;autoIncrement"`
	CustomerID int64       `gorm:"column:id_cliente;uniqueIndex:uk_cliente_contato,priority:1;not null"`
	AreaCode   int         `gorm:"column:nu_ddd;uniqueIndex:uk_cliente_contato,priority:2;not null"`
	Number     string      `gorm:"column:nu_telefone;size:9;uniqueIndex:uk_cliente_contato,priority:3;not null"`
	Type       ContactType `gorm:"column:tp_contato;uniqueIndex:uk_cliente_contato,priority:4;not null"`
	Primary    bool        `gorm:"column:in_principal;not null;default:false"`
	Audit      `gorm:"embedded"`
}

func (CustomerContact) TableName() string { return TableCustomerContact }
