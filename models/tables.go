package models

// Table names of the BoaCompra schema.
const (
	TableRegion          = "tb_unidade_federativa"
	TableMunicipality    = "tb_municipio"
	TableCustomer        = "tb_cliente"
	TableCustomerAddress = "tb_cliente_endereco"
	TableCustomerEmail   = "tb_cliente_email"
	TableCustomerContact = "tb_cliente_contato"
	TableCategory        = "tb_produto_categoria"
	TableUnit            = "tb_produto_unidade_medida"
	TableProduct         = "tb_produto"
	TableOrderStatus     = "tb_pedido_situacao"
	TableOrder           = "tb_pedido"
	TableOrderItem       = "tb_pedido_item"
)

// All lists every model in creation order, for AutoMigrate.
func All() []any {
	return []any{
		&Region{},
		&Municipality{},
		&Customer{},
		&CustomerAddress{},
		&CustomerEmail{},
		&CustomerContact{},
		&Category{},
		&Unit{},
		&Product{},
		&OrderStatus{},
		&Order{},
		&OrderItem{},
	}
}
