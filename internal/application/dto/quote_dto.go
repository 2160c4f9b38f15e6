package dto

// CreateQuoteRequest crea una cotización con las líneas seleccionadas del carrito de quien llama.
// CustomerID solo lo pueden indicar admin y vendedores; los clientes cotizan para sí mismos.
type CreateQuoteRequest struct {
	CustomerID string `json:"customer_id" validate:"omitempty,max=64"`
}

// TransitionQuoteRequest nuevo estado de la cotización.
type TransitionQuoteRequest struct {
	Status string `json:"status" validate:"required,oneof=Draft Sent Paid Cancelled"`
}
