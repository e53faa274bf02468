package models

// Address est copiée telle quelle dans la commande au moment du checkout :
// modifier son carnet d'adresses plus tard ne change pas les commandes passées.
type Address struct {
	FullName   string `json:"full_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}
