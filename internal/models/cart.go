package models

type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// CartItem vit en Redis sous forme de liste JSON (clé "cart:<user>" ou
// "cart:guest:<id>"). Le prix est capturé au moment de l'ajout : c'est lui qui
// devient price_at_time sur la ligne de commande, pas le prix vivant du produit.
type CartItem struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Dosage      string  `json:"dosage,omitempty"`
	TabletCount int     `json:"tablet_count,omitempty"`
	ApprovalID  string  `json:"approval_id,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}
