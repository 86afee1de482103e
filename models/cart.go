package models

// CartItem pairs a catalog product with a requested quantity. Uniqueness
// inside a session cart is keyed by CodSAP.
type CartItem struct {
	CodSAP      string `json:"codsap"`
	Descripcion string `json:"descripcion"`
	CodAS400    string `json:"codas400"`
	Ubicacion   string `json:"ubicacion"`
	Quantity    int    `json:"quantity"`
}

// SessionCart is the in-progress requisition a user builds before
// submitting. It lives in the session store for the token's lifetime and
// is deleted on logout.
type SessionCart struct {
	Items            []CartItem `json:"items"`
	DeliveryLocation string     `json:"deliveryLocation"`
	Comments         string     `json:"comments"`
	CostCenter       string     `json:"costCenter"`
}

// Normalize collapses duplicate SAP codes (last quantity wins) and drops
// entries whose quantity fell to zero or below.
func (c *SessionCart) Normalize() {
	seen := map[string]int{}
	merged := make([]CartItem, 0, len(c.Items))

	for _, item := range c.Items {
		if idx, ok := seen[item.CodSAP]; ok {
			merged[idx].Quantity = item.Quantity
			continue
		}
		seen[item.CodSAP] = len(merged)
		merged = append(merged, item)
	}

	items := merged[:0]
	for _, item := range merged {
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}
	c.Items = items
}
