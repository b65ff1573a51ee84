package orders

import (
	"encoding/json"
	"log"
	"strings"

	"graphics2prints_backend/internal/models"
)

// DecodeCartItems récupère les lignes {name, quantity} depuis la valeur
// d'un custom field de metadata. Le front encode parfois le panier deux
// fois (tableau JSON de chaînes JSON) : on déballe au plus un niveau
// supplémentaire par élément. Un payload corrompu ne doit JAMAIS bloquer
// la création de commande — le paiement est déjà capturé — donc aucune
// erreur ne sort d'ici : au pire on rend une liste vide.
func DecodeCartItems(raw string) []models.OrderItem {
	items := []models.OrderItem{}
	if strings.TrimSpace(raw) == "" {
		return items
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		log.Printf("⚠️ Panier illisible dans les metadata, commande sans lignes: %v", err)
		return items
	}

	for _, el := range elems {
		if item, ok := decodeItem(el, 1); ok {
			items = append(items, item)
		}
	}
	return items
}

// decodeItem tente le décodage structuré d'un élément; si l'élément est
// lui-même une chaîne JSON, on la déballe et on réessaie (unwraps fois au
// maximum). Une chaîne qui ne contient pas de JSON est gardée telle
// quelle comme nom de ligne opaque plutôt que perdue.
func decodeItem(el json.RawMessage, unwraps int) (models.OrderItem, bool) {
	var item struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	if err := json.Unmarshal(el, &item); err == nil && item.Name != "" {
		return models.OrderItem{Name: item.Name, Quantity: item.Quantity}, true
	}

	var s string
	if err := json.Unmarshal(el, &s); err == nil {
		if unwraps > 0 {
			if inner, ok := decodeItem(json.RawMessage(s), unwraps-1); ok {
				return inner, true
			}
		}
		if s != "" {
			return models.OrderItem{Name: s}, true
		}
		return models.OrderItem{}, false
	}

	log.Printf("⚠️ Ligne de panier ignorée (format inattendu): %s", string(el))
	return models.OrderItem{}, false
}
