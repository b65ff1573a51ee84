package paystack

import (
	"encoding/json"
	"strings"
)

// CustomField est la case fourre-tout des metadata Paystack : on y fait
// voyager le panier à travers le flux de paiement. Value peut être une
// chaîne JSON-encodée ou n'importe quel JSON, d'où le RawMessage.
type CustomField struct {
	DisplayName  string          `json:"display_name"`
	VariableName string          `json:"variable_name"`
	Value        json.RawMessage `json:"value"`
}

type Metadata struct {
	CustomFields []CustomField `json:"custom_fields"`
}

// CustomField renvoie la valeur du champ demandé sous forme de chaîne :
// une valeur chaîne JSON est déquotée, tout autre JSON est rendu brut.
// Champ absent → chaîne vide.
func (m Metadata) CustomField(variableName string) string {
	for _, f := range m.CustomFields {
		if f.VariableName != variableName {
			continue
		}
		var s string
		if err := json.Unmarshal(f.Value, &s); err == nil {
			return s
		}
		return strings.TrimSpace(string(f.Value))
	}
	return ""
}

type Customer struct {
	Email string `json:"email"`
}

// Transaction est la partie data de la réponse de vérification.
// Amount est en unités mineures (kobo) : la conversion en unités
// majeures se fait au bord, chez l'appelant.
type Transaction struct {
	Status    string   `json:"status"`
	Reference string   `json:"reference"`
	Amount    int64    `json:"amount"`
	Currency  string   `json:"currency"`
	PaidAt    string   `json:"paid_at"`
	Customer  Customer `json:"customer"`
	Metadata  Metadata `json:"metadata"`
}

type verifyResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    Transaction `json:"data"`
}

type InitializeRequest struct {
	Email       string    `json:"email"`
	Amount      int64     `json:"amount"` // unités mineures
	CallbackURL string    `json:"callback_url,omitempty"`
	Metadata    *Metadata `json:"metadata,omitempty"`
}

type Authorization struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type initializeResponse struct {
	Status  bool          `json:"status"`
	Message string        `json:"message"`
	Data    Authorization `json:"data"`
}
