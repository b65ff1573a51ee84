package orders

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// GenerateOrderNumber produit un numéro de commande lisible sans
// aller-retour base de données : millisecondes epoch + suffixe aléatoire
// à 4 chiffres. Pas garanti unique par construction — l'idempotence
// repose sur payment_reference, pas sur ce numéro.
func GenerateOrderNumber() string {
	suffix := rand.IntN(9000) + 1000
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + strconv.Itoa(suffix)
}
