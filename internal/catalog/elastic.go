package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"graphics2prints_backend/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/gocql/gocql"
)

const productIndex = "products"

//
// --- INDEXATION DANS ELASTICSEARCH ---
//

// indexProduct pousse un produit dans l'index de recherche. Lancé en
// goroutine après chaque écriture catalogue : un échec d'indexation ne
// bloque jamais l'écriture elle-même.
func (s *Store) indexProduct(p models.Product) {
	if s.elastic == nil {
		log.Println("⚠️ Elastic non initialisé, impossible d'indexer:", p.Name)
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), s.elastic)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", p.Name, res.String())
	} else {
		log.Printf("✅ Produit indexé dans Elasticsearch: %s", p.Name)
	}
}

func (s *Store) deleteIndexed(id gocql.UUID) {
	if s.elastic == nil {
		return
	}
	req := esapi.DeleteRequest{Index: productIndex, DocumentID: id.String()}
	res, err := req.Do(context.Background(), s.elastic)
	if err != nil {
		log.Println("❌ Erreur suppression index Elastic:", err)
		return
	}
	res.Body.Close()
}

//
// --- RECHERCHE ---
//

// Search interroge Elasticsearch (nom, description, catégorie) et retombe
// sur un scan Scylla filtré en mémoire quand Elastic est absent ou vide.
func (s *Store) Search(ctx context.Context, query string) ([]models.Product, error) {
	if s.elastic != nil {
		results, err := s.searchElastic(ctx, query)
		if err == nil && len(results) > 0 {
			return results, nil
		}
		if err != nil {
			log.Printf("⚠️ Recherche Elastic en échec, fallback Scylla: %v", err)
		}
	}
	return s.searchScan(ctx, query)
}

func (s *Store) searchElastic(ctx context.Context, query string) ([]models.Product, error) {
	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "description", "category"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(ctx, s.elastic)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.New("index non trouvé ou vide")
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %w", err)
	}

	results := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		results = append(results, hit.Source)
	}
	return results, nil
}

// searchScan charge le catalogue et filtre en mémoire. Scylla n'a pas de
// LIKE natif ; acceptable ici, le catalogue d'une imprimerie reste petit.
func (s *Store) searchScan(ctx context.Context, query string) ([]models.Product, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	matched := []models.Product{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
