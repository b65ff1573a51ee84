// Package catalog porte le catalogue produits : ScyllaDB comme source de
// vérité, Redis comme cache de lecture, Elasticsearch pour la recherche.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"graphics2prints_backend/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
)

const listCacheKey = "products:all"

var ErrNotFound = errors.New("produit introuvable")

type Store struct {
	session *gocql.Session
	redis   *redis.Client
	elastic *elasticsearch.Client
}

func NewStore(session *gocql.Session, rdb *redis.Client, es *elasticsearch.Client) *Store {
	return &Store{session: session, redis: rdb, elastic: es}
}

// List renvoie tout le catalogue, via le cache Redis quand il est chaud.
func (s *Store) List(ctx context.Context) ([]models.Product, error) {
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, listCacheKey).Result(); err == nil && val != "" {
			var cached []models.Product
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	iter := s.session.Query(`SELECT product_id, name, description, price, category, min_order, image_url, available, created_at, updated_at FROM products`).
		WithContext(ctx).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.MinOrder, &p.ImageURL, &p.Available, &p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
		p = models.Product{} // Reset pour la prochaine itération
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture produits: %w", err)
	}

	if s.redis != nil {
		if data, err := json.Marshal(products); err == nil {
			s.redis.Set(ctx, listCacheKey, data, time.Hour)
		}
	}
	return products, nil
}

func (s *Store) ByID(ctx context.Context, id gocql.UUID) (models.Product, error) {
	var p models.Product
	p.ID = id
	err := s.session.Query(`SELECT name, description, price, category, min_order, image_url, available, created_at, updated_at FROM products WHERE product_id = ?`, id).
		WithContext(ctx).
		Scan(&p.Name, &p.Description, &p.Price, &p.Category, &p.MinOrder, &p.ImageURL, &p.Available, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *Store) Create(ctx context.Context, p models.Product) (models.Product, error) {
	p.ID = gocql.TimeUUID()
	now := time.Now()
	p.CreatedAt = &now
	p.UpdatedAt = &now

	if err := s.session.Query(`INSERT INTO products (product_id, name, description, price, category, min_order, image_url, available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.MinOrder, p.ImageURL, p.Available, p.CreatedAt, p.UpdatedAt).
		WithContext(ctx).Exec(); err != nil {
		return models.Product{}, fmt.Errorf("création produit: %w", err)
	}

	s.invalidateListCache(ctx)
	go s.indexProduct(p)
	return p, nil
}

func (s *Store) Update(ctx context.Context, p models.Product) error {
	now := time.Now()
	p.UpdatedAt = &now

	if err := s.session.Query(`UPDATE products SET name = ?, description = ?, price = ?, category = ?, min_order = ?, image_url = ?, available = ?, updated_at = ? WHERE product_id = ?`,
		p.Name, p.Description, p.Price, p.Category, p.MinOrder, p.ImageURL, p.Available, p.UpdatedAt, p.ID).
		WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("mise à jour produit: %w", err)
	}

	s.invalidateListCache(ctx)
	go s.indexProduct(p)
	return nil
}

func (s *Store) Delete(ctx context.Context, id gocql.UUID) error {
	if err := s.session.Query(`DELETE FROM products WHERE product_id = ?`, id).
		WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("suppression produit: %w", err)
	}

	s.invalidateListCache(ctx)
	go s.deleteIndexed(id)
	return nil
}

func (s *Store) invalidateListCache(ctx context.Context) {
	if s.redis != nil {
		s.redis.Del(ctx, listCacheKey)
	}
}
