package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// --- Configuration ScyllaDB ---
type ScyllaKeyspaceConfig struct {
	Hosts       []string
	Keyspace    string
	Username    string
	Password    string
	Timeout     time.Duration
	NumConns    int
	Consistency gocql.Consistency
}

type ScyllaManager struct {
	sessions map[string]*gocql.Session // keyspace → session
	configs  map[string]ScyllaKeyspaceConfig
	mu       sync.Mutex
}

// Databases regroupe toutes les connexions du service. Construit une fois
// au démarrage et passé explicitement aux handlers — pas de singleton
// process-wide, chaque chemin de sortie passe par Close().
type Databases struct {
	Scylla  *ScyllaManager
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client
}

// Connect initialise ScyllaDB (multi-keyspaces), Redis, Elasticsearch et
// MinIO. Scylla et Redis sont indispensables ; Elastic et MinIO sont
// best-effort (la recherche retombe sur Scylla, l'upload renvoie 503).
func Connect(ctx context.Context) (*Databases, error) {
	db := &Databases{}

	db.Scylla = &ScyllaManager{
		sessions: make(map[string]*gocql.Session),
		configs:  loadScyllaConfigs(),
	}
	for keyspace := range db.Scylla.configs {
		if _, err := db.Scylla.Session(keyspace); err != nil {
			return nil, fmt.Errorf("échec initialisation keyspace %s: %w", keyspace, err)
		}
	}

	db.Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if err := db.Redis.Ping(ctx).Err(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connexion Redis: %w", err)
	}
	log.Println("✅ Connecté à Redis")

	if url := os.Getenv("ELASTIC_URL"); url != "" {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{url},
			Username:  os.Getenv("ELASTIC_USER"),
			Password:  os.Getenv("ELASTIC_PASSWORD"),
		})
		if err != nil {
			log.Printf("⚠️ Elasticsearch indisponible, recherche en mode dégradé: %v", err)
		} else {
			db.Elastic = client
			log.Println("✅ Connecté à Elasticsearch")
		}
	}

	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		client, err := minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: os.Getenv("MINIO_USE_SSL") == "true",
		})
		if err != nil {
			log.Printf("⚠️ MinIO non configuré, upload d'images désactivé: %v", err)
		} else {
			db.MinIO = client
			log.Println("✅ Connecté à MinIO :", endpoint)
		}
	}

	log.Println("✅ Toutes les bases de données sont connectées")
	return db, nil
}

// Close ferme toutes les sessions et connexions.
func (d *Databases) Close() {
	if d.Scylla != nil {
		d.Scylla.mu.Lock()
		for keyspace, session := range d.Scylla.sessions {
			session.Close()
			log.Printf("🔌 Session ScyllaDB fermée pour keyspace '%s'", keyspace)
		}
		d.Scylla.mu.Unlock()
	}
	if d.Redis != nil {
		d.Redis.Close()
	}
}

// loadScyllaConfigs charge les configurations depuis .env
func loadScyllaConfigs() map[string]ScyllaKeyspaceConfig {
	configs := make(map[string]ScyllaKeyspaceConfig)

	hosts := strings.Split(os.Getenv("SCYLLA_HOSTS"), ",")
	base := ScyllaKeyspaceConfig{
		Hosts:       hosts,
		Timeout:     5 * time.Second,
		NumConns:    20,
		Consistency: gocql.Quorum,
	}

	for _, role := range []string{"USERS", "CATALOG", "ORDERS"} {
		ks := os.Getenv("SCYLLA_KS_" + role + "_KEYSPACE")
		if ks == "" {
			continue
		}
		cfg := base
		cfg.Keyspace = ks
		cfg.Username = os.Getenv("SCYLLA_KS_" + role + "_ROLE")
		cfg.Password = os.Getenv("SCYLLA_KS_" + role + "_PASSWORD")
		configs[ks] = cfg
	}

	return configs
}

func createScyllaCluster(config ScyllaKeyspaceConfig) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(config.Hosts...)
	cluster.Keyspace = config.Keyspace
	cluster.Consistency = config.Consistency
	cluster.Timeout = config.Timeout
	cluster.NumConns = config.NumConns
	cluster.MaxWaitSchemaAgreement = 30 * time.Second
	cluster.ReconnectInterval = 1 * time.Second
	cluster.Authenticator = gocql.PasswordAuthenticator{
		Username: config.Username,
		Password: config.Password,
	}
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())
	return cluster
}

// Session retourne (et crée au besoin) une session pour un keyspace donné.
func (sm *ScyllaManager) Session(keyspace string) (*gocql.Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	config, exists := sm.configs[keyspace]
	if !exists {
		return nil, fmt.Errorf("keyspace '%s' non configuré", keyspace)
	}

	if session, exists := sm.sessions[keyspace]; exists {
		if err := session.Query("SELECT now() FROM system.local").Exec(); err == nil {
			return session, nil
		}
		// Session invalide, on la recrée
		session.Close()
	}

	session, err := createScyllaCluster(config).CreateSession()
	if err != nil {
		return nil, fmt.Errorf("erreur création session pour %s: %w", keyspace, err)
	}

	sm.sessions[keyspace] = session
	log.Printf("✅ Nouvelle session ScyllaDB pour keyspace '%s' (utilisateur: %s)",
		keyspace, config.Username)

	return session, nil
}

// =============================================
// HELPERS POUR ACCÈS FACILITÉ AUX SESSIONS
// =============================================

func (d *Databases) UsersSession() (*gocql.Session, error) {
	return d.keyspaceSession("SCYLLA_KS_USERS_KEYSPACE")
}

func (d *Databases) CatalogSession() (*gocql.Session, error) {
	return d.keyspaceSession("SCYLLA_KS_CATALOG_KEYSPACE")
}

func (d *Databases) OrdersSession() (*gocql.Session, error) {
	return d.keyspaceSession("SCYLLA_KS_ORDERS_KEYSPACE")
}

func (d *Databases) keyspaceSession(envVar string) (*gocql.Session, error) {
	keyspace := os.Getenv(envVar)
	if keyspace == "" {
		return nil, fmt.Errorf("%s non configuré", envVar)
	}
	return d.Scylla.Session(keyspace)
}
