// Package memory implementa los puertos de persistencia sobre go-memdb.
// Se usa en desarrollo (APP_STORAGE=memory) y en los tests de casos de uso.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

const (
	tableRestaurants = "restaurants"
	tableUsers       = "users"
	tableProfiles    = "profiles"

	indexID    = "id"
	indexCode  = "code"
	indexEmail = "email"
)

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableRestaurants: {
				Name: tableRestaurants,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					indexCode: {
						Name:    indexCode,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "UniqueCode"},
					},
				},
			},
			tableUsers: {
				Name: tableUsers,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					indexEmail: {
						Name:    indexEmail,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Email", Lowercase: true},
					},
				},
			},
			tableProfiles: {
				Name: tableProfiles,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "RestaurantID"},
					},
				},
			},
		},
	}
}

// Store base de datos en memoria. Los objetos guardados nunca se comparten con el llamador:
// se copian al escribir y al leer.
type Store struct {
	db *memdb.MemDB
}

// NewStore crea un store vacío.
func NewStore() (*Store, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("memdb: %w", err)
	}
	return &Store{db: db}, nil
}

// Restaurants repositorio de restaurantes fuera de transacción.
func (s *Store) Restaurants() *RestaurantRepo { return &RestaurantRepo{txScope{db: s.db}} }

// Profiles repositorio de perfiles fuera de transacción.
func (s *Store) Profiles() *ProfileRepo { return &ProfileRepo{txScope{db: s.db}} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{txScope{db: s.db}} }

// RunRestaurant ejecuta fn en una única transacción de escritura. Si fn falla no se aplica nada.
func (s *Store) RunRestaurant(ctx context.Context, fn func(
	restaurants repository.RestaurantRepository,
	profiles repository.ProfileRepository,
) error) error {
	txn := s.db.Txn(true)
	defer txn.Abort()
	scope := txScope{db: s.db, txn: txn}
	if err := fn(&RestaurantRepo{scope}, &ProfileRepo{scope}); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// txScope usa la transacción compartida si existe; si no, abre una propia por operación.
type txScope struct {
	db  *memdb.MemDB
	txn *memdb.Txn
}

func (t txScope) read(fn func(txn *memdb.Txn) error) error {
	if t.txn != nil {
		return fn(t.txn)
	}
	txn := t.db.Txn(false)
	defer txn.Abort()
	return fn(txn)
}

// write serializa con el resto de escritores (memdb admite un único escritor a la vez),
// por eso las comprobaciones de unicidad previas al Insert son atómicas.
func (t txScope) write(fn func(txn *memdb.Txn) error) error {
	if t.txn != nil {
		return fn(t.txn)
	}
	txn := t.db.Txn(true)
	defer txn.Abort()
	if err := fn(txn); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func first[T any](txn *memdb.Txn, table, index string, arg string) (*T, error) {
	raw, err := txn.First(table, index, arg)
	if err != nil {
		return nil, fmt.Errorf("memdb %s: %w", table, err)
	}
	if raw == nil {
		return nil, nil
	}
	return raw.(*T), nil
}

func all[T any](txn *memdb.Txn, table string, keep func(*T) bool) ([]*T, error) {
	it, err := txn.Get(table, indexID)
	if err != nil {
		return nil, fmt.Errorf("memdb %s: %w", table, err)
	}
	var out []*T
	for raw := it.Next(); raw != nil; raw = it.Next() {
		v := raw.(*T)
		if keep(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// page ordena por fecha de creación (y luego id) y recorta. Mismo orden que el repositorio PostgreSQL.
func page[T any](items []*T, key func(*T) (int64, string), limit, offset int) []*T {
	slices.SortFunc(items, func(a, b *T) int {
		ta, ia := key(a)
		tb, ib := key(b)
		if ta != tb {
			if ta < tb {
				return -1
			}
			return 1
		}
		return strings.Compare(ia, ib)
	})
	offset = max(offset, 0)
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
