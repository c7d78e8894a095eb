package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"bookStore/entities"
	"bookStore/models"

	"github.com/redis/go-redis/v9"
)

// CollectionRepository persists the per-user cart and saved-for-later
// sequences. Each collection is one JSON array stored verbatim under
// "<kind>_<userId>", insertion order preserved. Writes are
// read-modify-write with last-write-wins; there is no cross-client
// locking.
type CollectionRepository interface {
	GetCollection(kind string, userId string) ([]entities.CartItem, error)
	SetCollection(kind string, userId string, items []entities.CartItem) error
	ClearCollection(kind string, userId string) error
}

type CollectionRepo struct {
	rdb *redis.Client
	ctx context.Context
}

func NewCollectionRepository(redis_conn *redis.Client, _ctx context.Context) (CollectionRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &CollectionRepo{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func collectionKey(kind string, userId string) string {
	return kind + "_" + userId
}

func (c *CollectionRepo) GetCollection(kind string, userId string) (items []entities.CartItem, err error) {
	val, e := c.rdb.Get(c.ctx, collectionKey(kind, userId)).Result()
	if e != nil {
		if e == redis.Nil {
			items = []entities.CartItem{}
			return
		}
		log.Printf("GetCollection: %v", e)
		err = models.ErrServerError
		return
	}
	items = decodeItems(kind, userId, []byte(val))
	return
}

func (c *CollectionRepo) SetCollection(kind string, userId string, items []entities.CartItem) (err error) {
	jsonData, err := json.Marshal(items)
	if err != nil {
		log.Printf("SetCollection: Marshal err: %v", err)
		err = models.ErrServerError
		return
	}
	// no TTL: entries persist until explicitly cleared
	err = c.rdb.Set(c.ctx, collectionKey(kind, userId), jsonData, 0).Err()
	if err != nil {
		log.Printf("SetCollection: %v", err)
		err = models.ErrServerError
	}
	return
}

func (c *CollectionRepo) ClearCollection(kind string, userId string) (err error) {
	err = c.rdb.Del(c.ctx, collectionKey(kind, userId)).Err()
	if err != nil {
		log.Printf("ClearCollection: %v", err)
		err = models.ErrServerError
	}
	return
}

// decodeItems treats a corrupt persisted blob as an absent collection
// rather than surfacing an error to the shopper.
func decodeItems(kind string, userId string, raw []byte) []entities.CartItem {
	items := []entities.CartItem{}
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("decodeItems %s: corrupt data discarded: %v", collectionKey(kind, userId), err)
		return []entities.CartItem{}
	}
	return items
}
