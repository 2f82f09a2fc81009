package item

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	itemsCollection    = "items"
	countersCollection = "counters"
	itemsCounterDoc    = "items"
)

// firestoreItem is the document shape stored in the items collection. The
// document id is the decimal item id.
type firestoreItem struct {
	ID       int64  `firestore:"id"`
	Name     string `firestore:"name"`
	Position int    `firestore:"position"`
}

type firestoreCounter struct {
	Last int64 `firestore:"last"`
}

// FirestoreRepository implements Repository using Cloud Firestore. Integer
// ids are allocated from a counter document inside the insert transaction.
type FirestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a repository on top of client.
func NewFirestoreRepository(client *firestore.Client) *FirestoreRepository {
	return &FirestoreRepository{client: client}
}

func (r *FirestoreRepository) itemDoc(id int64) *firestore.DocumentRef {
	return r.client.Collection(itemsCollection).Doc(strconv.FormatInt(id, 10))
}

func (r *FirestoreRepository) FindByID(ctx context.Context, id int64) (*Item, error) {
	snap, err := r.itemDoc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}

	var doc firestoreItem
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode item %d: %w", id, err)
	}
	return &Item{ID: doc.ID, Name: doc.Name, Position: doc.Position}, nil
}

func (r *FirestoreRepository) Save(ctx context.Context, it *Item) error {
	if it.ID != 0 {
		return r.update(ctx, it)
	}
	return r.insert(ctx, it)
}

func (r *FirestoreRepository) update(ctx context.Context, it *Item) error {
	ref := r.itemDoc(it.ID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Set(ref, firestoreItem{ID: it.ID, Name: it.Name, Position: it.Position})
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", it.ID, err)
	}
	return nil
}

func (r *FirestoreRepository) insert(ctx context.Context, it *Item) error {
	counterRef := r.client.Collection(countersCollection).Doc(itemsCounterDoc)

	var id int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var counter firestoreCounter
		snap, err := tx.Get(counterRef)
		switch {
		case status.Code(err) == codes.NotFound:
		case err != nil:
			return err
		default:
			if err := snap.DataTo(&counter); err != nil {
				return err
			}
		}

		id = counter.Last + 1
		if err := tx.Set(counterRef, firestoreCounter{Last: id}); err != nil {
			return err
		}
		return tx.Create(r.itemDoc(id), firestoreItem{ID: id, Name: it.Name, Position: it.Position})
	})
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	it.ID = id
	return nil
}

func (r *FirestoreRepository) List(ctx context.Context) ([]Item, error) {
	docs, err := r.client.Collection(itemsCollection).
		OrderBy("position", firestore.Asc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]Item, 0, len(docs))
	for _, snap := range docs {
		var doc firestoreItem
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode item %s: %w", snap.Ref.ID, err)
		}
		items = append(items, Item{ID: doc.ID, Name: doc.Name, Position: doc.Position})
	}
	// Firestore orders ties by document name, which is not numeric.
	sortItems(items)

	return items, nil
}

var _ Repository = (*FirestoreRepository)(nil)

// Ping reads at most one item to confirm Firestore is reachable.
func (r *FirestoreRepository) Ping(ctx context.Context) error {
	_, err := r.client.Collection(itemsCollection).Limit(1).Documents(ctx).GetAll()
	return err
}
