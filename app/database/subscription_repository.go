package database

import (
	"github.com/lysyi3m/stellarpulse/app/subscription"
)

type SubscriptionRepository struct {
	store DocumentStore
}

func NewSubscriptionRepository(store DocumentStore) *SubscriptionRepository {
	return &SubscriptionRepository{store: store}
}

func (r *SubscriptionRepository) LoadSubscriptions() (*subscription.Document, error) {
	doc := &subscription.Document{}
	loadDocument(r.store, SubscriptionsKey, doc)
	return doc, nil
}

func (r *SubscriptionRepository) SaveSubscriptions(doc *subscription.Document) error {
	return saveDocument(r.store, SubscriptionsKey, doc)
}
