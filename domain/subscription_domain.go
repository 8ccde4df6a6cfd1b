package domain

import "errors"

var (
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrSelfSubscription     = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed    = errors.New("subscription already exists")
	ErrSubscriptionNotFound = errors.New("subscription does not exist")
)

type SubscriptionEntry struct {
	UserSummary
	Recipes      []RecipeSummary `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}
